package sushi

import (
	"encoding/xml"
	"io"
)

// ReadThrough pulls every token from the document, reporting each syntax
// error through report and returning whether the document read cleanly.
// This is the light stand-in for schema validation (Go has no XSD
// validator); structural business rules live in the validate package.
func ReadThrough(r io.Reader, report func(error)) bool {
	dec := xml.NewDecoder(r)
	ok := true
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return ok
		}
		if err != nil {
			ok = false
			if report != nil {
				report(err)
			}
			return ok
		}
	}
}
