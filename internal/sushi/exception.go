package sushi

import (
	"fmt"

	"github.com/openlibstats/miso/internal/xmltree"
)

const namespaceSushi = "http://www.niso.org/schemas/sushi"

// ServerException is a protocol-level failure carried inside an otherwise
// well-formed response. It is distinct from structural parse failures and
// from business-rule violations, and it short-circuits rendering.
type ServerException struct {
	Number   string
	Severity string
	Message  string
}

func (e *ServerException) Error() string {
	return fmt.Sprintf("Report returned Exception: Number: %s, Severity: %s, Message: %s",
		e.Number, e.Severity, e.Message)
}

// DetectException scans a response document for a populated Exception
// element and returns it as an error, or nil when the response is clean.
// An empty Exception element (some vendors emit one unconditionally) does
// not count.
func DetectException(doc *xmltree.Node) error {
	node := doc.First(namespaceSushi, "Exception")
	if node == nil && doc.Space == namespaceSushi && doc.Local == "Exception" {
		node = doc
	}
	if node == nil || len(node.Children) == 0 {
		return nil
	}
	return &ServerException{
		Number:   node.Child(namespaceSushi, "Number").Text(),
		Severity: node.Child(namespaceSushi, "Severity").Text(),
		Message:  node.Child(namespaceSushi, "Message").Text(),
	}
}
