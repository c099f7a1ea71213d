package sushi

import (
	"errors"
	"strings"
	"testing"

	"github.com/openlibstats/miso/internal/xmltree"
)

func parseDoc(t *testing.T, doc string) *xmltree.Node {
	t.Helper()
	n, err := xmltree.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return n
}

func TestDetectException(t *testing.T) {
	doc := parseDoc(t, `<ReportResponse xmlns="http://www.niso.org/schemas/sushi">
<Exception>
<Number>2000</Number>
<Severity>Error</Severity>
<Message>Requestor Not Authorized</Message>
</Exception>
</ReportResponse>`)

	err := DetectException(doc)
	var sx *ServerException
	if !errors.As(err, &sx) {
		t.Fatalf("expected ServerException, got %v", err)
	}
	want := "Report returned Exception: Number: 2000, Severity: Error, Message: Requestor Not Authorized"
	if sx.Error() != want {
		t.Errorf("message:\n got %q\nwant %q", sx.Error(), want)
	}
}

func TestDetectException_Clean(t *testing.T) {
	doc := parseDoc(t, `<ReportResponse xmlns="http://www.niso.org/schemas/sushi">
<ReportDefinition Name="JR1" Release="3"/>
</ReportResponse>`)
	if err := DetectException(doc); err != nil {
		t.Fatalf("clean response: %v", err)
	}
}

func TestDetectException_EmptyElementIgnored(t *testing.T) {
	doc := parseDoc(t, `<ReportResponse xmlns="http://www.niso.org/schemas/sushi">
<Exception></Exception>
</ReportResponse>`)
	if err := DetectException(doc); err != nil {
		t.Fatalf("empty Exception element should not be an error: %v", err)
	}
}

func TestReadThrough(t *testing.T) {
	var reported []error
	ok := ReadThrough(strings.NewReader("<a><b/></a>"), func(err error) {
		reported = append(reported, err)
	})
	if !ok || len(reported) != 0 {
		t.Fatalf("well-formed document: ok=%v reported=%v", ok, reported)
	}

	ok = ReadThrough(strings.NewReader("<a><b></a>"), func(err error) {
		reported = append(reported, err)
	})
	if ok {
		t.Fatal("mismatched tags should not read cleanly")
	}
	if len(reported) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(reported))
	}
}
