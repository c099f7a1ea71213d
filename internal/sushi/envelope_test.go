package sushi

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testSpec() RequestSpec {
	return RequestSpec{
		RequestorID:  "req-1",
		CustomerID:   "cust-1",
		CustomerName: "Test Library",
		ReportType:   "JR1",
		Begin:        time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2015, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestBuild_Defaults(t *testing.T) {
	b, err := NewEnvelopeBuilder("", "")
	if err != nil {
		t.Fatalf("NewEnvelopeBuilder: %v", err)
	}
	env, err := b.Build(testSpec())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, want := range []string{
		"req-1", "cust-1", "Test Library",
		`Name="JR1"`, `Release="3"`,
		"<sus:Begin>2015-01-01</sus:Begin>", "<sus:End>2015-01-31</sus:End>",
	} {
		if !strings.Contains(env, want) {
			t.Errorf("envelope missing %q", want)
		}
	}
	if strings.Contains(env, "UsernameToken") {
		t.Error("no credentials given, Security header must be absent")
	}
}

func TestBuild_FreshRequestID(t *testing.T) {
	b, _ := NewEnvelopeBuilder("", "")
	a, _ := b.Build(testSpec())
	c, _ := b.Build(testSpec())

	ida, idc := extractRequestID(t, a), extractRequestID(t, c)
	if _, err := uuid.Parse(ida); err != nil {
		t.Fatalf("request ID %q is not a UUID: %v", ida, err)
	}
	if ida == idc {
		t.Error("consecutive requests share a request ID")
	}
}

func extractRequestID(t *testing.T, env string) string {
	t.Helper()
	_, rest, ok := strings.Cut(env, `ID="`)
	if !ok {
		t.Fatal("no ID attribute in envelope")
	}
	id, _, ok := strings.Cut(rest, `"`)
	if !ok {
		t.Fatal("unterminated ID attribute")
	}
	return id
}

func TestBuild_WSSecurity(t *testing.T) {
	b, _ := NewEnvelopeBuilder("", "")
	spec := testSpec()
	spec.WSUsername = "alice"
	spec.WSPassword = "s3cret"

	env, err := b.Build(spec)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, want := range []string{"UsernameToken", "alice", "s3cret"} {
		if !strings.Contains(env, want) {
			t.Errorf("envelope missing %q", want)
		}
	}
}

func TestBuild_ReleaseOverride(t *testing.T) {
	b, _ := NewEnvelopeBuilder("", "")
	spec := testSpec()
	spec.Release = "4"
	env, _ := b.Build(spec)
	if !strings.Contains(env, `Release="4"`) {
		t.Error("provider release not honored")
	}
}

func TestNewEnvelopeBuilder_MissingOverride(t *testing.T) {
	if _, err := NewEnvelopeBuilder("/nonexistent/envelope.xml", ""); err == nil {
		t.Fatal("expected error for missing template file")
	}
}
