// Package sushi implements the SUSHI web-service side of the harvester:
// SOAP envelope construction, the vendor-tolerant HTTP transport, and
// response exception detection.
package sushi

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
)

//go:embed templates/envelope.xml
var defaultEnvelope string

//go:embed templates/wssecurity.xml
var defaultWSSecurity string

// DefaultRelease is the COUNTER release requested when a provider does not
// specify one.
const DefaultRelease = "3"

// RequestSpec carries everything needed to build one GetReport request.
type RequestSpec struct {
	RequestorID    string
	RequestorName  string
	RequestorEmail string
	CustomerID     string
	CustomerName   string

	ReportType string
	Release    string
	Begin      time.Time
	End        time.Time

	// WS-Security plaintext credentials; some aggregators require them.
	// Both empty means no Security header is injected.
	WSUsername string
	WSPassword string
}

// EnvelopeBuilder renders request envelopes from templates. Zero-value
// paths use the embedded defaults; a site can override either template
// with its own file, as the legacy harvester allowed.
type EnvelopeBuilder struct {
	envelope *template.Template
	wsse     *template.Template
}

// NewEnvelopeBuilder parses the envelope and WS-Security templates from
// the given paths, falling back to the embedded defaults for empty paths.
func NewEnvelopeBuilder(envelopePath, wssePath string) (*EnvelopeBuilder, error) {
	envText, err := templateText(envelopePath, defaultEnvelope)
	if err != nil {
		return nil, err
	}
	wsseText, err := templateText(wssePath, defaultWSSecurity)
	if err != nil {
		return nil, err
	}

	envelope, err := template.New("envelope").Parse(envText)
	if err != nil {
		return nil, fmt.Errorf("parse envelope template: %w", err)
	}
	wsse, err := template.New("wssecurity").Parse(wsseText)
	if err != nil {
		return nil, fmt.Errorf("parse wssecurity template: %w", err)
	}

	return &EnvelopeBuilder{envelope: envelope, wsse: wsse}, nil
}

func templateText(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	return string(data), nil
}

// Build renders one request envelope. Every request gets a fresh UUID as
// its ID so vendor logs can correlate retries.
func (b *EnvelopeBuilder) Build(spec RequestSpec) (string, error) {
	release := spec.Release
	if release == "" {
		release = DefaultRelease
	}

	var security strings.Builder
	if spec.WSUsername != "" || spec.WSPassword != "" {
		err := b.wsse.Execute(&security, map[string]string{
			"Username": spec.WSUsername,
			"Password": spec.WSPassword,
		})
		if err != nil {
			return "", fmt.Errorf("render wssecurity: %w", err)
		}
	}

	var body strings.Builder
	err := b.envelope.Execute(&body, map[string]string{
		"RequestID":      uuid.New().String(),
		"Created":        time.Now().UTC().Format(time.RFC3339),
		"RequestorID":    spec.RequestorID,
		"RequestorName":  spec.RequestorName,
		"RequestorEmail": spec.RequestorEmail,
		"CustomerID":     spec.CustomerID,
		"CustomerName":   spec.CustomerName,
		"ReportType":     spec.ReportType,
		"Release":        release,
		"Begin":          spec.Begin.Format("2006-01-02"),
		"End":            spec.End.Format("2006-01-02"),
		"WSSecurity":     security.String(),
	})
	if err != nil {
		return "", fmt.Errorf("render envelope: %w", err)
	}

	return body.String(), nil
}
