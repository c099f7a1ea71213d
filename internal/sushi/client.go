package sushi

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

const soapAction = `"SushiService:GetReportIn"`

// Client posts SUSHI requests to vendor endpoints. Vendor servers
// routinely present self-signed or unregistered certificates, so the
// transport deliberately trusts everything; and slow vendors can take
// many minutes to assemble a report, so there is no client timeout.
// Callers wanting bounded time pass a deadline on the context.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a Client with the trust-all, no-timeout transport.
func NewClient(log zerolog.Logger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &Client{
		httpClient: &http.Client{Transport: transport},
		log:        log,
	}
}

// Call posts the request envelope to url and returns the raw response
// body text.
func (c *Client) Call(ctx context.Context, url, envelope string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(envelope))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", `text/xml;charset="utf-8"`)
	req.Header.Set("Accept", "text/xml")
	req.Header.Set("SOAPAction", soapAction)

	c.log.Debug().Str("url", url).Msg("posting sushi request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post sushi request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read sushi response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("sushi endpoint returned %s", resp.Status)
	}

	return string(body), nil
}
