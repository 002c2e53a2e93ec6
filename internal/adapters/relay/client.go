// Package relay posts contact forms to a third-party form relay such as
// Formspree and translates its answers into domain errors.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/csg33k/contact-form/internal/domain"
)

// maxErrorBody caps how much of a failure response is decoded.
const maxErrorBody = 1 << 20

// Client implements ports.Relay over HTTP.
type Client struct {
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves the transport's own behaviour,
// which never gives up on a hung relay.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		clone := *c.http
		clone.Timeout = d
		c.http = &clone
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// errorBody is the relay's failure payload.
type errorBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Submit sends fields as multipart/form-data to endpoint, asking for JSON.
func (c *Client) Submit(ctx context.Context, endpoint string, fields []domain.FormFieldInput) error {
	body, contentType, err := encode(fields)
	if err != nil {
		return &domain.NetworkError{Err: fmt.Errorf("encode form: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return &domain.NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}
	return &domain.RelayError{
		StatusCode: resp.StatusCode,
		Messages:   decodeMessages(resp.Body),
	}
}

// decodeMessages returns the relay's error messages, or nil when the body is
// not the expected JSON shape. Messages are kept verbatim apart from
// surrounding whitespace; blank ones are dropped.
func decodeMessages(r io.Reader) []string {
	var payload errorBody
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&payload); err != nil {
		return nil
	}
	var out []string
	for _, e := range payload.Errors {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func encode(fields []domain.FormFieldInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := mw.WriteField(f.ID, f.Value); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
