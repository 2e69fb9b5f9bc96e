// In file: internal/swaig/client.go
package swaig

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds one round trip to a webhook.
const DefaultTimeout = 30 * time.Second

// HTTPError is returned for any non-2xx answer from the webhook.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("unexpected status: %s: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("unexpected status: %s", e.Status)
}

// Client speaks the SWAIG protocol to a single webhook URL.
type Client struct {
	url        string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the dedicated HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the webhook at url. Basic-auth credentials
// may be embedded in the URL.
func NewClient(url string, opts ...ClientOption) (*Client, error) {
	if url == "" {
		return nil, fmt.Errorf("webhook URL cannot be empty")
	}
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchSignatures performs one discovery POST for the given function names.
func (c *Client) FetchSignatures(ctx context.Context, names []string) ([]Signature, error) {
	body, err := c.FetchSignaturesRaw(ctx, names)
	if err != nil {
		return nil, err
	}
	var sigs []Signature
	if err := json.Unmarshal(body, &sigs); err != nil {
		return nil, fmt.Errorf("failed to decode signatures: %w", err)
	}
	return sigs, nil
}

// FetchSignaturesRaw performs one discovery POST and returns the body exactly
// as received, including fields Signature does not model.
func (c *Client) FetchSignaturesRaw(ctx context.Context, names []string) (json.RawMessage, error) {
	body, err := c.post(ctx, NewSignatureRequest(names))
	if err != nil {
		return nil, fmt.Errorf("signature request failed: %w", err)
	}
	if !json.Valid(body) {
		return nil, errors.New("failed to decode signatures: response is not valid JSON")
	}
	return body, nil
}

// Invoke performs one invocation POST of name with args.
func (c *Client) Invoke(ctx context.Context, name string, args map[string]any) (*InvokeResponse, error) {
	body, err := c.post(ctx, NewInvokeRequest(name, args))
	if err != nil {
		return nil, fmt.Errorf("invocation of %s failed: %w", name, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to decode response of %s: response is not valid JSON", name)
	}
	resp := &InvokeResponse{Raw: json.RawMessage(body)}
	// Bodies that are not objects are only available through Raw.
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		if err := json.Unmarshal(body, resp); err != nil {
			return nil, fmt.Errorf("failed to decode response of %s: %w", name, err)
		}
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(bytes.TrimSpace(body))}
	}
	return body, nil
}
