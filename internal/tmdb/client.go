// In file: internal/tmdb/client.go

// Package tmdb is a small gateway to The Movie Database (TMDB) v3 REST API.
//
// Every endpoint helper in this package funnels through Client.Get, which owns
// request construction (API key injection, stripping of absent parameters) and
// normalizes every outcome into a Result: either the decoded JSON body or an
// APIError, never both.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	// DefaultBaseURL is the root of the TMDB v3 API.
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultTimeout bounds a single round trip to TMDB.
	DefaultTimeout = 15 * time.Second

	apiKeyParam = "api_key"
	userAgent   = "MovieBot-Agent/1.0"
)

// Params holds the query parameters of a single request. Values may be nil,
// nil pointers or empty strings; those are treated as absent and never sent.
type Params map[string]any

// APIError is the uniform error record produced for any failed call.
// StatusCode is zero when the failure happened before a response arrived.
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code,omitempty"`
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("tmdb: %s (status %d)", e.Message, e.StatusCode)
	}
	return "tmdb: " + e.Message
}

// Result is the outcome of one call. Exactly one of Body or Err is set.
type Result struct {
	// Body is the decoded JSON document (a map or a slice), unmodified.
	Body any
	// Raw keeps the original bytes so callers can decode into typed records.
	Raw json.RawMessage
	// Err is set when the call failed for any reason.
	Err *APIError
}

func success(raw []byte, body any) *Result {
	return &Result{Body: body, Raw: raw}
}

func failure(message string, status int) *Result {
	return &Result{Err: &APIError{Message: message, StatusCode: status}}
}

// OK reports whether the call produced a payload.
func (r *Result) OK() bool {
	return r != nil && r.Err == nil
}

// Decode unmarshals the payload into v. It returns the APIError unchanged
// when the call failed.
func (r *Result) Decode(v any) error {
	if !r.OK() {
		return r.Err
	}
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return fmt.Errorf("failed to decode TMDB payload: %w", err)
	}
	return nil
}

// Client talks to TMDB on behalf of all tools.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the dedicated HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the dedicated HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient creates a TMDB client. The API key is mandatory.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("TMDB API key cannot be empty")
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues one GET to baseURL+endpoint and normalizes the outcome.
// It never retries.
func (c *Client) Get(ctx context.Context, endpoint string, params Params) *Result {
	reqURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return failure(err.Error(), 0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return failure(fmt.Sprintf("failed to create request: %v", err), 0)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("TMDB API request to %s failed: %v", endpoint, err)
		return failure(fmt.Sprintf("request failed: %v", redactKey(err.Error(), c.apiKey)), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(fmt.Sprintf("failed to read response: %v", err), resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := statusMessage(resp.StatusCode, body)
		log.Printf("TMDB API request to %s failed: %s", endpoint, msg)
		return failure(msg, resp.StatusCode)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return failure(fmt.Sprintf("invalid JSON response: %v", err), resp.StatusCode)
	}
	return success(body, decoded)
}

// buildURL joins the endpoint to the base URL and encodes only the present
// parameters plus the API key.
func (c *Client) buildURL(endpoint string, params Params) (string, error) {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	query := url.Values{}
	for name, value := range params {
		if s, ok := renderParam(value); ok {
			query.Set(name, s)
		}
	}
	query.Set(apiKeyParam, c.apiKey)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// renderParam converts a parameter value to its query form. It reports false
// for absent values: nil, nil pointers and empty strings.
func renderParam(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		value = rv.Elem().Interface()
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		log.Printf("WARNING: dropping unsupported TMDB parameter value of type %T", value)
		return "", false
	}
	if s == "" {
		return "", false
	}
	return s, true
}

// statusMessage prefers TMDB's own status_message when the error body has one.
func statusMessage(status int, body []byte) string {
	var tmdbErr struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(body, &tmdbErr) == nil && tmdbErr.StatusMessage != "" {
		return fmt.Sprintf("%d %s: %s", status, http.StatusText(status), tmdbErr.StatusMessage)
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}

func redactKey(s, key string) string {
	return strings.ReplaceAll(s, key, "REDACTED")
}
