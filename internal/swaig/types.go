// In file: internal/swaig/types.go

// Package swaig implements both sides of the SWAIG function protocol used by
// the voice agent platform: the message records exchanged with a webhook, and
// a client that discovers function signatures, collects typed arguments from
// an operator and invokes a function.
package swaig

import "encoding/json"

// Protocol constants for the signature discovery message.
const (
	ActionGetSignature   = "get_signature"
	ProtocolVersion      = "2.0"
	SignatureDisposition = "function signature request"
	SignatureContentType = "text/swaig"
	ArgumentTypeObject   = "object"
	DefaultWebhookRoute  = "/swaig"
)

// SignatureRequest asks a webhook to describe the named functions.
type SignatureRequest struct {
	Functions          []string `json:"functions"`
	Action             string   `json:"action"`
	Version            string   `json:"version"`
	ContentDisposition string   `json:"content_disposition"`
	ContentType        string   `json:"content_type"`
}

// NewSignatureRequest builds a discovery message for the given names.
func NewSignatureRequest(names []string) SignatureRequest {
	if names == nil {
		names = []string{}
	}
	return SignatureRequest{
		Functions:          names,
		Action:             ActionGetSignature,
		Version:            ProtocolVersion,
		ContentDisposition: SignatureDisposition,
		ContentType:        SignatureContentType,
	}
}

// Property describes one declared argument of a function.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []any    `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// ArgumentSchema is the object schema of a function's arguments.
type ArgumentSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// IsRequired reports whether name is in the required set.
func (a ArgumentSchema) IsRequired(name string) bool {
	for _, r := range a.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Signature is the declarative description of one remote function.
type Signature struct {
	Function   string         `json:"function"`
	Purpose    string         `json:"purpose,omitempty"`
	Argument   ArgumentSchema `json:"argument"`
	WebHookURL string         `json:"web_hook_url,omitempty"`
}

// InvokeArgument wraps the collected arguments. Parsed always holds exactly
// one mapping.
type InvokeArgument struct {
	Parsed []map[string]any `json:"parsed"`
	Raw    string           `json:"raw,omitempty"`
}

// Args returns the single parsed mapping, or an empty one.
func (a InvokeArgument) Args() map[string]any {
	if len(a.Parsed) == 0 || a.Parsed[0] == nil {
		return map[string]any{}
	}
	return a.Parsed[0]
}

// InvokeRequest calls one function with its arguments.
type InvokeRequest struct {
	Function string         `json:"function"`
	Argument InvokeArgument `json:"argument"`
	CallID   string         `json:"call_id,omitempty"`
}

// NewInvokeRequest builds an invocation message for a single function.
func NewInvokeRequest(name string, args map[string]any) InvokeRequest {
	if args == nil {
		args = map[string]any{}
	}
	return InvokeRequest{
		Function: name,
		Argument: InvokeArgument{Parsed: []map[string]any{args}},
	}
}

// Message is the union of everything a webhook may receive: a discovery
// request carries Action and Functions, an invocation carries Function and
// Argument.
type Message struct {
	Action    string         `json:"action,omitempty"`
	Functions []string       `json:"functions,omitempty"`
	Function  string         `json:"function,omitempty"`
	Argument  InvokeArgument `json:"argument"`
	CallID    string         `json:"call_id,omitempty"`
}

// IsSignatureRequest reports whether the message is a discovery request.
func (m Message) IsSignatureRequest() bool {
	return m.Action == ActionGetSignature
}

// InvokeResponse is what a webhook answers to an invocation. Response is
// usually the text to speak and Action a list of platform actions, but
// webhooks are free to send other shapes. Raw keeps the body exactly as
// received.
type InvokeResponse struct {
	Response any             `json:"response,omitempty"`
	Action   any             `json:"action,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

// Text returns Response when it is a plain string.
func (r *InvokeResponse) Text() string {
	s, _ := r.Response.(string)
	return s
}
