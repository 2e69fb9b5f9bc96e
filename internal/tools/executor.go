// In file: internal/tools/executor.go
package tools

import (
	"context"
	"fmt"
)

// ToolExecutor defines the standard interface for any tool that the voice
// agent can call through the webhook.
type ToolExecutor interface {
	// Definition returns the tool's schema, which the agent receives as the
	// function signature.
	Definition() Tool

	// Execute runs the tool. It receives the arguments as a JSON object string
	// and returns text that is spoken back to the caller.
	Execute(ctx context.Context, arguments string) (string, error)
}

// ToolError carries a message that is safe to speak to the caller together
// with the underlying cause.
type ToolError struct {
	Message string
	Err     error
}

func (e *ToolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ToolError) Unwrap() error { return e.Err }

func toolErrorf(cause error, format string, args ...any) *ToolError {
	return &ToolError{Message: fmt.Sprintf(format, args...), Err: cause}
}
