package errors

import (
	stderrors "errors"
	"fmt"
)

// JSON-RPC error codes used on the wire. The three error classes map onto
// them: invalid params, not found (method/tool/prompt vs. resource), and
// internal.
const (
	CodeParseError       = -32700
	CodeMethodNotFound   = -32601
	CodeInvalidParams    = -32602
	CodeInternalError    = -32603
	CodeResourceNotFound = -32002
)

// MCPError represents a structured error with context and a wire code
type MCPError struct {
	Code      int
	Component string
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface
func (e *MCPError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s.%s] %s: %v", e.Component, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s.%s] %s", e.Component, e.Operation, e.Message)
}

// Unwrap returns the underlying cause
func (e *MCPError) Unwrap() error {
	return e.Cause
}

// WireMessage returns the message delivered over the RPC channel. The
// underlying cause's text is included verbatim for diagnosability.
func (e *MCPError) WireMessage() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// New creates a new MCPError classified as an internal error
func New(component, operation, message string) *MCPError {
	return &MCPError{
		Code:      CodeInternalError,
		Component: component,
		Operation: operation,
		Message:   message,
	}
}

// Wrap wraps an existing error with additional context, classified as an
// internal error
func Wrap(err error, component, operation, message string) *MCPError {
	if err == nil {
		return nil
	}
	return &MCPError{
		Code:      CodeInternalError,
		Component: component,
		Operation: operation,
		Message:   message,
		Cause:     err,
	}
}

// WithCode overrides the wire code of an error
func (e *MCPError) WithCode(code int) *MCPError {
	e.Code = code
	return e
}

// InvalidParams creates an error for caller-supplied arguments that fail
// validation. The message is expected to enumerate every failing field.
func InvalidParams(component, operation, message string) *MCPError {
	return New(component, operation, message).WithCode(CodeInvalidParams)
}

// ToolNotFound reports a call against an unregistered tool name
func ToolNotFound(name string) *MCPError {
	return New("tool", "resolve", fmt.Sprintf("Tool not found: %s", name)).WithCode(CodeMethodNotFound)
}

// PromptNotFound reports a request for an unregistered prompt name
func PromptNotFound(name string) *MCPError {
	return New("prompt", "resolve", fmt.Sprintf("Prompt not found: %s", name)).WithCode(CodeMethodNotFound)
}

// ResourceNotFound reports a read against a URI no resource or template matches
func ResourceNotFound(uri string) *MCPError {
	return New("resource", "resolve", fmt.Sprintf("Resource not found: %s", uri)).WithCode(CodeResourceNotFound)
}

// MethodNotFound reports an unsupported RPC method
func MethodNotFound(method string) *MCPError {
	return New("server", "dispatch", fmt.Sprintf("Method not found: %s", method)).WithCode(CodeMethodNotFound)
}

// Classify returns err as an MCPError. Already-typed errors pass through
// unchanged so they are never double-wrapped; anything else becomes an
// internal error carrying the original text.
func Classify(err error, component, operation string) *MCPError {
	if err == nil {
		return nil
	}
	var mcpErr *MCPError
	if stderrors.As(err, &mcpErr) {
		return mcpErr
	}
	return Wrap(err, component, operation, "unexpected error")
}

// Predefined error creators for different components
var (
	// Tool errors
	ToolError = func(operation, message string) *MCPError {
		return New("tool", operation, message)
	}
	ToolWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, "tool", operation, message)
	}

	// Resource errors
	ResourceError = func(operation, message string) *MCPError {
		return New("resource", operation, message)
	}
	ResourceWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, "resource", operation, message)
	}

	// Prompt errors
	PromptError = func(operation, message string) *MCPError {
		return New("prompt", operation, message)
	}
	PromptWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, "prompt", operation, message)
	}

	// Upstream errors
	UpstreamError = func(operation, message string) *MCPError {
		return New("upstream", operation, message)
	}
	UpstreamWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, "upstream", operation, message)
	}

	// Server errors
	ServerError = func(operation, message string) *MCPError {
		return New("server", operation, message)
	}
	ServerWrap = func(err error, operation, message string) *MCPError {
		return Wrap(err, "server", operation, message)
	}
)

// IsComponentError checks if an error belongs to a specific component
func IsComponentError(err error, component string) bool {
	var mcpErr *MCPError
	if stderrors.As(err, &mcpErr) {
		return mcpErr.Component == component
	}
	return false
}
