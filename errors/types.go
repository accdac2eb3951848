// Package errors provides the engine's structured error type, mapping
// the taxonomy of failure kinds the I/O thread and EditorState need to
// distinguish (transport-fatal, wire-malformed, semantic-event,
// resource-exhausted, protocol-misuse) onto a single wrapped error type
// in the style of grovetools-core's errors package.
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode identifies a specific failure kind.
type ErrorCode string

const (
	// ErrCodeTransportFatal marks a closed connection or a write that
	// failed against a terminated peer. The engine shuts down cleanly
	// and marks itself exited.
	ErrCodeTransportFatal ErrorCode = "TRANSPORT_FATAL"

	// ErrCodeWireMalformed marks a decode failure mid-message. The
	// read loop logs and keeps reading; framing resynchronizes at the
	// next complete message.
	ErrCodeWireMalformed ErrorCode = "WIRE_MALFORMED"

	// ErrCodeSemanticEvent marks event args of unexpected shape. The
	// offending event is dropped; the rest of the batch proceeds.
	ErrCodeSemanticEvent ErrorCode = "SEMANTIC_EVENT"

	// ErrCodeResourceExhausted marks an allocation failure during
	// resize or scrollback rebuild.
	ErrCodeResourceExhausted ErrorCode = "RESOURCE_EXHAUSTED"

	// ErrCodeProtocolMisuse marks a caller error such as attaching
	// twice or sending before attach completes.
	ErrCodeProtocolMisuse ErrorCode = "PROTOCOL_MISUSE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// EngineError is a structured error with a stable code and optional
// context, so callers can branch on Code rather than string-matching.
type EngineError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value of debugging context and returns e
// for chaining.
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func (e *EngineError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates an EngineError with no cause.
func New(code ErrorCode, message string) *EngineError {
	return &EngineError{Code: code, Message: message}
}

// Wrap attaches code/message context to an underlying error.
func Wrap(err error, code ErrorCode, message string) *EngineError {
	return &EngineError{Code: code, Message: message, Cause: err}
}

// Is reports whether err is an *EngineError with the given code,
// unwrapping through any Unwrap chain.
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	if ee, ok := err.(*EngineError); ok {
		return ee.Code == code
	}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return Is(u.Unwrap(), code)
	}
	return false
}

// Code extracts the ErrorCode from err, or "" if err is not an
// *EngineError anywhere in its Unwrap chain.
func Code(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if ee, ok := err.(*EngineError); ok {
		return ee.Code
	}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		return Code(u.Unwrap())
	}
	return ""
}
