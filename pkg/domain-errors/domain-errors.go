package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// Codes describe what went wrong in extraction or liveness terms, not HTTP terms.
type Code string

const (
	CodeNotFound     Code = "not_found"
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeValidation   Code = "validation_failed"
	CodeInternal     Code = "internal_error"
	CodeUnauthorized Code = "unauthorized"
	CodeTimeout      Code = "timeout"
	CodeTooLarge     Code = "payload_too_large"
	CodeUnavailable  Code = "unavailable"

	// Document pipeline codes
	CodeDecode            Code = "decode_error"            // empty or unreadable image bytes
	CodeUpstreamTimeout   Code = "upstream_timeout"        // vision API exceeded its deadline
	CodeUpstream          Code = "upstream_error"          // vision API transport or non-2xx failure
	CodeNoOCREngine       Code = "no_ocr_engine"           // no text-extraction capability present
	CodeMalformedUpstream Code = "malformed_upstream_json" // recovered internally, never surfaced
	CodeExhausted         Code = "strategies_exhausted"    // every strategy in the chain failed
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and client layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in the chain,
// or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsUpstream reports whether err is a vision API failure that the
// orchestrator converts into a fallback attempt.
func IsUpstream(err error) bool {
	return HasCode(err, CodeUpstream) || HasCode(err, CodeUpstreamTimeout)
}
