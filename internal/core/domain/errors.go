package domain

import "errors"

// ErrorKind is the stable failure classification carried on every error
// response, so callers can branch (e.g. show an upgrade prompt on
// resource-exhausted instead of a generic failure).
type ErrorKind string

const (
	KindUnauthenticated   ErrorKind = "unauthenticated"
	KindPermissionDenied  ErrorKind = "permission-denied"
	KindInvalidArgument   ErrorKind = "invalid-argument"
	KindNotFound          ErrorKind = "not-found"
	KindResourceExhausted ErrorKind = "resource-exhausted"
	KindInternal          ErrorKind = "internal"
	KindUnimplemented     ErrorKind = "unimplemented"
)

// CallError is the canonical error for intent handlers. Anything else that
// escapes a handler is wrapped as KindInternal at the dispatcher boundary.
type CallError struct {
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *CallError) Error() string { return e.Message }

// AsCallError unwraps err into a *CallError when possible.
func AsCallError(err error) (*CallError, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

func Unauthenticated(msg string) *CallError {
	return &CallError{Kind: KindUnauthenticated, Message: msg}
}

func PermissionDenied(msg string) *CallError {
	return &CallError{Kind: KindPermissionDenied, Message: msg}
}

func InvalidArgument(msg string) *CallError {
	return &CallError{Kind: KindInvalidArgument, Message: msg}
}

func NotFound(msg string) *CallError {
	return &CallError{Kind: KindNotFound, Message: msg}
}

func ResourceExhausted(msg string) *CallError {
	return &CallError{Kind: KindResourceExhausted, Message: msg}
}

func Unimplemented(msg string) *CallError {
	return &CallError{Kind: KindUnimplemented, Message: msg}
}

// Internal wraps an unexpected failure, preserving the original message as
// structured detail rather than leaking it into the top-level message.
func Internal(msg string, cause error) *CallError {
	ce := &CallError{Kind: KindInternal, Message: msg}
	if cause != nil {
		ce.Details = map[string]any{"error": cause.Error()}
	}
	return ce
}
