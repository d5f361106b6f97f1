package sentimeter

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL      = "internal"
	EINVALID       = "invalid"
	ENOTFOUND      = "not_found"
	EBUSY          = "busy"
	EWRONGCONTEXT  = "wrong_context"
	ENOITEMS       = "no_items"
	EUNAVAILABLE   = "unavailable"
	ETRANSPORT     = "transport"
	EMALFORMED     = "malformed"
	EUNREACHABLE   = "unreachable"
	ECOMMUNICATION = "communication"
)

// Error represents an application-specific error. Its Message is meant to be
// shown to the end user verbatim.
type Error struct {
	Code    string
	Message string

	// Status is the HTTP status code reported by the remote service.
	// Only set for ETRANSPORT errors.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("sentimeter error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapErrorf is like Errorf but keeps err as the underlying cause.
func WrapErrorf(err error, code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// TransportErrorf returns an ETRANSPORT error carrying the HTTP status code.
func TransportErrorf(status int, format string, args ...any) *Error {
	return &Error{
		Code:    ETRANSPORT,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorStatus returns the HTTP status code attached to an ETRANSPORT error,
// or zero for any other error.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
