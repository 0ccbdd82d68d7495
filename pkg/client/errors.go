package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a client error by its cause.
type ErrorKind string

const (
	// ErrorKindInvalidParameter indicates the platform rejected a request
	// parameter, or local validation failed before the call was made.
	ErrorKindInvalidParameter ErrorKind = "InvalidParameter"
	// ErrorKindNotAuthorized indicates missing or insufficient credentials.
	ErrorKindNotAuthorized ErrorKind = "NotAuthorized"
	// ErrorKindNotFound indicates the requested element does not exist.
	ErrorKindNotFound ErrorKind = "NotFound"
	// ErrorKindTimeout indicates the request or token exchange timed out.
	ErrorKindTimeout ErrorKind = "Timeout"
	// ErrorKindPlatform indicates the platform reported an internal failure.
	ErrorKindPlatform ErrorKind = "PlatformError"
	// ErrorKindConnection indicates the platform could not be reached.
	ErrorKindConnection ErrorKind = "ConnectionError"
	// ErrorKindUnknown covers everything else.
	ErrorKindUnknown ErrorKind = "Unknown"
)

// ClientError is the error type returned by all platform calls. It carries
// the classification, HTTP context, and any exception detail reported in the
// platform's response envelope.
type ClientError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Method     string
	URL        string
	// PlatformException is the exceptionClassName from the response
	// envelope, when the platform reported one.
	PlatformException string
	Cause             error
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.PlatformException != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.PlatformException)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches two ClientErrors by kind, enabling errors.Is against kind
// sentinels built with newError.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind ErrorKind, message string) *ClientError {
	return &ClientError{Kind: kind, Message: message}
}

func invalidParameterError(format string, args ...any) *ClientError {
	return newError(ErrorKindInvalidParameter, fmt.Sprintf(format, args...))
}

// kindFromStatus maps an HTTP status code to an ErrorKind.
func kindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusBadRequest:
		return ErrorKindInvalidParameter
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrorKindNotAuthorized
	case status == http.StatusNotFound:
		return ErrorKindNotFound
	case status == http.StatusRequestTimeout:
		return ErrorKindTimeout
	case status >= 500:
		return ErrorKindPlatform
	case status >= 400:
		return ErrorKindInvalidParameter
	default:
		return ErrorKindUnknown
	}
}

// IsNotFound reports whether err indicates a missing element.
func IsNotFound(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == ErrorKindNotFound
}

// IsNotAuthorized reports whether err indicates an authorization failure.
func IsNotAuthorized(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == ErrorKindNotAuthorized
}

// IsInvalidParameter reports whether err indicates a rejected parameter.
func IsInvalidParameter(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Kind == ErrorKindInvalidParameter
}

// IsTransient reports whether err represents a failure that may succeed on
// retry: connection failures, timeouts, 429 rate limiting, and 5xx platform
// errors. Parameter, authorization, and not-found errors are never transient.
func IsTransient(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Kind {
	case ErrorKindConnection, ErrorKindTimeout, ErrorKindPlatform:
		return true
	default:
		return ce.StatusCode == http.StatusTooManyRequests
	}
}
