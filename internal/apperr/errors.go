// Package apperr defines the failure taxonomy shared by the client components.
// Every failure reaches the user as a single status line built from Error.Message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration means the backend URL is missing. Fatal to the session.
	KindConfiguration
	// KindConnectivity means the host could not be reached.
	KindConnectivity
	// KindServer means the host answered with a non-success status or an unreadable body.
	KindServer
	// KindMalformedResponse means the body lacked the mandatory prediction fields.
	KindMalformedResponse
	// KindValidation means the user input was rejected before any network call.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnectivity:
		return "connectivity"
	case KindServer:
		return "server"
	case KindMalformedResponse:
		return "malformed_response"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against an *Error of the same kind.
var (
	ErrConfiguration     = &Error{Kind: KindConfiguration}
	ErrConnectivity      = &Error{Kind: KindConnectivity}
	ErrServer            = &Error{Kind: KindServer}
	ErrMalformedResponse = &Error{Kind: KindMalformedResponse}
	ErrValidation        = &Error{Kind: KindValidation}
)

// Error is a classified, user-presentable failure.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status code for KindServer failures.
	Status int
	// Detail is the server-provided detail message, if any.
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error with the same Kind, so callers can test against the sentinels.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) || e == nil || other == nil {
		return false
	}
	return e.Kind == other.Kind
}

// Configuration builds a KindConfiguration error.
func Configuration(message string) *Error {
	return &Error{Kind: KindConfiguration, Message: message}
}

// Connectivity builds a KindConnectivity error wrapping the transport failure.
func Connectivity(message string, err error) *Error {
	return &Error{Kind: KindConnectivity, Message: message, Err: err}
}

// Server builds a KindServer error for the given status and optional detail.
func Server(status int, detail, message string) *Error {
	return &Error{Kind: KindServer, Status: status, Detail: detail, Message: message}
}

// MalformedResponse builds a KindMalformedResponse error.
func MalformedResponse(message string, err error) *Error {
	return &Error{Kind: KindMalformedResponse, Message: message, Err: err}
}

// Validation builds a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// KindOf reports the classification of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the user-facing text for err, falling back to the supplied default.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Error() != "" {
		return e.Error()
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprint(err)
}
