package httperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for HTTP 401 (bad credentials or an expired session).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned for HTTP 403 on any call.
	ErrForbidden = errors.New("forbidden")
)

// APIError is any other non-2xx answer from the API.
type APIError struct {
	Status int
	Body   ErrorBody
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api responded with status %d", e.Status)
}

// Message returns the flattened body messages, or fallback when the body has
// no recognisable shape.
func (e *APIError) Message(fallback string) string {
	return e.Body.Message(fallback)
}

// TransportError means no response reached us.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindServer
	KindTransport
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	default:
		return "internal"
	}
}

// validationFailure is implemented by local, pre-network validation errors.
type validationFailure interface {
	error
	ValidationFailed() bool
}

func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var vf validationFailure
	if errors.As(err, &vf) && vf.ValidationFailed() {
		return KindValidation
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindServer
	}

	var te *TransportError
	if errors.As(err, &te) {
		return KindTransport
	}

	return KindInternal
}

// Message extracts the user-facing text of a server error, or fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}
