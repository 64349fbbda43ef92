package temba

import (
	"errors"
	"fmt"
)

// ErrorKind classifies remote API failures for the retry policy.
type ErrorKind int

const (
	// ErrorKindBadRequest is a 400-class response. Never retried.
	ErrorKindBadRequest ErrorKind = iota
	// ErrorKindToken is an invalid or expired API token. Never retried.
	ErrorKindToken
	// ErrorKindConnection is a network failure or server-side error. Transient.
	ErrorKindConnection
	// ErrorKindRateExceeded is a 429 that survived the client's own
	// rate-exceed retries. Transient.
	ErrorKindRateExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindBadRequest:
		return "bad_request"
	case ErrorKindToken:
		return "token"
	case ErrorKindConnection:
		return "connection"
	case ErrorKindRateExceeded:
		return "rate_exceeded"
	default:
		return "unknown"
	}
}

// APIError is any failure talking to the RapidPro API.
type APIError struct {
	Kind   ErrorKind
	Status int
	Msg    string
	Err    error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rapidpro api %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("rapidpro api %s: %s", e.Kind, e.Msg)
}

func (e *APIError) Unwrap() error { return e.Err }

// Transient reports whether retrying the call may succeed.
func (e *APIError) Transient() bool {
	return e.Kind == ErrorKindConnection || e.Kind == ErrorKindRateExceeded
}

// IsAPIError reports whether err originated from the remote API.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsTransient reports whether err is a remote failure worth retrying.
func IsTransient(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Transient()
}
