package fetcher

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a fetch failed
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindBadResponse
	KindTransport
	KindMissingURL
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadResponse:
		return "bad response"
	case KindTransport:
		return "transport failure"
	case KindMissingURL:
		return "missing URL"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is; they match any APIError of the same kind.
var (
	ErrUnknown     = &APIError{Kind: KindUnknown}
	ErrBadResponse = &APIError{Kind: KindBadResponse}
	ErrTransport   = &APIError{Kind: KindTransport}
	ErrMissingURL  = &APIError{Kind: KindMissingURL}
)

// APIError is the only error type Fetch returns
type APIError struct {
	Kind       ErrorKind
	StatusCode int   // set for KindBadResponse
	Err        error // cause for KindTransport and KindUnknown
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindBadResponse:
		return fmt.Sprintf("bad response: status %d", e.StatusCode)
	case KindMissingURL:
		return "missing URL"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches on kind, and on status code when the target sets one
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

func badResponse(status int) error {
	return &APIError{Kind: KindBadResponse, StatusCode: status}
}

func transportFailure(cause error) error {
	return &APIError{Kind: KindTransport, Err: cause}
}

func missingURL() error {
	return &APIError{Kind: KindMissingURL}
}

func unknown(cause error) error {
	return &APIError{Kind: KindUnknown, Err: cause}
}

// KindOf returns the kind of a fetch error, KindUnknown for foreign errors
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}
