package models

import (
	"errors"
	"fmt"
)

// Failure categories.
var (
	ErrDataUnavailable  = errors.New("data unavailable")
	ErrMalformedData    = errors.New("malformed data")
	ErrRelayTimeout     = errors.New("relay timeout")
	ErrRelayError       = errors.New("relay error")
	ErrUnknownDashboard = errors.New("unknown dashboard")
)

// LoadError reports a dataset that could not be loaded or trusted.
type LoadError struct {
	Kind   error
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Source)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == e.Kind }

// Unavailable wraps err as ErrDataUnavailable for source.
func Unavailable(source string, err error) error {
	return &LoadError{Kind: ErrDataUnavailable, Source: source, Err: err}
}

// Malformed wraps err as ErrMalformedData for source.
func Malformed(source string, err error) error {
	return &LoadError{Kind: ErrMalformedData, Source: source, Err: err}
}

// Relay failure reasons.
const (
	ReasonTimeout   = "timeout"
	ReasonStatus    = "status"
	ReasonMalformed = "malformed"
	ReasonTransport = "transport"
)

// RelayError reports a failed chat relay call.
type RelayError struct {
	Reason string
	Status int
	Err    error
}

func (e *RelayError) Error() string {
	switch e.Reason {
	case ReasonStatus:
		return fmt.Sprintf("relay error: unexpected status %d", e.Status)
	case ReasonTimeout:
		return "relay timeout"
	}
	if e.Err != nil {
		return fmt.Sprintf("relay error: %s: %v", e.Reason, e.Err)
	}
	return "relay error: " + e.Reason
}

func (e *RelayError) Unwrap() error { return e.Err }

func (e *RelayError) Is(target error) bool {
	if e.Reason == ReasonTimeout {
		return target == ErrRelayTimeout
	}
	return target == ErrRelayError
}
