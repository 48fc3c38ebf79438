package dms

import "fmt"

// TransportError means no response was received from the remote service at
// all: connection refused, DNS failure, timeout. It always qualifies for
// fallback because it says nothing about the request itself.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError means the remote service answered with a non-2xx status.
// Code and Message carry the service's structured error body when present.
type StatusError struct {
	Status  int
	Code    string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote service returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote service returned %d", e.Status)
}

// UserMessage returns the service-provided message, or a generic fallback
// when the error body carried none.
func (e *StatusError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "The request could not be completed. Please try again."
}
