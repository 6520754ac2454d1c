package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when the model does not answer within the
	// configured bound.
	ErrTimeout = errors.New("analysis request timed out")

	// ErrEmptyResponse is returned when the model answers with an empty body.
	ErrEmptyResponse = errors.New("no response from model")

	// ErrUploadInFlight is returned when an upload is started while
	// another one is still running.
	ErrUploadInFlight = errors.New("another upload is already in progress")
)

// MalformedResponseError is returned when the model's reply cannot be
// decoded into a contract analysis. Raw carries the offending text for
// diagnostics; it is logged, never shown to end users.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err is the timeout failure, which gets a
// dedicated user-facing remediation path.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
