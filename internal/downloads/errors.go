package downloads

import (
	"errors"
	"fmt"
)

// ErrSinkFull is returned by a Sink that already received every byte it announced.
var ErrSinkFull = errors.New("sink received its announced length")

// StreamStartError means the download process never started. Nothing has been
// written to the client yet.
type StreamStartError struct {
	Err error
}

func (e *StreamStartError) Error() string {
	return fmt.Sprintf("failed to start download: %v", e.Err)
}

func (e *StreamStartError) Unwrap() error {
	return e.Err
}

// MidStreamFailure means the download broke after bytes were sent. The response
// is truncated and cannot be repaired.
type MidStreamFailure struct {
	Written int64
	Err     error
}

func (e *MidStreamFailure) Error() string {
	return fmt.Sprintf("download failed after %d bytes: %v", e.Written, e.Err)
}

func (e *MidStreamFailure) Unwrap() error {
	return e.Err
}
