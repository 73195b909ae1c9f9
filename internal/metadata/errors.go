package metadata

import "fmt"

// MalformedMetadataError is returned when yt-dlp output cannot be turned into a catalog.
type MalformedMetadataError struct {
	Reason string
	Err    error
}

func (e *MalformedMetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed metadata: %s: %v", e.Reason, e.Err)
	}
	return "malformed metadata: " + e.Reason
}

func (e *MalformedMetadataError) Unwrap() error {
	return e.Err
}
