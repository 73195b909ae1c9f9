package models

import (
	"fmt"
	"strings"

	"ytproxy/internal/domain/consts"
)

// Mode is the requested media kind.
type Mode string

const (
	ModeVideo Mode = "video"
	ModeAudio Mode = "audio"
)

// ParseMode parses client input, an empty string means video.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeVideo:
		return ModeVideo, nil
	case ModeAudio:
		return ModeAudio, nil
	default:
		return "", fmt.Errorf("unsupported mode %q", s)
	}
}

// Ext returns the output file extension for the mode.
func (m Mode) Ext() string {
	if m == ModeAudio {
		return consts.ExtMP3
	}
	return consts.ExtMP4
}

// ContentType returns the response MIME type for the mode.
func (m Mode) ContentType() string {
	if m == ModeAudio {
		return consts.ContentTypeMP3
	}
	return consts.ContentTypeMP4
}

// DownloadRequest is a validated download request.
type DownloadRequest struct {
	URL            string
	Mode           Mode
	FormatSelector string
}

// MediaInfo is resolved before any media byte is written.
type MediaInfo struct {
	Filename    string
	ContentType string
	Size        int64 // 0 when unknown
}
