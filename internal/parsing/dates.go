// Package parsing normalizes loosely formatted metadata values.
package parsing

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const isoDate = "2006-01-02"

// UploadDate converts yt-dlp's upload_date (e.g. "20240115") or any common date
// layout to YYYY-MM-DD.
func UploadDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return "", fmt.Errorf("unable to parse date %q: %w", raw, err)
	}
	return t.Format(isoDate), nil
}
