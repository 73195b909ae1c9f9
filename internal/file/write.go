// Package file handles files read and written at startup.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ytproxy/internal/domain/consts"
)

// WriteCookieFile writes cookie file content (e.g. from an environment variable) to path.
//
// Returns the number of bytes written. Empty content writes nothing.
func WriteCookieFile(path, content string) (int, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return 0, nil
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("failed to create directory for cookie file %q: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), consts.PermsCookieFile); err != nil {
		return 0, fmt.Errorf("failed to write cookie file %q: %w", path, err)
	}
	return len(content), nil
}
