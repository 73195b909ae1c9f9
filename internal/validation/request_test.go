package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"ytproxy/internal/models"
	"ytproxy/internal/validation"
)

func TestValidateURL(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{
		"https://youtu.be/abc123",
		"https://www.youtube.com/watch?v=abc123",
		"http://m.youtube.com/watch?v=abc123",
		"  https://music.youtube.com/watch?v=x  ",
		"youtube.com/watch?v=abc123",
	} {
		if _, err := validation.ValidateURL(ok); err != nil {
			t.Fatalf("ValidateURL(%q) unexpected error: %v", ok, err)
		}
	}

	for raw, msg := range map[string]string{
		"":                                 "URL is required",
		"   ":                              "URL is required",
		"https://vimeo.com/123":            "Only YouTube URLs are supported right now.",
		"https://notyoutube.com/watch?v=1": "Only YouTube URLs are supported right now.",
		"https://evil.com/?u=youtube.com":  "Only YouTube URLs are supported right now.",
		"file:///etc/passwd":               "Only YouTube URLs are supported right now.",
	} {
		_, err := validation.ValidateURL(raw)
		var invalid *validation.InvalidRequestError
		if !errors.As(err, &invalid) {
			t.Fatalf("ValidateURL(%q): expected InvalidRequestError, got %v", raw, err)
		}
		if invalid.Msg != msg {
			t.Fatalf("ValidateURL(%q) message = %q, want %q", raw, invalid.Msg, msg)
		}
	}
}

func TestValidateDownloadRequest(t *testing.T) {
	t.Parallel()

	req, err := validation.ValidateDownloadRequest("https://youtu.be/abc123", "audio", " 140 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Mode != models.ModeAudio || req.FormatSelector != "140" {
		t.Fatalf("unexpected request: %+v", req)
	}

	if _, err := validation.ValidateDownloadRequest("https://youtu.be/abc123", "flac", ""); err == nil {
		t.Fatalf("expected error for unsupported mode")
	}
}

func TestInspectCookieFile(t *testing.T) {
	t.Parallel()

	future := strconv.FormatInt(time.Now().Add(24*time.Hour).Unix(), 10)
	past := strconv.FormatInt(time.Now().Add(-24*time.Hour).Unix(), 10)

	content := "# Netscape HTTP Cookie File\n" +
		".youtube.com\tTRUE\t/\tTRUE\t" + future + "\tSID\tabc\n" +
		"#HttpOnly_.youtube.com\tTRUE\t/\tTRUE\t" + future + "\tHSID\tdef\n" +
		".youtube.com\tTRUE\t/\tTRUE\t" + past + "\tOLD\tgone\n" +
		".example.com\tTRUE\t/\tFALSE\t" + future + "\tOTHER\tzzz\n" +
		"malformed line\n"

	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write cookie file: %v", err)
	}

	if !validation.CookieFileExists(path) {
		t.Fatalf("CookieFileExists(%q) = false", path)
	}
	if validation.CookieFileExists(filepath.Dir(path)) {
		t.Fatalf("a directory is not a cookie file")
	}

	n, err := validation.InspectCookieFile(path)
	if err != nil {
		t.Fatalf("InspectCookieFile() unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 YouTube cookies, got %d", n)
	}

	if _, err := validation.InspectCookieFile(path + ".missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
