package logging

import (
	"bytes"
	"strings"
	"testing"
)

// TestLevels checks D honours the configured level. Not parallel: mutates the package logger.
func TestLevels(t *testing.T) {
	var out bytes.Buffer
	SetupLogging(1, &out)
	t.Cleanup(func() { SetupLogging(0, &bytes.Buffer{}) })

	D(1, "shown %d", 1)
	D(2, "hidden %d", 2)
	E("boom %s", "here")

	got := out.String()
	if !strings.Contains(got, "shown 1") {
		t.Fatalf("expected level 1 debug line, got %q", got)
	}
	if strings.Contains(got, "hidden 2") {
		t.Fatalf("level 2 debug line should be filtered, got %q", got)
	}
	if !strings.Contains(got, "boom here") {
		t.Fatalf("expected error line, got %q", got)
	}
}

func TestLineWriter(t *testing.T) {
	var out bytes.Buffer
	SetupLogging(0, &out)
	t.Cleanup(func() { SetupLogging(0, &bytes.Buffer{}) })

	w := NewLineWriter("yt-dlp: ")
	w.Write([]byte("ERROR: first\nERROR: sec"))
	w.Write([]byte("ond\npartial"))

	if got := out.String(); !strings.Contains(got, "yt-dlp: ERROR: first") || !strings.Contains(got, "yt-dlp: ERROR: second") {
		t.Fatalf("expected both full lines, got %q", got)
	}
	if strings.Contains(out.String(), "partial") {
		t.Fatalf("partial line written before Close")
	}

	w.Close()
	if !strings.Contains(out.String(), "yt-dlp: partial") {
		t.Fatalf("partial line not flushed on Close: %q", out.String())
	}
}
