//go:build !windows

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ytproxy/internal/command/execute"
	"ytproxy/internal/downloads"
	"ytproxy/internal/models"
)

func TestDownloadLongerThanEstimatedSize(t *testing.T) {
	t.Parallel()

	// Reports 4000 bytes, then writes 5000 and hangs
	bin := filepath.Join(t.TempDir(), "yt-dlp")
	script := `#!/bin/sh
case "$*" in
  *"%(title)s"*) echo 'Clip' ;;
  *filesize_approx*) echo 4000 ;;
  *"-o -"*) head -c 5000 /dev/zero; sleep 30 ;;
esac
`
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	base := &models.BaseConfig{BinPath: bin, MetadataTimeout: 5 * time.Second}
	tracker := downloads.NewTracker()
	streamer := downloads.NewStreamer(base, execute.NewYtdlp(bin, ""), tracker)

	ts := httptest.NewServer(New(Options{Base: base, Downloads: streamer, Tracker: tracker}).Handler())
	defer ts.Close()

	start := time.Now()
	resp, err := http.Post(ts.URL+"/api/download", "application/json", strings.NewReader(`{"url":"https://youtu.be/abc","mode":"video"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.ContentLength != 4000 {
		t.Fatalf("Content-Length = %d, want 4000", resp.ContentLength)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("body read failed after %d bytes: %v", len(body), err)
	}
	if len(body) != 4000 {
		t.Fatalf("body length = %d, want 4000", len(body))
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("download took %v", elapsed)
	}

	deadline := time.Now().Add(5 * time.Second)
	for tracker.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("tracker still holds %d processes", tracker.Len())
		}
		time.Sleep(20 * time.Millisecond)
	}
}
