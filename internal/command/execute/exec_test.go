//go:build !windows

package execute

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeScript writes an executable shell script standing in for yt-dlp.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yt-dlp")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestYtdlpRun(t *testing.T) {
	t.Parallel()

	bin := writeScript(t, `pwd; echo "args:$*"; echo "bad things" >&2; exit 3`)
	dir := t.TempDir()

	res, err := NewYtdlp(bin, dir).Run(context.Background(), []string{"-j", "https://youtu.be/x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Fatalf("exit code = %d, want 3", res.ExitCode)
	}

	out := string(res.Stdout)
	resolved, _ := filepath.EvalSymlinks(dir)
	if !strings.Contains(out, dir) && !strings.Contains(out, resolved) {
		t.Fatalf("process did not run in %q: %q", dir, out)
	}
	if !strings.Contains(out, "args:-j https://youtu.be/x") {
		t.Fatalf("argv not passed through: %q", out)
	}
	if strings.TrimSpace(string(res.Stderr)) != "bad things" {
		t.Fatalf("stderr = %q", res.Stderr)
	}
}

func TestYtdlpRunMissingBinary(t *testing.T) {
	t.Parallel()

	_, err := NewYtdlp(filepath.Join(t.TempDir(), "nope"), "").Run(context.Background(), nil)
	if err == nil {
		t.Fatalf("expected start failure")
	}
}

func TestYtdlpRunCancelKills(t *testing.T) {
	t.Parallel()

	bin := writeScript(t, "sleep 30\n")
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewYtdlp(bin, "").Run(ctx, nil)
	if err == nil {
		t.Fatalf("expected context error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("process was not killed promptly, took %v", elapsed)
	}
}
