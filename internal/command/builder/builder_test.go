package builder

import (
	"reflect"
	"testing"

	"ytproxy/internal/domain/command"
	"ytproxy/internal/models"
)

// TestNewBaseArgs checks the fixed flags and the optional cookie pair.
func TestNewBaseArgs(t *testing.T) {
	t.Parallel()

	got := NewBaseArgs(BaseOptions{}).Strings()
	want := []string{
		"--no-check-certificates",
		"--user-agent", command.DefaultUserAgent,
		"--ignore-errors",
		"--no-warnings",
		"--restrict-filenames",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("base args mismatch:\ngot  %q\nwant %q", got, want)
	}

	withCookies := NewBaseArgs(BaseOptions{CookieFile: "/srv/cookies.txt", JSRuntime: "node"})
	if v, ok := withCookies.Value("--cookies"); !ok || v != "/srv/cookies.txt" {
		t.Fatalf("expected cookie pair, got %q (found %v)", v, ok)
	}
	if v, ok := withCookies.Value("--js-runtime"); !ok || v != "node" {
		t.Fatalf("expected js runtime pair, got %q (found %v)", v, ok)
	}
}

func TestFormatArgs_Audio(t *testing.T) {
	t.Parallel()

	got := FormatArgs(models.ModeAudio, "bestaudio").Strings()
	want := []string{"-x", "--audio-format", "mp3", "--audio-quality", "0", "-f", "bestaudio"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("audio args mismatch:\ngot  %q\nwant %q", got, want)
	}

	if v, _ := FormatArgs(models.ModeAudio, "").Value("-f"); v != "bestaudio" {
		t.Fatalf("empty audio selector should resolve to bestaudio, got %q", v)
	}
	if v, _ := FormatArgs(models.ModeAudio, "140").Value("-f"); v != "140" {
		t.Fatalf("audio selector should pass through, got %q", v)
	}
}

func TestFormatArgs_Video(t *testing.T) {
	t.Parallel()

	if v, _ := FormatArgs(models.ModeVideo, "137").Value("-f"); v != "137+bestaudio[container=m4a]/best[container=mp4]/best" {
		t.Fatalf("unexpected video selector: %q", v)
	}
	if v, _ := FormatArgs(models.ModeVideo, "").Value("-f"); v != "best[container=mp4]/best" {
		t.Fatalf("unexpected default video selector: %q", v)
	}

	// Malformed selectors are not ours to judge
	if v, _ := FormatArgs(models.ModeVideo, "not a format").Value("-f"); v != "not a format+bestaudio[container=m4a]/best[container=mp4]/best" {
		t.Fatalf("selector was altered: %q", v)
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	base := NewBaseArgs(BaseOptions{CookieFile: "c.txt"})
	baseLen := len(base)
	req := &models.DownloadRequest{URL: "https://youtu.be/abc123", Mode: models.ModeVideo, FormatSelector: "22"}

	info := Build(base, PurposeInfo, nil)
	if last := info[len(info)-1]; last.Flag != "-j" || last.HasValue {
		t.Fatalf("info args should end with -j, got %+v", last)
	}

	title := Build(base, PurposeTitle, nil)
	if v, _ := title.Value("--print"); v != "%(title)s" {
		t.Fatalf("title print mismatch: %q", v)
	}
	if title.Has("-f") {
		t.Fatalf("title args should not carry a format")
	}

	estimate := Build(base, PurposeSizeEstimate, req)
	if v, _ := estimate.Value("--print"); v != "filesize_approx" {
		t.Fatalf("estimate print mismatch: %q", v)
	}
	if !estimate.Has("-f") {
		t.Fatalf("estimate args should carry the download format")
	}

	stream := Build(base, PurposeStream, req).Strings()
	if n := len(stream); stream[n-2] != "-o" || stream[n-1] != "-" {
		t.Fatalf("stream args should end with -o -, got %q", stream[n-2:])
	}
	for _, tok := range stream {
		if tok == req.URL {
			t.Fatalf("URL must be appended by the caller, found in %q", stream)
		}
	}

	if len(base) != baseLen {
		t.Fatalf("base args were mutated: len %d, want %d", len(base), baseLen)
	}
}
