package models

import (
	"reflect"
	"testing"
)

// TestArgListWithout checks flag/value units are removed together.
func TestArgListWithout(t *testing.T) {
	t.Parallel()

	// A value token equal to the removed flag must not confuse pairing
	l := ArgList{}.
		Flag("--no-warnings").
		Pair("--cookies", "/data/cookies.txt").
		Pair("--user-agent", "--cookies").
		Flag("-j")

	got := l.Without("--cookies").Strings()
	want := []string{"--no-warnings", "--user-agent", "--cookies", "-j"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Without() mismatch:\ngot  %q\nwant %q", got, want)
	}

	if !reflect.DeepEqual(l.Strings(), []string{"--no-warnings", "--cookies", "/data/cookies.txt", "--user-agent", "--cookies", "-j"}) {
		t.Fatalf("original list was modified: %q", l.Strings())
	}
}

func TestArgListConcat(t *testing.T) {
	t.Parallel()

	base := make(ArgList, 0, 10).Flag("-a")
	left := base.Concat(ArgList{}.Flag("-b"))
	right := base.Concat(ArgList{}.Flag("-c"))

	if left.Strings()[1] != "-b" || right.Strings()[1] != "-c" {
		t.Fatalf("concat results share storage: %q %q", left.Strings(), right.Strings())
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Mode{"": ModeVideo, "video": ModeVideo, "AUDIO": ModeAudio} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("gif"); err == nil {
		t.Fatalf("expected error for unsupported mode")
	}
	if ModeAudio.Ext() != "mp3" || ModeVideo.ContentType() != "video/mp4" {
		t.Fatalf("mode helpers returned unexpected values")
	}
}
