package blocking

import (
	"errors"
	"testing"
	"time"
)

func TestIsBotDetection(t *testing.T) {
	t.Parallel()

	for msg, want := range map[string]bool{
		"ERROR: [youtube] abc: Sign in to confirm you're not a bot": true,
		"Sign in to confirm you’re not a bot":                       true,
		"Please prove you are not a robot":                          true,
		"ERROR: Video unavailable":                                  false,
	} {
		if got := IsBotDetection(errors.New(msg)); got != want {
			t.Errorf("IsBotDetection(%q) = %v, want %v", msg, got, want)
		}
	}
	if IsBotDetection(nil) {
		t.Errorf("nil error reported as bot detection")
	}
}

func TestRegistryLifecycle(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	r.Record("https://m.youtube.com/watch?v=abc", "Default")

	blocked, at, remaining := r.IsBlocked("https://www.youtube.com/watch?v=other", "Default")
	if !blocked || !at.Equal(now) || remaining != 48*time.Hour {
		t.Fatalf("IsBlocked() = %v, %v, %v", blocked, at, remaining)
	}
	if blocked, _, _ := r.IsBlocked("https://youtu.be/abc", "Default"); blocked {
		t.Fatalf("block leaked to another domain")
	}
	if blocked, _, _ := r.IsBlocked("https://www.youtube.com/watch?v=abc", "Guest (iOS)"); blocked {
		t.Fatalf("block leaked to another strategy")
	}

	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].Domain != "youtube.com" || snap[0].Strategy != "Default" {
		t.Fatalf("snapshot = %+v", snap)
	}

	now = now.Add(49 * time.Hour)
	if blocked, _, _ := r.IsBlocked("https://www.youtube.com/", "Default"); blocked {
		t.Fatalf("block did not expire")
	}
	if n := r.CleanExpired(); n != 1 {
		t.Fatalf("CleanExpired() = %d, want 1", n)
	}
	if len(r.Snapshot()) != 0 {
		t.Fatalf("expired block still listed")
	}
}

func TestRegistryClear(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Record("https://youtu.be/abc", "Guest (Android)")
	r.Clear("https://youtu.be/xyz", "Guest (Android)")

	if blocked, _, _ := r.IsBlocked("https://youtu.be/abc", "Guest (Android)"); blocked {
		t.Fatalf("block not cleared")
	}
	r.Clear("https://youtu.be/abc", "Guest (Android)")
}

func TestTimeoutForDomain(t *testing.T) {
	t.Parallel()

	if got := TimeoutForDomain("youtube.com"); got != 48*time.Hour {
		t.Fatalf("youtube timeout = %v", got)
	}
	if got := TimeoutForDomain("example.com"); got != 12*time.Hour {
		t.Fatalf("default timeout = %v", got)
	}
}
