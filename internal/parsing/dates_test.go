package parsing

import "testing"

func TestUploadDate(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"20240115":    "2024-01-15",
		"2023-12-31":  "2023-12-31",
		"Jan 2, 2006": "2006-01-02",
		"":            "",
		"   ":         "",
	} {
		got, err := UploadDate(in)
		if err != nil {
			t.Fatalf("UploadDate(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("UploadDate(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := UploadDate("not a date at all"); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
