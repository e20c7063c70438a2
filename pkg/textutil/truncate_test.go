package textutil

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"accented runes kept whole", "ééééé", 3, "ééé"},
		{"emoji kept whole", "🔥🔥🔥", 2, "🔥🔥"},
		{"mixed ascii and cjk", "abc漢字def", 4, "abc漢"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Truncate(%q, %d) produced invalid UTF-8", tt.in, tt.n)
			}
		})
	}
}

func TestTruncateNeverSplitsRunes(t *testing.T) {
	// A limit that lands mid-rune on a byte count must still yield valid
	// UTF-8 of the requested rune length.
	s := strings.Repeat("é", 200)
	got := Truncate(s, 97)
	if !utf8.ValidString(got) {
		t.Fatal("truncated string is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != 97 {
		t.Errorf("rune count = %d, want 97", n)
	}
}
