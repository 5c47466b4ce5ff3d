package format

import (
	"testing"
	"time"
)

func TestShortHash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "abc", want: "abc"},
		{in: "abcdef1", want: "abcdef1"},
		{in: "abcdef12", want: "abcdef1"},
		{in: "9f2c1e0b7d6a5f4e3c2b1a0", want: "9f2c1e0"},
	}
	for _, tt := range tests {
		got := ShortHash(tt.in)
		if got != tt.want {
			t.Fatalf("ShortHash(%q) = %q, want %q", tt.in, got, tt.want)
		}
		wantLen := min(len(tt.in), ShortHashLen)
		if len(got) != wantLen {
			t.Fatalf("len(ShortHash(%q)) = %d, want %d", tt.in, len(got), wantLen)
		}
	}
}

func TestShortHashKeepsShortInputIdentical(t *testing.T) {
	for _, h := range []string{"a", "ab", "abc1234", "日本"} {
		if got := ShortHash(h); got != h {
			t.Fatalf("ShortHash(%q) = %q, want unchanged", h, got)
		}
	}
}

func TestDate(t *testing.T) {
	if got := Date(time.Time{}, ""); got != "" {
		t.Fatalf("zero time = %q, want empty", got)
	}
	ts := time.Date(2025, time.March, 4, 10, 0, 0, 0, time.UTC)
	if got := Date(ts, ""); got != "2025-03-04" {
		t.Fatalf("default layout = %q, want 2025-03-04", got)
	}
	if got := Date(ts, "02/01"); got != "04/03" {
		t.Fatalf("custom layout = %q, want 04/03", got)
	}
}
