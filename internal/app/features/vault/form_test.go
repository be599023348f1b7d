package vault

import (
	"testing"
	"time"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"go", []string{"go"}},
		{"go,web, http ", []string{"go", "web", " http "}},
	}
	for _, tt := range tests {
		got := splitTags(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitTags(%q): got %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitTags(%q)[%d]: got %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseReminder(t *testing.T) {
	if got := parseReminder(""); got != nil {
		t.Errorf("empty input: got %v, want nil", got)
	}
	if got := parseReminder("not a date"); got != nil {
		t.Errorf("garbage input: got %v, want nil", got)
	}

	got := parseReminder("2026-09-01T09:30")
	want := time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("datetime-local input: got %v, want %v", got, want)
	}

	got = parseReminder("2026-09-01")
	want = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	if got == nil || !got.Equal(want) {
		t.Errorf("bare date input: got %v, want %v", got, want)
	}
}

func TestJoinTags(t *testing.T) {
	if got := joinTags(nil); got != "" {
		t.Errorf("nil tags: got %q", got)
	}
	if got := joinTags([]string{"go", "web"}); got != "go, web" {
		t.Errorf("got %q, want %q", got, "go, web")
	}
}
