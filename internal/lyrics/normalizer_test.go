package lyrics

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(0)

	tc := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "section labels removed, text preserved",
			raw:  "[Chorus] I'm so happy today! [Verse 1] Sunshine everywhere",
			want: "I'm so happy today! Sunshine everywhere",
		},
		{
			name: "contributor preamble stripped",
			raw:  "23 Contributors\nSunshine Song Lyrics\nWalking on sunshine",
			want: "Walking on sunshine",
		},
		{
			name: "read more blurb stripped",
			raw:  "A song about better days, recorded in 1983. Read More\nWalking on sunshine",
			want: "Walking on sunshine",
		},
		{
			name: "production credits removed",
			raw:  "[Produced by Rick Rubin]\n[Video by Somebody]\nHere comes the sun",
			want: "Here comes the sun",
		},
		{
			name: "leftover brackets removed",
			raw:  "[Instrumental]\nLa la la [x4]",
			want: "La la la",
		},
		{
			name: "translation banner dropped",
			raw:  "Türkçe Español Deutsch\nReal lyrics line",
			want: "Real lyrics line",
		},
		{
			name: "urls removed",
			raw:  "check https://example.com/lyrics for more\nreal line",
			want: "check for more\nreal line",
		},
		{
			name: "unmatched bracket becomes space",
			raw:  "so [ weird",
			want: "so weird",
		},
		{
			name: "blank line runs collapse",
			raw:  "first line\n\n\n\nsecond line",
			want: "first line\nsecond line",
		},
		{
			name: "divider line of symbols collapses away",
			raw:  "first line\n###\nsecond line",
			want: "first line\nsecond line",
		},
		{
			name: "url-only line collapses away",
			raw:  "first line\nhttps://x.test/only\nsecond line",
			want: "first line\nsecond line",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "pure metadata collapses to empty",
			raw:  "[Chorus]\n[Verse 2]\n[Produced by X]",
			want: "",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.raw)
			if got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeHeaderStrip(t *testing.T) {
	n := NewNormalizer(5)

	t.Run("strips fixed prefix", func(t *testing.T) {
		if got := n.Normalize("XXXXXhello world"); got != "hello world" {
			t.Errorf("Normalize() = %q, want %q", got, "hello world")
		}
	})

	t.Run("input shorter than header yields empty", func(t *testing.T) {
		if got := n.Normalize("abc"); got != "" {
			t.Errorf("Normalize() = %q, want empty", got)
		}
	})

	t.Run("input exactly header length yields empty", func(t *testing.T) {
		if got := n.Normalize("XXXXX"); got != "" {
			t.Errorf("Normalize() = %q, want empty", got)
		}
	})
}

func TestNormalizeProperties(t *testing.T) {
	n := NewNormalizer(0)

	inputs := []string{
		"",
		"plain already clean prose, nothing to do here.",
		"[Chorus] happy [Verse 12] text\n\n\nhttp://x.test/page [Produced by Y] Türkçe",
		"unicode — em dash and “quotes” and emoji 🎵 stay out",
		"[ broken ] [unclosed\nhttps://a.b/c?d=e#f end",
		"first\n***\nsecond",
		"first\nhttps://x.test/only\nsecond",
	}

	t.Run("deterministic", func(t *testing.T) {
		for _, in := range inputs {
			if n.Normalize(in) != n.Normalize(in) {
				t.Errorf("Normalize not deterministic for %q", in)
			}
		}
	})

	t.Run("idempotent on its own output", func(t *testing.T) {
		for _, in := range inputs {
			once := n.Normalize(in)
			twice := n.Normalize(once)
			if once != twice {
				t.Errorf("Normalize not idempotent: %q -> %q", once, twice)
			}
		}
	})

	t.Run("output free of markup", func(t *testing.T) {
		for _, in := range inputs {
			out := n.Normalize(in)
			if strings.ContainsAny(out, "[]") {
				t.Errorf("output contains bracket: %q", out)
			}
			if strings.Contains(out, "http://") || strings.Contains(out, "https://") {
				t.Errorf("output contains URL: %q", out)
			}
			if strings.Contains(out, "\n\n") {
				t.Errorf("output contains blank line run: %q", out)
			}
		}
	})
}
