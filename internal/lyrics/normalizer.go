// Package lyrics handles retrieval and cleanup of song lyrics.
//
// Raw provider text arrives full of markup: contributor preambles, section
// labels, production credits, translation banners, URLs. [Normalizer] turns it
// into plain prose suitable for emotion classification; [GeniusClient] and
// [Service] handle fetching and caching.
package lyrics

import (
	"regexp"
	"strings"
)

var (
	// Leading "N Contributors ... Lyrics" preamble on scraped pages.
	contributorRe = regexp.MustCompile(`(?is)^\s*\d+\s*contributors?.*?lyrics`)
	// Song description blurb terminated by a "Read More" marker.
	readMoreRe = regexp.MustCompile(`(?is)^.*?read more`)
	// Production and media credits, e.g. "[Produced by ...]".
	creditRe = regexp.MustCompile(`(?i)\[\s*(?:produced|video|audio|directed|mixed|mastered)\s+by[^\]]*\]`)
	// Structural section labels. Text following them on the same line survives.
	sectionRe = regexp.MustCompile(`(?i)\[\s*(?:intro|outro|hook|bridge|chorus|pre[\s-]?chorus|post[\s-]?chorus|verse(?:\s*\d+)?)[^\]]*\]`)
	bracketRe  = regexp.MustCompile(`\[[^\]]*\]`)
	blankRunRe = regexp.MustCompile(`\n{2,}`)
	urlRe      = regexp.MustCompile(`https?://\S+`)
	// Anything outside prose characters becomes a space and collapses later.
	junkCharRe = regexp.MustCompile(`[^a-zA-Z0-9\s'.,!?-]`)
	spaceRunRe = regexp.MustCompile(`[ \t]+`)
	lineEdgeRe = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// translationLanguages lists language names Genius uses for translation
// banners. Bare tokens matching one of these are dropped wholesale.
var translationLanguages = map[string]struct{}{
	"deutsch":    {},
	"español":    {},
	"français":   {},
	"italiano":   {},
	"português":  {},
	"türkçe":     {},
	"русский":    {},
	"українська": {},
	"polski":     {},
	"nederlands": {},
	"svenska":    {},
	"norsk":      {},
	"suomi":      {},
	"dansk":      {},
	"čeština":    {},
	"magyar":     {},
	"română":     {},
	"ελληνικά":   {},
	"العربية":    {},
	"עברית":      {},
	"日本語":        {},
	"한국어":        {},
	"中文":         {},
}

// Normalizer converts raw provider lyrics into clean prose.
//
// HeaderLen is the length of the fixed boilerplate prefix some providers
// prepend; it varies by provider and is configured, never hard-coded.
type Normalizer struct {
	HeaderLen int
}

// NewNormalizer creates a Normalizer that strips headerLen leading characters.
func NewNormalizer(headerLen int) *Normalizer {
	if headerLen < 0 {
		headerLen = 0
	}
	return &Normalizer{HeaderLen: headerLen}
}

// Normalize applies the full cleanup sequence to raw lyrics text.
//
// Total and deterministic: every input, including the empty string, yields a
// defined output. The result may be empty when the input was pure metadata;
// callers treat that as "no usable lyrics" and stop before classification.
// The output contains no bracketed annotation, no URL, and no blank-line run.
func (n *Normalizer) Normalize(raw string) string {
	text := raw

	// Order matters: later rules assume earlier ones already removed structure.
	if n.HeaderLen > 0 {
		if len(text) <= n.HeaderLen {
			return ""
		}
		text = text[n.HeaderLen:]
	}

	text = contributorRe.ReplaceAllString(text, "")
	text = readMoreRe.ReplaceAllString(text, "")
	text = creditRe.ReplaceAllString(text, "")
	text = sectionRe.ReplaceAllString(text, "")
	text = bracketRe.ReplaceAllString(text, "")
	text = dropLanguageTokens(text)
	text = urlRe.ReplaceAllString(text, "")
	text = junkCharRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = lineEdgeRe.ReplaceAllString(text, "\n")
	// The blank-run collapse runs last: the passes above can empty a line
	// (a URL-only line, a run of junk characters) and that emptied line
	// must collapse too, or the output would not be idempotent.
	text = blankRunRe.ReplaceAllString(text, "\n")

	return strings.TrimSpace(text)
}

// dropLanguageTokens removes bare translation-language tokens line by line.
func dropLanguageTokens(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fields := strings.Fields(line)
		kept := fields[:0]
		for _, f := range fields {
			if _, ok := translationLanguages[strings.ToLower(f)]; ok {
				continue
			}
			kept = append(kept, f)
		}
		lines[i] = strings.Join(kept, " ")
	}
	return strings.Join(lines, "\n")
}
