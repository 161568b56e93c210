package extractor

import (
	"strings"
	"unicode/utf8"
)

// Kind tags a classified input line.
type Kind int

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank Kind = iota
	// KindSkillsMarker opens a skills section, optionally with inline items.
	KindSkillsMarker
	// KindBullet starts with a dash or asterisk.
	KindBullet
	// KindPlain is any other line.
	KindPlain
)

func (k Kind) String() (name string) {
	switch k {
	case KindBlank:
		name = "blank"
	case KindSkillsMarker:
		name = "skills-marker"
	case KindBullet:
		name = "bullet"
	case KindPlain:
		name = "plain"
	default:
		name = "unknown"
	}
	return name
}

// Line is a classified input line. Text holds the inline content for a
// skills marker, the stripped content for a bullet and the trimmed line
// for a plain line.
type Line struct {
	Kind      Kind
	Text      string
	HasInline bool
}

const bulletMarkers = "-*"

//nolint:gochecknoglobals // fixed marker set
var skillsMarkers = []string{"skills", "skill:", "skills:"}

// Classify tags a single line. It keeps no state: whether a line counts as
// a skill depends on the lines before it and is decided by the Reducer.
func Classify(raw string) (line Line) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		line = Line{Kind: KindBlank}
		return line
	}

	if isSkillsMarker(trimmed) {
		line = Line{Kind: KindSkillsMarker}
		if idx := strings.Index(trimmed, ":"); idx >= 0 {
			line.Text = strings.TrimSpace(trimmed[idx+1:])
			line.HasInline = line.Text != ""
		}
		return line
	}

	if strings.ContainsRune(bulletMarkers, rune(trimmed[0])) {
		line = Line{
			Kind: KindBullet,
			Text: strings.TrimSpace(strings.TrimLeft(trimmed, bulletMarkers+" ")),
		}
		return line
	}

	line = Line{Kind: KindPlain, Text: trimmed}
	return line
}

// ClassifyText splits raw text into lines and classifies each of them.
func ClassifyText(raw string) (lines []Line) {
	physical := splitLines(raw)
	lines = make([]Line, 0, len(physical))
	for _, p := range physical {
		lines = append(lines, Classify(p))
	}
	return lines
}

func isSkillsMarker(trimmed string) (marker bool) {
	lower := strings.ToLower(trimmed)
	for _, m := range skillsMarkers {
		if strings.HasPrefix(lower, m) {
			marker = true
			return marker
		}
	}
	return marker
}

// splitItems splits a comma separated list, dropping empty items.
func splitItems(text string) (items []string) {
	for _, part := range strings.Split(text, ",") {
		item := strings.TrimSpace(part)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitLines breaks text on every Unicode line boundary, treating \r\n as one.
func splitLines(text string) (lines []string) {
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		next := i + size
		if r == '\r' && next < len(text) && text[next] == '\n' {
			next++
		}
		start = next
		i = next
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) (brk bool) {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		brk = true
	}
	return brk
}
