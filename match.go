package gpdf

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultContextWindow is the number of bytes of context captured on each
// side of a match.
const DefaultContextWindow = 120

// Match is a single occurrence of the pattern within one page's text.
// Start and End are byte offsets into the page text; the context fields
// are whitespace-normalised and clipped at the page boundary.
type Match struct {
	Start, End int
	Before     string
	Text       string
	After      string
}

// Matcher applies a case-insensitive regular expression to page text and
// yields every occurrence with its surrounding context window. A Matcher
// holds no per-page state and is safe to reuse across pages and files.
type Matcher struct {
	re     *regexp.Regexp
	window int
}

// NewMatcher compiles pattern case-insensitively. A non-positive window
// falls back to [DefaultContextWindow].
func NewMatcher(pattern string, window int) (*Matcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	if window <= 0 {
		window = DefaultContextWindow
	}
	return &Matcher{re: re, window: window}, nil
}

// FindAll returns every non-overlapping occurrence in text, left to
// right. The context windows never extend past the bounds of text.
func (m *Matcher) FindAll(text string) []Match {
	idx := m.re.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}
	matches := make([]Match, 0, len(idx))
	for _, span := range idx {
		start, end := span[0], span[1]
		left := runeFloor(text, max(0, start-m.window))
		right := runeCeil(text, min(len(text), end+m.window))
		matches = append(matches, Match{
			Start:  start,
			End:    end,
			Before: strings.TrimLeftFunc(collapseSpace(text[left:start]), unicode.IsSpace),
			Text:   collapseSpace(text[start:end]),
			After:  strings.TrimRightFunc(collapseSpace(text[end:right]), unicode.IsSpace),
		})
	}
	return matches
}

// collapseSpace reduces every whitespace run to a single space, so that
// extracted context reads as one line.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// runeFloor moves i back to the nearest rune boundary at or before it.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// runeCeil moves i forward to the nearest rune boundary at or after it.
func runeCeil(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}
