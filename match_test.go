package gpdf

import (
	"errors"
	"strings"
	"testing"
)

func mustMatcher(t *testing.T, pattern string, window int) *Matcher {
	t.Helper()
	m, err := NewMatcher(pattern, window)
	if err != nil {
		t.Fatalf("NewMatcher(%q): %v", pattern, err)
	}
	return m
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	_, err := NewMatcher("[unclosed", 0)
	if err == nil {
		t.Fatal("expected error for invalid pattern")
	}
	var patternErr *PatternError
	if !errors.As(err, &patternErr) {
		t.Fatalf("error = %T, want *PatternError", err)
	}
	if patternErr.Pattern != "[unclosed" {
		t.Errorf("Pattern = %q, want %q", patternErr.Pattern, "[unclosed")
	}
}

func TestFindAll_CaseInsensitive(t *testing.T) {
	m := mustMatcher(t, "quick", 20)
	matches := m.FindAll("The QUICK brown fox and the Quick grey fox")
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Text != "QUICK" || matches[1].Text != "Quick" {
		t.Errorf("matched %q and %q", matches[0].Text, matches[1].Text)
	}
}

// Every case-insensitive occurrence of a literal substring must be found.
func TestFindAll_LiteralCompleteness(t *testing.T) {
	text := strings.Repeat("alpha beta ALPHA gamma Alpha ", 10)
	m := mustMatcher(t, "alpha", 5)
	if got := len(m.FindAll(text)); got != 30 {
		t.Errorf("got %d matches, want 30", got)
	}
}

func TestFindAll_ContextWindow(t *testing.T) {
	m := mustMatcher(t, "quick", 200)
	matches := m.FindAll("The quick brown fox")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	got := matches[0]
	if got.Before != "The " {
		t.Errorf("Before = %q, want %q", got.Before, "The ")
	}
	if got.Text != "quick" {
		t.Errorf("Text = %q, want %q", got.Text, "quick")
	}
	if got.After != " brown fox" {
		t.Errorf("After = %q, want %q", got.After, " brown fox")
	}
}

func TestFindAll_WindowClippedAtBounds(t *testing.T) {
	text := "abc needle xyz"
	m := mustMatcher(t, "needle", 4)
	matches := m.FindAll(text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Before != "abc " {
		t.Errorf("Before = %q, want %q", matches[0].Before, "abc ")
	}
	if matches[0].After != " xyz" {
		t.Errorf("After = %q, want %q", matches[0].After, " xyz")
	}
}

func TestFindAll_WhitespaceNormalised(t *testing.T) {
	m := mustMatcher(t, "needle", 50)
	matches := m.FindAll("some\n\t  text  needle  more\n lines")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Before != "some text " {
		t.Errorf("Before = %q, want %q", matches[0].Before, "some text ")
	}
	if matches[0].After != " more lines" {
		t.Errorf("After = %q, want %q", matches[0].After, " more lines")
	}
}

func TestFindAll_LeftToRightOrder(t *testing.T) {
	m := mustMatcher(t, "x+", 3)
	matches := m.FindAll("a x b xx c xxx")
	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Start <= matches[i-1].Start {
			t.Errorf("matches out of order: %v", matches)
		}
	}
}

// A window edge falling inside a multi-byte rune must not split it.
func TestFindAll_WindowRespectsRuneBoundaries(t *testing.T) {
	text := "ééééé needle ééééé"
	m := mustMatcher(t, "needle", 4)
	matches := m.FindAll(text)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	for _, part := range []string{matches[0].Before, matches[0].After} {
		if strings.ContainsRune(part, '�') {
			t.Errorf("context contains replacement rune: %q", part)
		}
	}
}

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a  b", "a b"},
		{"a\n\t b", "a b"},
		{"  a", " a"},
		{"a  ", "a "},
	}
	for _, tt := range tests {
		if got := collapseSpace(tt.in); got != tt.want {
			t.Errorf("collapseSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
