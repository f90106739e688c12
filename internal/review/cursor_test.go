package review

import (
	"testing"

	"tdsr/internal/vt"
)

type noopHooks struct{}

func (noopHooks) OnDraw(string, int) {}
func (noopHooks) OnLineFeed()        {}
func (noopHooks) OnTab()             {}
func (noopHooks) OnBackspace()       {}

// fillRow writes text into row y through the real draw path (vt.Handler),
// the same way the emulator would from decoded PTY output.
func fillRow(s *vt.Screen, y int, text string) {
	h := &vt.Handler{Screen: s, Hooks: noopHooks{}}
	s.Cursor.X, s.Cursor.Y = 0, y
	for _, r := range text {
		h.Input(r)
	}
}

func TestCursor_LineTextTrimsAndBlank(t *testing.T) {
	s := vt.NewScreen(3, 10)
	fillRow(s, 0, "  hi  ")
	c := NewCursor(s)
	if got := c.LineText(0); got != "hi" {
		t.Fatalf("expected %q, got %q", "hi", got)
	}
	if got := c.LineText(1); got != "" {
		t.Fatalf("expected blank line, got %q", got)
	}
}

func TestCursor_PrevLineClampsAtTop(t *testing.T) {
	s := vt.NewScreen(3, 10)
	c := NewCursor(s)
	boundary, _ := c.PrevLine()
	if boundary != "top" {
		t.Fatalf("expected top boundary, got %q", boundary)
	}
	if c.Y != 0 {
		t.Fatalf("expected Y clamped to 0, got %d", c.Y)
	}
}

func TestCursor_NextLineClampsAtBottom(t *testing.T) {
	s := vt.NewScreen(3, 10)
	c := NewCursor(s)
	c.Y = 2
	boundary, _ := c.NextLine()
	if boundary != "bottom" {
		t.Fatalf("expected bottom boundary, got %q", boundary)
	}
	if c.Y != 2 {
		t.Fatalf("expected Y clamped to 2, got %d", c.Y)
	}
}

func TestCursor_PrevCharAndNextCharBoundaries(t *testing.T) {
	s := vt.NewScreen(1, 5)
	fillRow(s, 0, "abc")
	c := NewCursor(s)

	boundary, _ := c.PrevChar()
	if boundary != "left" || c.X != 0 {
		t.Fatalf("expected left boundary at X=0, got %q X=%d", boundary, c.X)
	}

	c.X = 4
	boundary, _ = c.NextChar()
	// Columns 3 and 4 are empty (only "abc" was drawn), so the
	// right-boundary clamp's skip-back walks all the way to the last
	// non-empty cell, column 2 ('c').
	if boundary != "right" || c.X != 2 {
		t.Fatalf("expected right boundary at X=2, got %q X=%d", boundary, c.X)
	}
}

func TestCursor_WordNavigation(t *testing.T) {
	s := vt.NewScreen(1, 20)
	fillRow(s, 0, "hello world")
	c := NewCursor(s)

	blank, word := c.Word()
	if blank || word != "hello" {
		t.Fatalf("expected %q, got %q (blank=%v)", "hello", word, blank)
	}

	boundary, blank, word := c.NextWord()
	if boundary != "" || blank || word != "world" {
		t.Fatalf("expected word 'world', got %q boundary=%q blank=%v", word, boundary, blank)
	}

	boundary, blank, word = c.PrevWord()
	if boundary != "" || blank || word != "hello" {
		t.Fatalf("expected word 'hello' going back, got %q boundary=%q blank=%v", word, boundary, blank)
	}
}

func TestCursor_PrevWordAtLeftBoundary(t *testing.T) {
	s := vt.NewScreen(1, 20)
	fillRow(s, 0, "hello")
	c := NewCursor(s)
	boundary, _, word := c.PrevWord()
	if boundary != "left" || word != "hello" {
		t.Fatalf("expected left boundary with word %q, got boundary=%q word=%q", "hello", boundary, word)
	}
}
