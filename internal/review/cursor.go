// Package review implements the off-screen review cursor: a position
// independent of the live terminal cursor that the user steps around the
// screen buffer to re-hear lines, characters, and words already drawn.
package review

import (
	"strings"

	"tdsr/internal/vt"
)

// Cursor tracks a review position (Y, X) against a live screen. It holds
// no speech logic; callers decide how to announce the strings and
// boundary signals it returns.
type Cursor struct {
	Screen *vt.Screen
	Y, X   int
}

// NewCursor returns a cursor pinned to the screen's origin.
func NewCursor(screen *vt.Screen) *Cursor {
	return &Cursor{Screen: screen}
}

// Clamp keeps Y/X within the current screen bounds, needed after a resize
// shrinks the grid out from under a review position.
func (c *Cursor) Clamp() {
	if c.Y < 0 {
		c.Y = 0
	}
	if c.Y > c.Screen.Rows-1 {
		c.Y = c.Screen.Rows - 1
	}
	if c.X < 0 {
		c.X = 0
	}
	if c.X > c.Screen.Cols-1 {
		c.X = c.Screen.Cols - 1
	}
}

func (c *Cursor) rawAt(y, x int) string {
	return c.Screen.Cell(x, y).Data
}

// skipToPreviousChar backs X up over wide-character spacer cells, whose
// Data is empty.
func (c *Cursor) skipToPreviousChar() {
	for c.X > 0 && c.rawAt(c.Y, c.X) == "" {
		c.X--
	}
}

// LineText joins row y and trims leading and trailing whitespace, per the
// original's blank-line handling; an empty result means the line is
// visually blank.
func (c *Cursor) LineText(y int) string {
	var b strings.Builder
	for x := 0; x < c.Screen.Cols; x++ {
		b.WriteString(c.rawAt(y, x))
	}
	return strings.TrimSpace(b.String())
}

// PrevLine moves the review cursor up one row, clamping at the top and
// reporting "top" as boundary when it does.
func (c *Cursor) PrevLine() (boundary, text string) {
	c.Y--
	if c.Y < 0 {
		boundary = "top"
		c.Y = 0
	}
	return boundary, c.LineText(c.Y)
}

// NextLine moves the review cursor down one row, clamping at the bottom.
func (c *Cursor) NextLine() (boundary, text string) {
	c.Y++
	if c.Y > c.Screen.Rows-1 {
		boundary = "bottom"
		c.Y = c.Screen.Rows - 1
	}
	return boundary, c.LineText(c.Y)
}

// TopOfScreen jumps the review cursor to row 0.
func (c *Cursor) TopOfScreen() string {
	c.Y = 0
	return c.LineText(c.Y)
}

// BottomOfScreen jumps the review cursor to the last row.
func (c *Cursor) BottomOfScreen() string {
	c.Y = c.Screen.Rows - 1
	return c.LineText(c.Y)
}

// CharAt returns the raw cell data at (y, x), exactly as drawn (possibly
// empty for a wide-character spacer).
func (c *Cursor) CharAt(y, x int) string {
	return c.rawAt(y, x)
}

// PrevChar moves the review cursor left one character column, clamping at
// column 0 and reporting "left".
func (c *Cursor) PrevChar() (boundary, ch string) {
	c.X--
	if c.X < 0 {
		boundary = "left"
		c.X = 0
	}
	c.skipToPreviousChar()
	return boundary, c.rawAt(c.Y, c.X)
}

// NextChar moves the review cursor right by the display width of the
// character currently under it, clamping at the last column and reporting
// "right".
func (c *Cursor) NextChar() (boundary, ch string) {
	cur := c.rawAt(c.Y, c.X)
	width := 1
	if r := firstRune(cur); r != 0 {
		if w := vt.RuneWidth(r); w > 0 {
			width = w
		}
	}
	c.X += width
	if c.X > c.Screen.Cols-1 {
		boundary = "right"
		c.X = c.Screen.Cols - 1
		c.skipToPreviousChar()
	}
	return boundary, c.rawAt(c.Y, c.X)
}

// StartOfLine jumps to column 0 of the current row.
func (c *Cursor) StartOfLine() string {
	c.X = 0
	return c.rawAt(c.Y, c.X)
}

// EndOfLine jumps to the last column of the current row.
func (c *Cursor) EndOfLine() string {
	c.X = c.Screen.Cols - 1
	return c.rawAt(c.Y, c.X)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

// movePrevChar steps the cursor left, wrapping to the end of the previous
// row, used by the word-scanning helpers below which cross line
// boundaries (unlike PrevChar/NextChar, which clamp within the row).
func (c *Cursor) movePrevChar() bool {
	if c.X == 0 {
		if c.Y == 0 {
			return false
		}
		c.Y--
		c.X = c.Screen.Cols - 1
		return true
	}
	c.X--
	return true
}

func (c *Cursor) moveNextChar() bool {
	if c.X == c.Screen.Cols-1 {
		if c.Y == c.Screen.Rows-1 {
			return false
		}
		c.Y++
		c.X = 0
		return true
	}
	c.X++
	return true
}

func (c *Cursor) charIsSpace(y, x int) bool {
	return c.rawAt(y, x) == " "
}

// wordAt reads the word under the current position without moving the
// cursor: it rewinds to the word's start, walks forward collecting
// characters, then restores X/Y. blank reports the cursor sat on an
// isolated space with nothing to read.
func (c *Cursor) wordAt() (blank bool, word string) {
	origX, origY := c.X, c.Y
	defer func() { c.X, c.Y = origX, origY }()

	for c.X > 0 && !c.charIsSpace(c.Y, c.X) && !c.charIsSpace(c.Y, c.X-1) {
		c.movePrevChar()
	}
	if c.X == 0 && c.charIsSpace(c.Y, c.X) {
		return true, ""
	}

	var b strings.Builder
	b.WriteString(c.rawAt(c.Y, c.X))
	for c.X < c.Screen.Cols-1 {
		c.moveNextChar()
		if c.charIsSpace(c.Y, c.X) {
			break
		}
		b.WriteString(c.rawAt(c.Y, c.X))
	}
	return false, b.String()
}

// Word reads the word under the review cursor without moving it.
func (c *Cursor) Word() (blank bool, word string) {
	return c.wordAt()
}

// PrevWord moves the review cursor to the start of the previous word and
// reads it. boundary is "left" when already at the start of the line.
func (c *Cursor) PrevWord() (boundary string, blank bool, word string) {
	if c.X == 0 {
		blank, word = c.wordAt()
		return "left", blank, word
	}
	for c.X > 0 && !c.charIsSpace(c.Y, c.X) {
		c.movePrevChar()
	}
	for c.X > 0 && c.charIsSpace(c.Y, c.X) {
		c.movePrevChar()
	}
	for c.X > 0 && !c.charIsSpace(c.Y, c.X) && !c.charIsSpace(c.Y, c.X-1) {
		c.movePrevChar()
	}
	blank, word = c.wordAt()
	return "", blank, word
}

// NextWord moves the review cursor to the start of the next word and
// reads it. boundary is "right" when the scan runs off the end of the
// line without finding one, in which case the position is restored and
// the current word is re-read.
func (c *Cursor) NextWord() (boundary string, blank bool, word string) {
	origX, origY := c.X, c.Y
	last := c.Screen.Cols - 1

	for c.X < last && !c.charIsSpace(c.Y, c.X) {
		c.moveNextChar()
	}
	for c.X < last && c.charIsSpace(c.Y, c.X) {
		c.moveNextChar()
	}
	if c.X == last && c.charIsSpace(c.Y, c.X) {
		c.X, c.Y = origX, origY
		blank, word = c.wordAt()
		return "right", blank, word
	}
	blank, word = c.wordAt()
	return "", blank, word
}
