package review

import "strings"

// Selection tracks the pending copy anchor set by the first press of the
// clipboard key; a second press completes the range and clears it.
type Selection struct {
	active  bool
	originY int
	originX int
}

// Begin anchors the selection at (y, x). It is a no-op if a selection is
// already pending.
func (s *Selection) Begin(y, x int) {
	if s.active {
		return
	}
	s.active = true
	s.originY, s.originX = y, x
}

// Pending reports whether a selection anchor is currently set.
func (s *Selection) Pending() bool {
	return s.active
}

// End completes the selection against (y, x) and clears the pending
// anchor, in whichever row/column order; the caller is responsible for
// reading the resulting range's text before doing anything else with the
// cursor.
func (s *Selection) End(y, x int) (startY, startX, endY, endX int) {
	startY, startX, endY, endX = s.originY, s.originX, y, x
	if startX > endX {
		startX, endX = endX, startX
	}
	if startY > endY {
		startY, endY = endY, startY
	}
	s.active = false
	return
}

// CopyTextFromCursor extracts text from a *vt.Screen-backed cursor's
// screen between two review positions (inclusive), trimming trailing
// whitespace per row, per the original's copy_text behavior.
func CopyTextFromCursor(c *Cursor, startY, startX, endY, endX int) string {
	if startX > endX {
		startX, endX = endX, startX
	}
	if startY > endY {
		startY, endY = endY, startY
	}
	var rows []string
	start := startX
	for y := startY; y <= endY; y++ {
		end := c.Screen.Cols - 1
		if y >= endY {
			end = endX
		}
		if y > startY {
			start = 0
		}
		var b strings.Builder
		for x := start; x <= end; x++ {
			b.WriteString(c.rawAt(y, x))
		}
		rows = append(rows, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(rows, "\n")
}
