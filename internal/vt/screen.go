package vt

// Cursor is the emulator's own on-grid cursor position and current draw
// attributes (distinct from the review cursor in package review).
type Cursor struct {
	X, Y  int
	Attrs CellAttrs
}

type savedScreen struct {
	buf    [][]Cell
	cursor Cursor
}

// Screen is a fixed rows x cols grid with a cursor, scroll margins, and an
// optional saved alternate buffer for mode 1049. It has no notion of
// speech; package engine's Handler observes draws and feeds speech.Buffer.
type Screen struct {
	Rows, Cols int
	Cursor     Cursor
	Top        int // scroll margin, inclusive, 0-based
	Bottom     int // scroll margin, inclusive, 0-based

	buf   [][]Cell
	saved *savedScreen
}

// NewScreen allocates a rows x cols screen with default margins spanning the
// whole grid.
func NewScreen(rows, cols int) *Screen {
	s := &Screen{Rows: rows, Cols: cols}
	s.buf = newGrid(rows, cols)
	s.Top, s.Bottom = 0, rows-1
	s.Cursor.Attrs = DefaultAttrs
	return s
}

func newGrid(rows, cols int) [][]Cell {
	g := make([][]Cell, rows)
	for y := range g {
		g[y] = make([]Cell, cols)
		for x := range g[y] {
			g[y][x].Attrs = DefaultAttrs
		}
	}
	return g
}

// Cell returns the cell at (x, y). Out-of-bounds coordinates return a zero
// Cell (callers are expected to clamp first; this is a defensive fallback).
func (s *Screen) Cell(x, y int) Cell {
	if y < 0 || y >= s.Rows || x < 0 || x >= s.Cols {
		return Cell{Attrs: DefaultAttrs}
	}
	return s.buf[y][x]
}

func (s *Screen) setCell(x, y int, c Cell) {
	if y < 0 || y >= s.Rows || x < 0 || x >= s.Cols {
		return
	}
	s.buf[y][x] = c
}

// clampCursor keeps the cursor within current dimensions; invariant required
// after every operation (spec.md §4.2).
func (s *Screen) clampCursor() {
	if s.Cursor.X < 0 {
		s.Cursor.X = 0
	}
	if s.Cursor.X >= s.Cols {
		s.Cursor.X = s.Cols - 1
	}
	if s.Cursor.Y < 0 {
		s.Cursor.Y = 0
	}
	if s.Cursor.Y >= s.Rows {
		s.Cursor.Y = s.Rows - 1
	}
}

// Resize changes the grid dimensions, preserving existing content in the
// overlapping region. Margins reset to the full screen.
func (s *Screen) Resize(rows, cols int) {
	ng := newGrid(rows, cols)
	for y := 0; y < rows && y < s.Rows; y++ {
		for x := 0; x < cols && x < s.Cols; x++ {
			ng[y][x] = s.buf[y][x]
		}
	}
	s.buf = ng
	s.Rows, s.Cols = rows, cols
	s.Top, s.Bottom = 0, rows-1
	s.clampCursor()
}

// ClearRow blanks an entire row.
func (s *Screen) ClearRow(y int) {
	if y < 0 || y >= s.Rows {
		return
	}
	for x := range s.buf[y] {
		s.buf[y][x] = Cell{Attrs: s.Cursor.Attrs}
	}
}

// ClearRowRange blanks columns [from, to) of row y.
func (s *Screen) ClearRowRange(y, from, to int) {
	if y < 0 || y >= s.Rows {
		return
	}
	if from < 0 {
		from = 0
	}
	if to > s.Cols {
		to = s.Cols
	}
	for x := from; x < to; x++ {
		s.buf[y][x] = Cell{Attrs: s.Cursor.Attrs}
	}
}

// ClearAll blanks the whole grid.
func (s *Screen) ClearAll() {
	for y := range s.buf {
		s.ClearRow(y)
	}
}

// ScrollUp moves lines within [top, bottom] up by n (n<=0 normalized to 1
// per spec.md §4.2); lines scrolled off the top are discarded, new blank
// lines appear at the bottom of the region. Cursor position is preserved.
func (s *Screen) ScrollUp(n int) {
	if n <= 0 {
		n = 1
	}
	top, bottom := s.marginsOrWhole()
	for i := 0; i < n; i++ {
		for y := top; y < bottom; y++ {
			s.buf[y] = s.buf[y+1]
		}
		s.buf[bottom] = make([]Cell, s.Cols)
		for x := range s.buf[bottom] {
			s.buf[bottom][x].Attrs = DefaultAttrs
		}
	}
}

// ScrollDown moves lines within [top, bottom] down by n (n<=0 normalized to
// 1); lines scrolled off the bottom are discarded, new blank lines appear at
// the top of the region. Cursor position is preserved.
func (s *Screen) ScrollDown(n int) {
	if n <= 0 {
		n = 1
	}
	top, bottom := s.marginsOrWhole()
	for i := 0; i < n; i++ {
		for y := bottom; y > top; y-- {
			s.buf[y] = s.buf[y-1]
		}
		s.buf[top] = make([]Cell, s.Cols)
		for x := range s.buf[top] {
			s.buf[top][x].Attrs = DefaultAttrs
		}
	}
}

func (s *Screen) marginsOrWhole() (top, bottom int) {
	top, bottom = s.Top, s.Bottom
	if top < 0 || bottom >= s.Rows || top > bottom {
		top, bottom = 0, s.Rows-1
	}
	return
}

// SetScrollRegion sets the scroll margins (0-based, inclusive).
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= s.Rows {
		bottom = s.Rows - 1
	}
	if top > bottom {
		return
	}
	s.Top, s.Bottom = top, bottom
}

// SaveAlternate deep-copies the current buffer and cursor for mode 1049 set.
func (s *Screen) SaveAlternate() {
	cp := make([][]Cell, len(s.buf))
	for y, row := range s.buf {
		cp[y] = make([]Cell, len(row))
		copy(cp[y], row)
	}
	s.saved = &savedScreen{buf: cp, cursor: s.Cursor}
	s.ClearAll()
}

// RestoreAlternate restores the buffer and cursor saved by SaveAlternate. A
// reset with no prior save is a no-op per spec.md §4.2.
func (s *Screen) RestoreAlternate() {
	if s.saved == nil {
		return
	}
	s.buf = s.saved.buf
	s.Cursor = s.saved.cursor
	s.saved = nil
}
