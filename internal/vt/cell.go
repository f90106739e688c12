// Package vt implements the screen-reader core's VT emulator: a grid of
// cells driven by control-sequence decode events, fixing the handful of
// deviations from stock terminal emulation that speech narration needs.
package vt

// CellFlags is a bitmask of presentation attributes for a Cell.
type CellFlags uint8

const (
	FlagBold CellFlags = 1 << iota
	FlagUnderline
	FlagReverse
	FlagWideSpacer // this cell is the empty right half of a wide character
)

// CellAttrs holds the presentation attributes attached to a Cell. Colors are
// stored as the raw SGR parameter (256-color index or -1 for default); this
// core never renders, so no color.Color conversion is needed.
type CellAttrs struct {
	Fg    int
	Bg    int
	Flags CellFlags
}

// DefaultAttrs is the attribute set new/cleared cells are given.
var DefaultAttrs = CellAttrs{Fg: -1, Bg: -1}

// Cell is one grid position: a base character plus any combining marks
// (possibly empty for the right half of a wide character), and presentation
// attributes. Invariant: the terminal width of Data is 0, 1, or 2; a 2-wide
// cell is always followed by an empty FlagWideSpacer cell.
type Cell struct {
	Data  string
	Attrs CellAttrs
}

// Reset clears the cell to an empty space with default attributes.
func (c *Cell) Reset() {
	c.Data = ""
	c.Attrs = DefaultAttrs
}

// HasFlag reports whether the given flag is set.
func (c *Cell) HasFlag(f CellFlags) bool { return c.Attrs.Flags&f != 0 }

// IsWideSpacer reports whether this cell is the unoccupied right half of a
// wide character and should be skipped during navigation.
func (c *Cell) IsWideSpacer() bool { return c.HasFlag(FlagWideSpacer) }
