package vt

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// DrawHooks lets callers observe grid mutations without the emulator
// depending on the speech package. Implemented by engine.Session.
type DrawHooks interface {
	// OnDraw is called once per grapheme written to the grid, after the grid
	// is updated, with the number of columns the cursor jumped over on the
	// same row since the previous draw (0 for a normal advance).
	OnDraw(grapheme string, colsSkipped int)
	// OnLineFeed is called when the emulator advances to the next line.
	OnLineFeed()
	// OnTab is called on horizontal tab.
	OnTab()
	// OnBackspace is called before the grid cursor moves left.
	OnBackspace()
}

// Handler implements ansicode.Handler, driving a *Screen from decoded
// control-sequence events and reporting draw-relevant events to DrawHooks.
// It never writes to the PTY: DSR/OSC/DA style replies are left to the real
// controlling terminal, which receives the same child bytes verbatim — see
// SPEC_FULL.md §4.2.
type Handler struct {
	Screen *Screen
	Hooks  DrawHooks

	lastX, lastY int
	haveLast     bool
	savedCursor  *Cursor
}

var _ ansicode.Handler = (*Handler)(nil)

// Input is the core draw path: one decoded rune at a time. Zero-width
// runes (combining marks) attach to the previous cell's Data rather than
// being dropped.
func (h *Handler) Input(r rune) {
	s := h.Screen
	w := RuneWidth(r)

	if w == 0 {
		if s.Cursor.X > 0 {
			c := s.Cell(s.Cursor.X-1, s.Cursor.Y)
			c.Data += string(r)
			s.setCell(s.Cursor.X-1, s.Cursor.Y, c)
		}
		return
	}

	// A draw into the last column leaves the cursor there with a wrap
	// pending, so the next character starts the following line.
	wrapPending := h.haveLast && h.lastY == s.Cursor.Y && h.lastX == s.Cols-1 && s.Cursor.X == s.Cols-1
	if wrapPending || s.Cursor.X+w > s.Cols {
		s.Cursor.X = 0
		h.advanceLine()
	}

	skipped := 0
	if h.haveLast && s.Cursor.Y == h.lastY && s.Cursor.X > h.lastX+1 {
		skipped = s.Cursor.X - h.lastX - 1
	}

	s.setCell(s.Cursor.X, s.Cursor.Y, Cell{Data: string(r), Attrs: s.Cursor.Attrs})
	s.Cursor.X++
	if w == 2 && s.Cursor.X < s.Cols {
		spacer := Cell{Attrs: s.Cursor.Attrs}
		spacer.Attrs.Flags |= FlagWideSpacer
		s.setCell(s.Cursor.X, s.Cursor.Y, spacer)
		s.Cursor.X++
	}
	h.lastX, h.lastY, h.haveLast = s.Cursor.X-1, s.Cursor.Y, true
	s.clampCursor()

	if h.Hooks != nil {
		h.Hooks.OnDraw(string(r), skipped)
	}
}

func (h *Handler) advanceLine() {
	s := h.Screen
	if s.Cursor.Y >= s.Bottom {
		s.ScrollUp(1)
	} else {
		s.Cursor.Y++
	}
}

func (h *Handler) LineFeed() {
	h.advanceLine()
	h.haveLast = false
	if h.Hooks != nil {
		h.Hooks.OnLineFeed()
	}
}

func (h *Handler) CarriageReturn() {
	h.Screen.Cursor.X = 0
	h.haveLast = false
}

func (h *Handler) Tab(n int) {
	s := h.Screen
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		next := (s.Cursor.X/8 + 1) * 8
		if next >= s.Cols {
			next = s.Cols - 1
		}
		s.Cursor.X = next
	}
	if h.Hooks != nil {
		h.Hooks.OnTab()
	}
}

func (h *Handler) Backspace() {
	if h.Hooks != nil {
		h.Hooks.OnBackspace()
	}
	if h.Screen.Cursor.X > 0 {
		h.Screen.Cursor.X--
	}
}

func (h *Handler) Bell()                    {}
func (h *Handler) Decaln()                  {}
func (h *Handler) HorizontalTabSet()        {}
func (h *Handler) Substitute()               {}
func (h *Handler) ReverseIndex() {
	s := h.Screen
	if s.Cursor.Y <= s.Top {
		s.ScrollDown(1)
	} else {
		s.Cursor.Y--
	}
}

func (h *Handler) Goto(row, col int) {
	h.Screen.Cursor.Y = row
	h.Screen.Cursor.X = col
	h.Screen.clampCursor()
}

func (h *Handler) GotoCol(col int) {
	h.Screen.Cursor.X = col
	h.Screen.clampCursor()
}

func (h *Handler) GotoLine(row int) {
	h.Screen.Cursor.Y = row
	h.Screen.clampCursor()
}

func (h *Handler) MoveForward(n int)   { h.Screen.Cursor.X += n; h.Screen.clampCursor() }
func (h *Handler) MoveBackward(n int)  { h.Screen.Cursor.X -= n; h.Screen.clampCursor() }
func (h *Handler) MoveUp(n int)        { h.Screen.Cursor.Y -= n; h.Screen.clampCursor() }
func (h *Handler) MoveDown(n int)      { h.Screen.Cursor.Y += n; h.Screen.clampCursor() }
func (h *Handler) MoveUpCr(n int)      { h.MoveUp(n); h.Screen.Cursor.X = 0 }
func (h *Handler) MoveDownCr(n int)    { h.MoveDown(n); h.Screen.Cursor.X = 0 }
func (h *Handler) MoveForwardTabs(n int) {
	for i := 0; i < n; i++ {
		h.Tab(1)
	}
}
func (h *Handler) MoveBackwardTabs(n int) {
	s := h.Screen
	for i := 0; i < n; i++ {
		prev := (s.Cursor.X-1)/8*8 - 1
		if s.Cursor.X%8 == 0 {
			prev = s.Cursor.X - 8
		}
		if prev < 0 {
			prev = 0
		}
		s.Cursor.X = prev
	}
}

func (h *Handler) SaveCursorPosition() {
	cur := h.Screen.Cursor
	h.savedCursor = &cur
}
func (h *Handler) RestoreCursorPosition() {
	if h.savedCursor != nil {
		h.Screen.Cursor = *h.savedCursor
		h.Screen.clampCursor()
	}
}

func (h *Handler) InsertBlank(n int) {
	s := h.Screen
	y := s.Cursor.Y
	for x := s.Cols - 1; x >= s.Cursor.X+n; x-- {
		s.buf[y][x] = s.buf[y][x-n]
	}
	s.ClearRowRange(y, s.Cursor.X, s.Cursor.X+n)
}

func (h *Handler) DeleteChars(n int) {
	s := h.Screen
	y := s.Cursor.Y
	for x := s.Cursor.X; x < s.Cols-n; x++ {
		s.buf[y][x] = s.buf[y][x+n]
	}
	s.ClearRowRange(y, s.Cols-n, s.Cols)
}

func (h *Handler) EraseChars(n int) {
	h.Screen.ClearRowRange(h.Screen.Cursor.Y, h.Screen.Cursor.X, h.Screen.Cursor.X+n)
}

func (h *Handler) InsertBlankLines(n int) {
	top := h.Screen.Cursor.Y
	save := h.Screen.Top
	h.Screen.Top = top
	h.Screen.ScrollDown(n)
	h.Screen.Top = save
}

func (h *Handler) DeleteLines(n int) {
	top := h.Screen.Cursor.Y
	save := h.Screen.Top
	h.Screen.Top = top
	h.Screen.ScrollUp(n)
	h.Screen.Top = save
}

func (h *Handler) ClearLine(mode ansicode.LineClearMode) {
	s := h.Screen
	switch mode {
	case ansicode.LineClearModeRight:
		s.ClearRowRange(s.Cursor.Y, s.Cursor.X, s.Cols)
	case ansicode.LineClearModeLeft:
		s.ClearRowRange(s.Cursor.Y, 0, s.Cursor.X+1)
	case ansicode.LineClearModeAll:
		s.ClearRow(s.Cursor.Y)
	}
}

// ClearScreen implements erase_in_display; how==3 (ClearModeSaved, scrollback
// clear) is ignored per spec.md §4.2.
func (h *Handler) ClearScreen(mode ansicode.ClearMode) {
	s := h.Screen
	switch mode {
	case ansicode.ClearModeBelow:
		s.ClearRowRange(s.Cursor.Y, s.Cursor.X, s.Cols)
		for y := s.Cursor.Y + 1; y < s.Rows; y++ {
			s.ClearRow(y)
		}
	case ansicode.ClearModeAbove:
		for y := 0; y < s.Cursor.Y; y++ {
			s.ClearRow(y)
		}
		s.ClearRowRange(s.Cursor.Y, 0, s.Cursor.X+1)
	case ansicode.ClearModeAll:
		s.ClearAll()
	case ansicode.ClearModeSaved:
		// ignored: scrollback clear has no narration-relevant effect.
	}
}

func (h *Handler) ClearTabs(ansicode.TabulationClearMode) {}

func (h *Handler) ScrollUp(n int)   { h.Screen.ScrollUp(n) }
func (h *Handler) ScrollDown(n int) { h.Screen.ScrollDown(n) }

func (h *Handler) SetScrollingRegion(top, bottom int) {
	h.Screen.SetScrollRegion(top-1, bottom-1)
	h.Screen.Cursor.X, h.Screen.Cursor.Y = 0, h.Screen.Top
}

// SetMode handles mode 3 (ignored) and mode 1049 (alternate-screen
// deep-copy); all other modes are ignored, since this core only observes,
// never renders (spec.md §1).
func (h *Handler) SetMode(mode ansicode.TerminalMode) {
	switch mode {
	case ansicode.TerminalModeColumnMode:
		// ignored per spec.md §4.2.
	case ansicode.TerminalModeSwapScreenAndSetRestoreCursor:
		h.Screen.SaveAlternate()
	}
}

func (h *Handler) UnsetMode(mode ansicode.TerminalMode) {
	switch mode {
	case ansicode.TerminalModeColumnMode:
	case ansicode.TerminalModeSwapScreenAndSetRestoreCursor:
		h.Screen.RestoreAlternate()
	}
}

// SetTerminalCharAttribute handles SGR. Unrecognized/private-parameter
// variants hit no case below and are ignored, per spec.md §4.2.
func (h *Handler) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	a := &h.Screen.Cursor.Attrs
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		*a = DefaultAttrs
	case ansicode.CharAttributeBold:
		a.Flags |= FlagBold
	case ansicode.CharAttributeCancelBold, ansicode.CharAttributeCancelBoldDim:
		a.Flags &^= FlagBold
	case ansicode.CharAttributeUnderline:
		a.Flags |= FlagUnderline
	case ansicode.CharAttributeCancelUnderline:
		a.Flags &^= FlagUnderline
	case ansicode.CharAttributeReverse:
		a.Flags |= FlagReverse
	case ansicode.CharAttributeCancelReverse:
		a.Flags &^= FlagReverse
	case ansicode.CharAttributeForeground:
		a.Fg = indexOf(attr)
	case ansicode.CharAttributeBackground:
		a.Bg = indexOf(attr)
	}
}

func indexOf(attr ansicode.TerminalCharAttribute) int {
	if attr.IndexedColor != nil {
		return int(attr.IndexedColor.Index)
	}
	return -1
}

// The remaining ansicode.Handler methods are narration-irrelevant (title,
// clipboard OSC 52, sixel/kitty images, keyboard-mode reporting, dynamic
// color queries): this host never answers on the child's behalf, see
// SPEC_FULL.md §4.2 and DESIGN.md.
func (h *Handler) DeviceStatus(int)                                         {}
func (h *Handler) IdentifyTerminal(byte)                                    {}
func (h *Handler) ReportKeyboardMode()                                      {}
func (h *Handler) ReportModifyOtherKeys()                                   {}
func (h *Handler) PushKeyboardMode(ansicode.KeyboardMode)                   {}
func (h *Handler) PopKeyboardMode(int)                                      {}
func (h *Handler) SetKeyboardMode(ansicode.KeyboardMode, ansicode.KeyboardModeBehavior) {}
func (h *Handler) SetModifyOtherKeys(ansicode.ModifyOtherKeys)              {}
func (h *Handler) PushTitle()                                               {}
func (h *Handler) PopTitle()                                                {}
func (h *Handler) SetTitle(string)                                          {}
func (h *Handler) SetWorkingDirectory(string)                               {}
func (h *Handler) WorkingDirectory() string                                 { return "" }
func (h *Handler) WorkingDirectoryPath() string                             { return "" }
func (h *Handler) SetColor(int, color.Color)                                {}
func (h *Handler) ResetColor(int)                                           {}
func (h *Handler) SetDynamicColor(string, int, string)                      {}
func (h *Handler) SetCursorStyle(ansicode.CursorStyle)                      {}
func (h *Handler) SetKeypadApplicationMode()                                {}
func (h *Handler) UnsetKeypadApplicationMode()                              {}
func (h *Handler) SetActiveCharset(int)                                     {}
func (h *Handler) ConfigureCharset(ansicode.CharsetIndex, ansicode.Charset) {}
func (h *Handler) SetHyperlink(*ansicode.Hyperlink)                         {}
func (h *Handler) ClipboardLoad(byte, string)                               {}
func (h *Handler) ClipboardStore(byte, []byte)                              {}
func (h *Handler) ApplicationCommandReceived([]byte)                        {}
func (h *Handler) PrivacyMessageReceived([]byte)                            {}
func (h *Handler) StartOfStringReceived([]byte)                             {}
func (h *Handler) TextAreaSizeChars()                                       {}
func (h *Handler) TextAreaSizePixels()                                      {}
func (h *Handler) CellSizePixels()                                          {}
func (h *Handler) SixelReceived([][]uint16, []byte)                        {}
