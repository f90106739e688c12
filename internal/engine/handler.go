package engine

import (
	"strings"

	"tdsr/internal/speech"
	"tdsr/internal/vt"
)

var _ vt.DrawHooks = (*Session)(nil)

// defaultRepeatedSymbolChars is spoken as "<count> <char>" runs when
// repeated_symbols is enabled and the config doesn't override the set.
const defaultRepeatedSymbolChars = "-=!#"

// OnDraw appends a just-drawn grapheme to the speech buffer, first
// padding with one space if the cursor jumped forward on the same row
// (the gap left by cursor-addressed redraws, e.g. a progress counter),
// matching the original's draw2. A grapheme that echoes the keystroke
// just dispatched is suppressed from the buffer instead (and spoken via
// the character-speech path when key_echo is on); drawLastKey is a
// one-shot match, cleared on the first draw that follows a keystroke
// whether or not it matched, same as the original's lastkey global.
func (s *Session) OnDraw(grapheme string, colsSkipped int) {
	addToBuffer := true
	if grapheme == s.drawLastKey {
		addToBuffer = false
		if len([]rune(grapheme)) == 1 && s.Config.Speech.KeyEcho {
			s.SayCharacter(grapheme)
		}
	}
	s.drawLastKey = ""

	if colsSkipped > 0 {
		s.Buffer.WriteSpace()
	}
	if addToBuffer && s.Gate.Eligible() {
		s.Buffer.Write(grapheme)
	}
}

// OnLineFeed either flushes immediately (line_pause) or pads the buffer
// with a single space and lets the next flush speak both lines together.
func (s *Session) OnLineFeed() {
	if s.Config.Speech.LinePause {
		s.Flush()
		return
	}
	s.Buffer.WriteSpace()
}

// OnTab pads the buffer with a space unless the persistent silence toggle
// is on. Unlike most draw paths this does not consult tempsilence.
func (s *Session) OnTab() {
	if !s.Gate.Silence() {
		s.Buffer.WriteSpace()
	}
}

// OnBackspace erases the speech buffer's most recently written character
// before the grid cursor itself steps left, keeping buffered text and
// on-screen text in sync for a backspacing shell.
func (s *Session) OnBackspace() {
	if s.Screen.Cursor.X > 0 {
		s.Buffer.Rewind()
	}
}

// Flush drains the speech buffer and speaks it, unless the gate is
// currently ineligible (persistent silence or a pending tempsilence
// window), in which case the text is discarded exactly as the original's
// sb() drops it rather than deferring it.
func (s *Session) Flush() {
	text := s.Buffer.Flush()
	if text == "" || !s.Gate.Eligible() {
		return
	}
	if s.Config.Speech.RepeatedSymbols {
		chars := s.Config.Speech.RepeatedSymbolsValues
		if chars == "" {
			chars = defaultRepeatedSymbolChars
		}
		text = speech.CompressRepeats(text, chars)
	}
	s.Say(text, false)
}

// ScheduleFlush arms a debounced flush so a burst of draw events from one
// PTY read coalesces into a single utterance, guarded by Gate so at most
// one flush is ever pending at a time.
func (s *Session) ScheduleFlush() {
	if s.Buffer.Empty() || !s.Gate.BeginDelaying() {
		return
	}
	s.Scheduler.Schedule(flushDebounce, func() {
		s.Gate.EndDelaying()
		s.Flush()
	})
}

// Say strips leading/trailing whitespace from text, optionally runs it
// through the symbol table (when forceProcessSymbols or the
// process_symbols config is on), and hands it to the synth.
func (s *Session) Say(text string, forceProcessSymbols bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if forceProcessSymbols || s.Config.Speech.ProcessSymbols {
		text = s.Symbols.Substitute(text)
	}
	s.Synth.Say(text)
}

// SayCharacter speaks a single character, preferring its mapped symbol
// word (always substituted here regardless of process_symbols) and
// falling back to the synth's raw character-spelling command. An empty ch
// means the cursor sits on a blank cell, spoken as a literal space.
func (s *Session) SayCharacter(ch string) {
	if ch == "" {
		ch = " "
	}
	var r rune
	for _, rr := range ch {
		r = rr
		break
	}
	if word, ok := s.Symbols.Character(r); ok {
		s.Synth.Say(word)
		return
	}
	s.Synth.SayChar(ch)
}
