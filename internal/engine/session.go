// Package engine bundles everything tdsr's single cooperative loop needs
// into one owning context and drives the speech pipeline from the VT
// emulator's draw events and the key dispatcher's outcomes, replacing the
// original implementation's module-level globals (spec.md Design Note
// §9's "bundle globals into one context").
package engine

import (
	"strconv"
	"time"

	"tdsr/internal/config"
	"tdsr/internal/keys"
	"tdsr/internal/ptyhost"
	"tdsr/internal/review"
	"tdsr/internal/scheduler"
	"tdsr/internal/speech"
	"tdsr/internal/vt"
)

// defaultCursorTimeout is the settle window a cursor-motion key waits
// before speaking its line/character, absent an explicit cursor_delay
// config value.
const defaultCursorTimeout = 20 * time.Millisecond

// flushDebounce is how long a pending speech-buffer flush waits after the
// child output that armed it before actually speaking, so a burst of
// terminal writes within one PTY read coalesces into a single utterance.
const flushDebounce = 5 * time.Millisecond

// Session is the single owning context for one tdsr run: the VT screen
// and its draw-hook bridge into speech, the dispatch stack, and every
// piece of mutable state the original kept as module globals.
type Session struct {
	Screen *vt.Screen
	Host   *ptyhost.Host

	Buffer    speech.Buffer
	Gate      speech.Gate
	Symbols   *speech.SymbolTable
	Synth     *speech.Synth
	Config    *config.Config
	Scheduler scheduler.Scheduler
	Review    *review.Cursor
	Selection review.Selection

	Dispatcher *keys.Dispatcher

	CursorTimeout time.Duration

	// drawLastKey holds the most recently dispatched keystroke's decoded
	// text; the next OnDraw that matches it is an echo of what the user
	// just typed and is suppressed from the speech buffer (optionally
	// announced separately under key_echo), mirroring the original
	// module-level `lastkey` global.
	drawLastKey string
}

// NewSession wires a Session around an already-sized screen, PTY host,
// synth, and loaded config.
func NewSession(screen *vt.Screen, host *ptyhost.Host, synth *speech.Synth, cfg *config.Config) *Session {
	s := &Session{
		Screen:        screen,
		Host:          host,
		Symbols:       speech.NewSymbolTable(),
		Synth:         synth,
		Config:        cfg,
		Review:        review.NewCursor(screen),
		CursorTimeout: defaultCursorTimeout,
	}
	if cfg.Speech.CursorDelay != nil {
		s.CursorTimeout = time.Duration(*cfg.Speech.CursorDelay * float64(time.Second))
	}
	for cp, word := range cfg.Symbols {
		if n, err := strconv.Atoi(cp); err == nil {
			s.Symbols.Set(rune(n), word)
		}
	}

	root := newRootHandler(s)
	s.Dispatcher = keys.NewDispatcher(root)
	return s
}

// HandleResize keeps the review cursor inside the new bounds after the
// screen itself has already been resized.
func (s *Session) HandleResize() {
	s.Review.Clamp()
}
