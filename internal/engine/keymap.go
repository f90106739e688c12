package engine

import "tdsr/internal/keys"

// rootHandler is the base key handler always at the bottom of the
// dispatch stack: every review/clipboard/config command plus the small
// set of editing keys that must reach the child verbatim.
type rootHandler struct {
	s        *Session
	bindings keys.KeyMap
}

func newRootHandler(s *Session) *rootHandler {
	h := &rootHandler{s: s}
	h.bindings = h.buildBindings()
	return h
}

func (h *rootHandler) buildBindings() keys.KeyMap {
	s := h.s
	km := keys.KeyMap{
		"\x1bi": func() keys.Outcome { s.cmdSayLine(); return keys.Consumed() },
		"\x1bu": func() keys.Outcome { s.cmdPrevLine(); return keys.Consumed() },
		"\x1bo": func() keys.Outcome { s.cmdNextLine(); return keys.Consumed() },

		"\x1bj":         func() keys.Outcome { s.cmdPrevWord(); return keys.Consumed() },
		"\x1bk":         func() keys.Outcome { s.cmdSayWord(false); return keys.Consumed() },
		"\x1bk\x1bk":    func() keys.Outcome { s.cmdSayWord(true); return keys.Consumed() },
		"\x1bl":         func() keys.Outcome { s.cmdNextWord(); return keys.Consumed() },

		"\x1bm":         func() keys.Outcome { s.cmdPrevChar(); return keys.Consumed() },
		"\x1b,":         func() keys.Outcome { s.cmdSayChar(false); return keys.Consumed() },
		"\x1b,\x1b,":    func() keys.Outcome { s.cmdSayChar(true); return keys.Consumed() },
		"\x1b.":         func() keys.Outcome { s.cmdNextChar(); return keys.Consumed() },

		"\x1bU": func() keys.Outcome { s.cmdTopOfScreen(); return keys.Consumed() },
		"\x1bO": func() keys.Outcome { s.cmdBottomOfScreen(); return keys.Consumed() },
		"\x1bM": func() keys.Outcome { s.cmdStartOfLine(); return keys.Consumed() },
		"\x1b>": func() keys.Outcome { s.cmdEndOfLine(); return keys.Consumed() },
		"\x1b:": func() keys.Outcome { s.cmdEndOfLine(); return keys.Consumed() }, // Hungarian keyboards

		"\x1bc": func() keys.Outcome { return keys.PushHandler(newConfigHandler(s)) },
		"\x1bq": func() keys.Outcome { s.cmdHandleSilence(); return keys.Consumed() },
		"\x1br": func() keys.Outcome { s.cmdHandleClipboard(); return keys.Consumed() },
		"\x1bv": func() keys.Outcome { return keys.PushHandler(newCopyHandler(s)) },
		"\x1bx": func() keys.Outcome { s.cmdCancelSpeech(); return keys.Consumed() },

		"\x08": func() keys.Outcome {
			s.cmdHandleBackspace()
			return keys.Passthrough([]byte("\x08"))
		},
		"\x7f": func() keys.Outcome {
			s.cmdHandleBackspace()
			return keys.Passthrough([]byte("\x7f"))
		},
		"\x1b[3~": func() keys.Outcome {
			s.cmdHandleDelete()
			return keys.Passthrough([]byte("\x1b[3~"))
		},

		"\x1b[A": func() keys.Outcome { s.scheduleCursorLine(); return keys.Passthrough([]byte("\x1b[A")) },
		"\x1b[B": func() keys.Outcome { s.scheduleCursorLine(); return keys.Passthrough([]byte("\x1b[B")) },
		"\x1b[C": func() keys.Outcome { s.scheduleCursorChar(); return keys.Passthrough([]byte("\x1b[C")) },
		"\x1b[D": func() keys.Outcome { s.scheduleCursorChar(); return keys.Passthrough([]byte("\x1b[D")) },
		"\x1bOA": func() keys.Outcome { s.scheduleCursorLine(); return keys.Passthrough([]byte("\x1bOA")) },
		"\x1bOB": func() keys.Outcome { s.scheduleCursorLine(); return keys.Passthrough([]byte("\x1bOB")) },
		"\x1bOC": func() keys.Outcome { s.scheduleCursorChar(); return keys.Passthrough([]byte("\x1bOC")) },
		"\x1bOD": func() keys.Outcome { s.scheduleCursorChar(); return keys.Passthrough([]byte("\x1bOD")) },
	}

	for name, shortcut := range s.Config.Plugins {
		name := name
		km["\x1b"+shortcut] = func() keys.Outcome { s.runPlugin(name); return keys.Consumed() }
	}
	return km
}

func (h *rootHandler) Bindings() keys.KeyMap { return h.bindings }

// Unknown forwards anything not in the keymap straight to the child: the
// user's ordinary typing into the wrapped program.
func (h *rootHandler) Unknown(chunk []byte) keys.Outcome { return keys.Passthrough(chunk) }

// configHandler implements the settings menu pushed by \x1bc: single
// letters toggle or prompt for a new value; Enter exits back to root.
type configHandler struct {
	s        *Session
	bindings keys.KeyMap
}

func newConfigHandler(s *Session) *configHandler {
	h := &configHandler{s: s}
	h.bindings = keys.KeyMap{
		"r": func() keys.Outcome { return h.promptInt("Rate", s.setRate2) },
		"v": func() keys.Outcome { return h.promptInt("Volume", s.setVolume2) },
		"V": func() keys.Outcome { return h.promptInt("Voice index", s.setVoiceIdx2) },
		"d": func() keys.Outcome { return h.promptInt("Delay in milliseconds", s.setDelay2) },
		"p": func() keys.Outcome { s.toggleBool("Process symbols", &s.Config.Speech.ProcessSymbols); return keys.Consumed() },
		"e": func() keys.Outcome { s.toggleBool("Echo", &s.Config.Speech.KeyEcho); return keys.Consumed() },
		"c": func() keys.Outcome { s.toggleBool("Cursor tracking", &s.Config.Speech.CursorTracking); return keys.Consumed() },
		"l": func() keys.Outcome { s.toggleBool("Line pause", &s.Config.Speech.LinePause); return keys.Consumed() },
		"s": func() keys.Outcome { s.toggleBool("Repeated symbols", &s.Config.Speech.RepeatedSymbols); return keys.Consumed() },
	}
	return h
}

func (h *configHandler) promptInt(label string, onAccept func(string)) keys.Outcome {
	h.s.Synth.Say(label)
	return keys.PushHandler(keys.NewBufferHandler(onAccept))
}

func (h *configHandler) Bindings() keys.KeyMap { return h.bindings }

// Unknown exits the menu on Enter/linefeed; every other unrecognized key
// is silently swallowed, matching the menu's "only known letters do
// anything" design.
func (h *configHandler) Unknown(chunk []byte) keys.Outcome {
	if len(chunk) == 1 && (chunk[0] == '\r' || chunk[0] == '\n') {
		h.s.Synth.Say("exit")
		return keys.Pop()
	}
	return keys.Consumed()
}

// copyHandler implements the whole-line/whole-screen copy menu pushed by
// \x1bv: any recognized or unrecognized key pops it after running.
type copyHandler struct {
	s        *Session
	bindings keys.KeyMap
}

func newCopyHandler(s *Session) *copyHandler {
	h := &copyHandler{s: s}
	h.bindings = keys.KeyMap{
		"l": func() keys.Outcome { s.copyLine(); return keys.Pop() },
		"s": func() keys.Outcome { s.copyScreen(); return keys.Pop() },
	}
	return h
}

func (h *copyHandler) Bindings() keys.KeyMap { return h.bindings }

func (h *copyHandler) Unknown(chunk []byte) keys.Outcome {
	h.s.Synth.Say("unknown key")
	return keys.Pop()
}
