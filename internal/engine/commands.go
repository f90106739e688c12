package engine

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"tdsr/internal/clipboard"
	"tdsr/internal/config"
	"tdsr/internal/logutil"
	"tdsr/internal/pluginext"
	"tdsr/internal/review"
)

// orBlank substitutes the word "blank" for an empty line/word read, since
// speaking nothing at all gives no feedback that the command ran.
func orBlank(text string) string {
	if text == "" {
		return "blank"
	}
	return text
}

func (s *Session) cmdSayLine() {
	s.Say(orBlank(s.Review.LineText(s.Review.Y)), false)
}

// speakLineResult announces a clamp boundary, if one was hit, and then
// always reads the landed-on line regardless — matching prevline/
// nextline's unconditional trailing sayline() call.
func (s *Session) speakLineResult(boundary, text string) {
	if boundary != "" {
		s.Synth.Say(boundary)
	}
	s.Say(orBlank(text), false)
}

func (s *Session) cmdPrevLine() { s.speakLineResult(s.Review.PrevLine()) }
func (s *Session) cmdNextLine() { s.speakLineResult(s.Review.NextLine()) }

func (s *Session) cmdTopOfScreen()    { s.Say(orBlank(s.Review.TopOfScreen()), false) }
func (s *Session) cmdBottomOfScreen() { s.Say(orBlank(s.Review.BottomOfScreen()), false) }

func (s *Session) cmdStartOfLine() { s.SayCharacter(s.Review.StartOfLine()) }
func (s *Session) cmdEndOfLine()   { s.SayCharacter(s.Review.EndOfLine()) }

func (s *Session) cmdPrevChar() {
	boundary, ch := s.Review.PrevChar()
	if boundary != "" {
		s.Synth.Say(boundary)
	}
	s.SayCharacter(ch)
}

func (s *Session) cmdNextChar() {
	boundary, ch := s.Review.NextChar()
	if boundary != "" {
		s.Synth.Say(boundary)
	}
	s.SayCharacter(ch)
}

// cmdSayChar speaks the character under the review cursor; phonetic uses
// the NATO-style spelling alphabet instead of the raw/symbol reading.
func (s *Session) cmdSayChar(phonetic bool) {
	ch := s.Review.CharAt(s.Review.Y, s.Review.X)
	if phonetic {
		if word, ok := review.Phonetic(ch); ok {
			s.Synth.Say(word)
			return
		}
	}
	s.SayCharacter(ch)
}

// speakWordResult announces a clamp boundary, if one was hit, then always
// reads the word landed on — matching prevword/nextword's unconditional
// trailing sayword() call. An isolated space reads as "space", not
// "blank" (sayword's own wording for this case).
func (s *Session) speakWordResult(boundary string, blank bool, word string) {
	if boundary != "" {
		s.Synth.Say(boundary)
	}
	if blank {
		s.Synth.Say("space")
		return
	}
	s.Say(word, false)
}

func (s *Session) cmdPrevWord() { s.speakWordResult(s.Review.PrevWord()) }
func (s *Session) cmdNextWord() { s.speakWordResult(s.Review.NextWord()) }

// cmdSayWord speaks the word under the review cursor. spell instead joins
// its characters with spaces and forces symbol substitution on the
// result, reproducing sayword(spell=True)'s `say(' '.join(word),
// force_process_symbols=True)` — not a per-character phonetic spelling.
func (s *Session) cmdSayWord(spell bool) {
	blank, word := s.Review.Word()
	if blank {
		s.Synth.Say("space")
		return
	}
	if spell {
		s.Say(strings.Join(strings.Split(word, ""), " "), true)
		return
	}
	s.Say(word, false)
}

// cmdCancelSpeech interrupts whatever the synth is currently speaking,
// without affecting the persistent silence toggle. It is also invoked
// unconditionally on every keystroke by the input loop, matching the
// original's bare module-level silence() call in process_input.
func (s *Session) cmdCancelSpeech() { s.Synth.Cancel() }

// cmdHandleSilence flips the persistent mute toggle.
func (s *Session) cmdHandleSilence() {
	on := !s.Gate.Silence()
	s.Gate.SetSilence(on)
	if on {
		s.Synth.Say("quiet on")
	} else {
		s.Synth.Say("quiet off")
	}
}

// cmdHandleBackspace speaks the character about to be erased before the
// grid cursor moves left (the byte itself is forwarded separately so the
// child still sees the backspace).
func (s *Session) cmdHandleBackspace() {
	x := s.Screen.Cursor.X
	if x > 0 {
		s.SayCharacter(s.Screen.Cell(x-1, s.Screen.Cursor.Y).Data)
	}
}

// cmdHandleDelete speaks the character under the cursor before forwarding
// the delete key to the child.
func (s *Session) cmdHandleDelete() {
	s.SayCharacter(s.Screen.Cell(s.Screen.Cursor.X, s.Screen.Cursor.Y).Data)
}

// scheduleCursorLine arms a debounced read of the live cursor's row,
// muting ordinary draw narration until it fires or the next keystroke
// cancels it — used by up/down arrow so a burst of repeated presses only
// speaks the line once it settles.
func (s *Session) scheduleCursorLine() {
	s.Gate.SetTempsilence(true)
	s.Scheduler.Schedule(s.CursorTimeout, s.sayLineAtCursor)
}

// scheduleCursorChar is scheduleCursorLine's counterpart for left/right
// arrow, reading the character under the settled cursor.
func (s *Session) scheduleCursorChar() {
	s.Gate.SetTempsilence(true)
	s.Scheduler.Schedule(s.CursorTimeout, s.sayCharAtCursor)
}

func (s *Session) sayLineAtCursor() {
	s.Say(orBlank(s.Review.LineText(s.Screen.Cursor.Y)), false)
}

func (s *Session) sayCharAtCursor() {
	y, x := s.Screen.Cursor.Y, s.Screen.Cursor.X
	s.SayCharacter(s.Review.CharAt(y, x))
}

// cmdHandleClipboard is the two-press mark/copy command: the first press
// anchors the selection at the review cursor, the second completes the
// range and copies it.
func (s *Session) cmdHandleClipboard() {
	if s.Selection.Pending() {
		startY, startX, endY, endX := s.Selection.End(s.Review.Y, s.Review.X)
		text := review.CopyTextFromCursor(s.Review, startY, startX, endY, endX)
		if err := clipboard.Copy(text); err != nil {
			s.Synth.Say("Failed")
			return
		}
		s.Synth.Say("copied")
		return
	}
	s.Selection.Begin(s.Review.Y, s.Review.X)
	s.Synth.Say("select")
}

func (s *Session) copyLine() {
	if err := clipboard.Copy(s.Review.LineText(s.Review.Y)); err != nil {
		s.Synth.Say("Failed")
		return
	}
	s.Synth.Say("line")
}

func (s *Session) copyScreen() {
	rows := make([]string, s.Screen.Rows)
	for y := range rows {
		rows[y] = s.Review.LineText(y)
	}
	if err := clipboard.Copy(strings.Join(rows, "\n")); err != nil {
		s.Synth.Say("Failed")
		return
	}
	s.Synth.Say("screen")
}

// toggleBool flips a boolean speech-config field, persists it, and
// announces the new state, shared by the config menu's five on/off items.
func (s *Session) toggleBool(label string, field *bool) {
	on := !*field
	if err := s.Config.SetBool(field, on); err != nil {
		return
	}
	if on {
		s.Synth.Say(label + " on")
	} else {
		s.Synth.Say(label + " off")
	}
}

func (s *Session) setRate2(val string) {
	n, ok := config.ParseIntField(val)
	if !ok {
		s.Synth.Say("Invalid value")
		return
	}
	s.Synth.SetRate(n)
	s.Config.Speech.Rate = &n
	if err := s.Config.Save(); err != nil {
		return
	}
	s.Synth.Say("Confirmed")
}

func (s *Session) setVolume2(val string) {
	n, ok := config.ParseIntField(val)
	if !ok {
		s.Synth.Say("Invalid value")
		return
	}
	s.Synth.SetVolume(n)
	s.Config.Speech.Volume = &n
	if err := s.Config.Save(); err != nil {
		return
	}
	s.Synth.Say("Confirmed")
}

func (s *Session) setVoiceIdx2(val string) {
	n, ok := config.ParseIntField(val)
	if !ok {
		s.Synth.Say("Invalid value")
		return
	}
	s.Synth.SetVoice(n)
	s.Config.Speech.VoiceIdx = &n
	if err := s.Config.Save(); err != nil {
		return
	}
	s.Synth.Say("Confirmed")
}

// setDelay2 converts the menu's millisecond input to the seconds value
// cursor_delay stores, and updates the live timeout the loop uses.
func (s *Session) setDelay2(val string) {
	n, ok := config.ParseIntField(val)
	if !ok {
		s.Synth.Say("Invalid value")
		return
	}
	if err := s.Config.SetCursorDelayMillis(n); err != nil {
		return
	}
	s.CursorTimeout = time.Duration(n) * time.Millisecond
	s.Synth.Say("Confirmed")
}

// runPlugin loads name's compiled plugin from the config directory's
// plugins subdirectory, collects the output lines below the last command
// matching the configured shell prompt, and speaks whatever the plugin
// judges worth reading.
func (s *Session) runPlugin(name string) {
	dir := filepath.Join(filepath.Dir(s.Config.Path()), "plugins")
	parser, err := pluginext.Load(filepath.Join(dir, name+".so"))
	if err != nil {
		logutil.Warn("plugin load failed", "plugin", name, "err", err)
		s.Synth.Say("plugin error")
		return
	}

	var promptRe *regexp.Regexp
	if s.Config.Speech.Prompt != "" {
		promptRe = regexp.MustCompile(s.Config.Speech.Prompt)
	}
	var cmdRe *regexp.Regexp
	if pattern, ok := s.Config.Commands[name]; ok && pattern != "" {
		cmdRe = regexp.MustCompile(pattern)
	}

	lineAt := func(i int) string { return s.Review.LineText(i) }
	collected := pluginext.CollectOutput(s.Screen.Rows, lineAt, promptRe, cmdRe)

	out, err := parser.ParseOutput(collected)
	if err != nil {
		logutil.Warn("plugin parse failed", "plugin", name, "err", err)
	}
	if err != nil || len(out) == 0 {
		s.Synth.Say("no output")
		return
	}
	s.Say(strings.Join(out, " "), false)
}
