package engine

import (
	"path/filepath"
	"testing"

	"tdsr/internal/config"
)

func TestOrBlank(t *testing.T) {
	if got := orBlank(""); got != "blank" {
		t.Errorf("expected %q, got %q", "blank", got)
	}
	if got := orBlank("hi"); got != "hi" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestCmdPrevLine_StopsAtTopWithoutWrapping(t *testing.T) {
	s := newTestSession(t)
	s.Review.Y = 0

	s.cmdPrevLine() // boundary="top", should clamp at 0, not go negative

	if s.Review.Y != 0 {
		t.Errorf("expected review cursor clamped at row 0, got %d", s.Review.Y)
	}
}

func TestCmdNextLine_StopsAtBottomWithoutWrapping(t *testing.T) {
	s := newTestSession(t)
	last := s.Screen.Rows - 1
	s.Review.Y = last

	s.cmdNextLine()

	if s.Review.Y != last {
		t.Errorf("expected review cursor clamped at row %d, got %d", last, s.Review.Y)
	}
}

func TestCmdSayWord_DoesNotMoveReviewCursor(t *testing.T) {
	s := newTestSession(t)
	s.Review.Y, s.Review.X = 2, 3

	s.cmdSayWord(false)
	s.cmdSayWord(true) // spell mode

	if s.Review.Y != 2 || s.Review.X != 3 {
		t.Errorf("expected sayword to leave the review cursor untouched, got (%d,%d)", s.Review.X, s.Review.Y)
	}
}

func TestCmdHandleClipboard_TwoPressMarkThenCopy(t *testing.T) {
	s := newTestSession(t)

	if s.Selection.Pending() {
		t.Fatal("expected no pending selection before the first press")
	}

	s.cmdHandleClipboard() // first press: marks the start
	if !s.Selection.Pending() {
		t.Fatal("expected a pending selection after the first press")
	}

	s.cmdHandleClipboard() // second press: completes and clears it
	if s.Selection.Pending() {
		t.Fatal("expected the selection to be cleared after the second press")
	}
}

func TestCmdHandleBackspaceAndDelete_NoPanicAtScreenEdges(t *testing.T) {
	s := newTestSession(t)
	s.Screen.Cursor.X, s.Screen.Cursor.Y = 0, 0

	s.cmdHandleBackspace() // at column 0: must not read column -1
	s.cmdHandleDelete()
}

func TestScheduleCursorLineAndChar_ArmTempsilence(t *testing.T) {
	s := newTestSession(t)

	s.scheduleCursorLine()
	if s.Gate.Eligible() {
		t.Error("expected tempsilence to be armed, making the gate ineligible")
	}

	s.Gate.SetTempsilence(false)
	s.scheduleCursorChar()
	if s.Gate.Eligible() {
		t.Error("expected scheduleCursorChar to arm tempsilence too")
	}
}

func TestToggleBool_FlipsFieldEvenWhenSaveWouldFail(t *testing.T) {
	s := newTestSession(t)
	before := s.Config.Speech.KeyEcho

	s.toggleBool("Echo", &s.Config.Speech.KeyEcho)

	if s.Config.Speech.KeyEcho == before {
		t.Error("expected the field to flip regardless of save outcome")
	}
}

func TestToggleBool_PersistsWhenConfigHasAPath(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	cfg, err := config.LoadFrom(filepath.Join(dir, "tdsr.cfg"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	s.Config = cfg

	s.toggleBool("Line pause", &s.Config.Speech.LinePause)

	reloaded, err := config.LoadFrom(cfg.Path())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Speech.LinePause != s.Config.Speech.LinePause {
		t.Errorf("expected the toggle to persist to disk, got %v want %v",
			reloaded.Speech.LinePause, s.Config.Speech.LinePause)
	}
}

func TestSetRate2_InvalidValueLeavesConfigUntouched(t *testing.T) {
	s := newTestSession(t)
	before := s.Config.Speech.Rate

	s.setRate2("not-a-number")

	if s.Config.Speech.Rate != before {
		t.Error("expected an invalid rate string to leave the config untouched")
	}
}

func TestSetDelay2_UpdatesLiveCursorTimeout(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	cfg, err := config.LoadFrom(filepath.Join(dir, "tdsr.cfg"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	s.Config = cfg

	s.setDelay2("50")

	if s.CursorTimeout.Milliseconds() != 50 {
		t.Errorf("expected a 50ms cursor timeout, got %v", s.CursorTimeout)
	}
}

func TestRunPlugin_MissingPluginSpeaksErrorWithoutPanicking(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	cfg, err := config.LoadFrom(filepath.Join(dir, "tdsr.cfg"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	s.Config = cfg

	s.runPlugin("does-not-exist") // plugin.Open must fail cleanly, not panic
}
