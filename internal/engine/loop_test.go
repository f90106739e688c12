package engine

import (
	"os"
	"testing"
	"time"

	"tdsr/internal/ptyhost"
)

func TestCprPattern_MatchesCursorPositionReport(t *testing.T) {
	cases := map[string]bool{
		"\x1b[24;80R":    true,
		"\x1b[1;1R":      true,
		"\x1b[A":         false,
		"hello":          false,
		"\x1b[24;80Rtail": true, // anchored at start only; trailing bytes OK
	}
	for input, want := range cases {
		if got := cprPattern.MatchString(input); got != want {
			t.Errorf("cprPattern.MatchString(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestHandleInput_CPRForwardsRawBytesWithNoOtherEffect(t *testing.T) {
	s := newTestSession(t)
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	s.Host = &ptyhost.Host{Ptm: w}

	s.Gate.SetTempsilence(true)
	s.Scheduler.Schedule(time.Hour, func() {})

	handleInput(s, []byte("\x1b[24;80R"))

	if !s.Gate.Eligible() {
		t.Error("a CPR report must not clear tempsilence")
	}
	if _, ok := s.Scheduler.TimeUntilNext(); !ok {
		t.Error("a CPR report must not clear pending scheduled calls")
	}

	buf := make([]byte, 32)
	n, _ := r.Read(buf)
	if string(buf[:n]) != "\x1b[24;80R" {
		t.Errorf("expected the CPR bytes forwarded verbatim, got %q", buf[:n])
	}
}

func TestHandleInput_OrdinaryKeyClearsTempsilenceAndScheduler(t *testing.T) {
	s := newTestSession(t)
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()
	s.Host = &ptyhost.Host{Ptm: w}

	s.Gate.SetTempsilence(true)
	s.Scheduler.Schedule(time.Hour, func() {})

	handleInput(s, []byte("q")) // unbound key: root handler passes it through

	if !s.Gate.Eligible() {
		t.Error("expected tempsilence cleared by an ordinary keystroke")
	}
	if _, ok := s.Scheduler.TimeUntilNext(); ok {
		t.Error("expected pending scheduled calls cleared by an ordinary keystroke")
	}
	if s.drawLastKey != "q" {
		t.Errorf("expected drawLastKey recorded as %q, got %q", "q", s.drawLastKey)
	}
}

func TestHandleOutput_TracksCursorAndForwardsBytesToStdout(t *testing.T) {
	s := newTestSession(t)
	host := ptyhost.New(s.Screen, s)
	s.Host = host
	s.Config.Speech.CursorTracking = true

	handleOutput(s, []byte("hi"))

	if s.Review.Y != s.Screen.Cursor.Y || s.Review.X != s.Screen.Cursor.X {
		t.Errorf("expected review cursor synced to live cursor (%d,%d), got (%d,%d)",
			s.Screen.Cursor.X, s.Screen.Cursor.Y, s.Review.X, s.Review.Y)
	}
}

func TestHandleOutput_NoCursorTrackingLeavesReviewCursorAlone(t *testing.T) {
	s := newTestSession(t)
	host := ptyhost.New(s.Screen, s)
	s.Host = host
	s.Config.Speech.CursorTracking = false
	s.Review.Y, s.Review.X = 0, 0

	handleOutput(s, []byte("hi"))

	if s.Review.Y != 0 || s.Review.X != 0 {
		t.Errorf("expected review cursor untouched when cursor_tracking is off, got (%d,%d)", s.Review.X, s.Review.Y)
	}
}
