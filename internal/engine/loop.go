package engine

import (
	"errors"
	"io"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"golang.org/x/term"
)

// ptyWriteTimeout bounds how long a forwarded keystroke waits for a
// wedged child to drain its PTY input buffer.
const ptyWriteTimeout = 3 * time.Second

// cprPattern matches a cursor-position report (e.g. from busybox ash
// probing the terminal at startup). A match must be forwarded to the
// child untouched and nothing else about the keystroke processed.
var cprPattern = regexp.MustCompile(`^\x1b\[\d+;\d+R`)

// runLoop is the single owning goroutine for one tdsr session: reader
// goroutines for stdin, the child PTY, and SIGWINCH each forward raw
// events onto channels; every event is handled here, one at a time, so
// Session's state never needs its own lock — the same single-threaded
// guarantee the original's os.select loop gave for free.
func runLoop(s *Session) error {
	stdinCh := make(chan []byte)
	ptyCh := make(chan []byte)
	ptyErrCh := make(chan error, 1)
	resizeCh := make(chan os.Signal, 1)
	signal.Notify(resizeCh, syscall.SIGWINCH)
	defer signal.Stop(resizeCh)

	go readLoop(os.Stdin, stdinCh, nil)
	go readLoop(s.Host.Ptm, ptyCh, ptyErrCh)

	for {
		// Within one wake a pending resize is handled before pending input,
		// and pending input before child output.
		if len(resizeCh) > 0 {
			<-resizeCh
			handleResize(s)
		}
		select {
		case data, ok := <-stdinCh:
			if !ok {
				return nil
			}
			handleInput(s, data)
			s.Scheduler.RunDue()
			continue
		default:
		}

		var timeoutC <-chan time.Time
		if d, ok := s.Scheduler.TimeUntilNext(); ok {
			timeoutC = time.After(d)
		}

		select {
		case <-resizeCh:
			handleResize(s)

		case data, ok := <-stdinCh:
			if !ok {
				return nil
			}
			handleInput(s, data)

		case data, ok := <-ptyCh:
			if !ok {
				return nil
			}
			handleOutput(s, data)

		case err := <-ptyErrCh:
			s.Flush()
			s.Synth.Close()
			if errors.Is(err, io.EOF) || errors.Is(err, syscall.EIO) {
				return nil
			}
			return err

		case <-timeoutC:
		}

		s.Scheduler.RunDue()
	}
}

// readLoop blocks reading f in 4096-byte chunks and forwards each chunk on
// out; on error it closes out (and, if errCh is non-nil, reports the error
// there instead of treating it as a clean shutdown).
func readLoop(f *os.File, out chan<- []byte, errCh chan<- error) {
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			out <- chunk
		}
		if err != nil {
			if errCh != nil {
				errCh <- err
				return
			}
			close(out)
			return
		}
	}
}

// handleInput is process_input: a cursor-position report is forwarded
// untouched with no other side effects (some shells probe for one on
// startup); anything else cancels in-flight speech, clears pending
// scheduled calls and the transient mute, dispatches through the key
// stack, forwards whatever passthrough bytes come back, and only then
// records the keystroke for draw-echo suppression.
func handleInput(s *Session, data []byte) {
	if cprPattern.Match(data) {
		s.Host.WritePTY(data, ptyWriteTimeout)
		return
	}

	s.drawLastKey = ""
	s.cmdCancelSpeech()
	s.Scheduler.Clear()
	s.Gate.SetTempsilence(false)

	passthrough := s.Dispatcher.Dispatch(data)
	if passthrough != nil {
		s.Host.WritePTY(passthrough, ptyWriteTimeout)
	}

	s.drawLastKey = string(data)
}

// handleOutput is the child-output branch of the main loop: decode into
// the virtual screen, sync the review cursor to the live cursor if it
// moved and cursor_tracking is on, arm a coalesced flush, and forward the
// raw bytes to the real terminal exactly as received.
func handleOutput(s *Session, data []byte) {
	oldX, oldY := s.Screen.Cursor.X, s.Screen.Cursor.Y
	s.Host.DecodeChunk(data)

	if s.Config.Speech.CursorTracking && (s.Screen.Cursor.X != oldX || s.Screen.Cursor.Y != oldY) {
		s.Review.Y, s.Review.X = s.Screen.Cursor.Y, s.Screen.Cursor.X
	}
	s.ScheduleFlush()

	os.Stdout.Write(data)
}

// handleResize re-reads the controlling terminal's size, applies it to
// both the virtual screen and the child PTY, and clamps the review
// cursor into the new bounds.
func handleResize(s *Session) {
	cols, rows, err := term.GetSize(int(os.Stdin.Fd()))
	if err != nil || rows <= 0 || cols <= 0 {
		return
	}
	s.Host.Resize(rows, cols)
	s.HandleResize()
}
