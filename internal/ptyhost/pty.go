// Package ptyhost owns the child process's pseudo-terminal: spawning it,
// feeding its output through the VT decoder, forwarding input with a
// write timeout, and resizing both the PTY and the virtual screen in
// lockstep (spec.md §5).
package ptyhost

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/danielgatis/go-ansicode"

	"tdsr/internal/vt"
)

// ErrPTYWriteTimeout is returned by WritePTY when the child isn't
// draining its stdin and the kernel PTY buffer fills up.
var ErrPTYWriteTimeout = errors.New("ptyhost: pty write timed out")

// ErrChildExited is returned by PipeOutput once the child's PTY master
// reports EOF (including EIO, which the kernel also raises on a PTY
// whose slave side has closed — both are treated as ordinary exit).
var ErrChildExited = errors.New("ptyhost: child exited")

// Host owns the PTY master, the child command, and the VT decoder that
// consumes the child's output.
type Host struct {
	Ptm *os.File
	Cmd *exec.Cmd

	Screen  *vt.Screen
	Handler *vt.Handler
	decoder *ansicode.Decoder

	mu sync.Mutex
}

// New wires a Host around screen, driving it from hooks-observed draw
// events as the child's output is decoded.
func New(screen *vt.Screen, hooks vt.DrawHooks) *Host {
	h := &vt.Handler{Screen: screen, Hooks: hooks}
	return &Host{
		Screen:  screen,
		Handler: h,
		decoder: ansicode.NewDecoder(h),
	}
}

// Start spawns command under a PTY sized rows x cols. extraEnv entries
// override the child's inherited environment (used to set TSDR_ACTIVE).
func (h *Host) Start(command string, args []string, rows, cols int, extraEnv map[string]string) error {
	h.Cmd = exec.Command(command, args...)
	if len(extraEnv) > 0 {
		env := os.Environ()
		for k, v := range extraEnv {
			env = append(env, k+"="+v)
		}
		h.Cmd.Env = env
	}

	ptm, err := pty.StartWithSize(h.Cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return fmt.Errorf("ptyhost: start command: %w", err)
	}
	h.Ptm = ptm
	return nil
}

// PipeOutput reads the child's PTY output in a loop, decoding each chunk
// through the VT handler and calling onData after each write so the
// caller can react to draw events. It returns ErrChildExited, wrapping
// the underlying read error, once the PTY reports EOF.
func (h *Host) PipeOutput(onData func()) error {
	buf := make([]byte, 4096)
	for {
		n, err := h.Ptm.Read(buf)
		if n > 0 {
			h.DecodeChunk(buf[:n])
			onData()
		}
		if err != nil {
			if err == io.EOF {
				return ErrChildExited
			}
			return fmt.Errorf("%w: %v", ErrChildExited, err)
		}
	}
}

// DecodeChunk feeds an already-read slice of child output through the VT
// decoder. Exposed so a caller driving its own single-threaded read/select
// hub (rather than PipeOutput's own loop) can still decode under the same
// lock PipeOutput would have used.
func (h *Host) DecodeChunk(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.decoder.Write(data)
}

// WritePTY forwards p to the child with a write timeout, exactly as
// session/virtualterminal's WritePTY does: the write runs in a goroutine
// so a hung child's full kernel PTY buffer can't block the caller past
// timeout.
func (h *Host) WritePTY(p []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}
	ch := make(chan result, 1)
	go func() {
		n, err := h.Ptm.Write(p)
		ch <- result{n, err}
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.n, r.err
	case <-timer.C:
		return 0, ErrPTYWriteTimeout
	}
}

// Resize resizes both the virtual screen and the underlying PTY.
func (h *Host) Resize(rows, cols int) {
	h.mu.Lock()
	h.Screen.Resize(rows, cols)
	h.mu.Unlock()
	pty.Setsize(h.Ptm, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Kill sends SIGKILL to the child, used on fatal shutdown paths.
func (h *Host) Kill() {
	if h.Cmd != nil && h.Cmd.Process != nil {
		h.Cmd.Process.Kill()
	}
}
