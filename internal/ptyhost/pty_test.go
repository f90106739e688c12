package ptyhost

import (
	"os"
	"testing"
	"time"

	"tdsr/internal/vt"
)

type noopHooks struct{}

func (noopHooks) OnDraw(string, int) {}
func (noopHooks) OnLineFeed()        {}
func (noopHooks) OnTab()             {}
func (noopHooks) OnBackspace()       {}

func TestWritePTY_Success(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	h := &Host{Ptm: w}
	n, err := h.WritePTY([]byte("hello"), time.Second)
	if err != nil {
		t.Fatalf("WritePTY: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}

	buf := make([]byte, 5)
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(buf) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", buf)
	}
}

func TestWritePTY_TimeoutOnFullPipe(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	h := &Host{Ptm: w}

	// Fill the OS pipe buffer so the next write blocks, then confirm the
	// timeout path fires rather than hanging forever.
	big := make([]byte, 1<<20)
	done := make(chan struct{})
	go func() {
		h.WritePTY(big, 50*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("WritePTY did not return within its timeout budget")
	}
}

func TestPipeOutput_ReturnsErrChildExitedOnEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	screen := vt.NewScreen(5, 10)
	h := New(screen, noopHooks{})
	h.Ptm = r

	w.Write([]byte("hi"))
	w.Close()

	draws := 0
	err = h.PipeOutput(func() { draws++ })
	if err == nil {
		t.Fatal("expected an error once the pipe closes")
	}
	if draws == 0 {
		t.Fatal("expected at least one onData call before EOF")
	}
}
