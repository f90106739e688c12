// Package speech accumulates text narrated from the VT emulator's draw
// events, applies symbol/repeat transformations, and drives the synth
// subprocess line protocol.
package speech

import (
	"strings"
	"sync"
)

// Buffer is an append-only text accumulator with a single writer (the
// emulator's draw hooks, via engine.Session) and a single flushing reader
// (the gating logic). Flush clears it atomically.
type Buffer struct {
	mu sync.Mutex
	b  strings.Builder
}

// Write appends s to the buffer.
func (buf *Buffer) Write(s string) {
	if s == "" {
		return
	}
	buf.mu.Lock()
	defer buf.mu.Unlock()
	buf.b.WriteString(s)
}

// WriteSpace appends a single space, used for gap-injection and
// tab/linefeed padding.
func (buf *Buffer) WriteSpace() { buf.Write(" ") }

// Rewind erases the last rune written, used by backspace handling to undo
// a just-buffered character before the grid backspace proceeds. A no-op on
// an empty buffer.
func (buf *Buffer) Rewind() {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	s := buf.b.String()
	if s == "" {
		return
	}
	runes := []rune(s)
	buf.b.Reset()
	buf.b.WriteString(string(runes[:len(runes)-1]))
}

// Flush reads the entire buffer and clears it atomically. Empty buffers
// return "".
func (buf *Buffer) Flush() string {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	s := buf.b.String()
	buf.b.Reset()
	return s
}

// Empty reports whether the buffer currently holds no text.
func (buf *Buffer) Empty() bool {
	buf.mu.Lock()
	defer buf.mu.Unlock()
	return buf.b.Len() == 0
}
