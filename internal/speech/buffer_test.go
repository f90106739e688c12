package speech

import "testing"

func TestBuffer_WriteFlush(t *testing.T) {
	var b Buffer
	b.Write("hello")
	b.WriteSpace()
	b.Write("world")

	got := b.Flush()
	if got != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", got)
	}
	if !b.Empty() {
		t.Fatal("expected buffer empty after flush")
	}
}

func TestBuffer_FlushEmptyIsNoop(t *testing.T) {
	var b Buffer
	if got := b.Flush(); got != "" {
		t.Fatalf("expected empty flush, got %q", got)
	}
}

func TestBuffer_Rewind(t *testing.T) {
	var b Buffer
	b.Write("ab")
	b.Rewind()
	if got := b.Flush(); got != "a" {
		t.Fatalf("expected %q, got %q", "a", got)
	}
}

func TestBuffer_RewindOnEmptyIsNoop(t *testing.T) {
	var b Buffer
	b.Rewind()
	if got := b.Flush(); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestGate_EligibleRequiresBothFalse(t *testing.T) {
	var g Gate
	if !g.Eligible() {
		t.Fatal("expected eligible by default")
	}
	g.SetSilence(true)
	if g.Eligible() {
		t.Fatal("expected not eligible while silenced")
	}
	g.SetSilence(false)
	g.SetTempsilence(true)
	if g.Eligible() {
		t.Fatal("expected not eligible while tempsilenced")
	}
}

func TestGate_BeginDelayingOnce(t *testing.T) {
	var g Gate
	if !g.BeginDelaying() {
		t.Fatal("expected first BeginDelaying to succeed")
	}
	if g.BeginDelaying() {
		t.Fatal("expected second BeginDelaying to be refused while pending")
	}
	g.EndDelaying()
	if !g.BeginDelaying() {
		t.Fatal("expected BeginDelaying to succeed again after EndDelaying")
	}
}
