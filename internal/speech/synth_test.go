package speech

import "testing"

func TestNewSynth_EmptyCommandIsError(t *testing.T) {
	if _, err := NewSynth(""); err == nil {
		t.Fatal("expected an error for an empty command line")
	}
}

func TestNewSynth_UnterminatedQuoteIsError(t *testing.T) {
	if _, err := NewSynth(`say "unterminated`); err == nil {
		t.Fatal("expected a shlex parse error for an unterminated quote")
	}
}

func TestNewSynth_DoesNotSpawnUntilFirstWrite(t *testing.T) {
	s, err := NewSynth("cat")
	if err != nil {
		t.Fatalf("NewSynth: %v", err)
	}
	defer s.Close()

	if s.cmd != nil {
		t.Fatal("expected no subprocess spawned before the first write")
	}
}

func TestSynth_SayThenCloseDoesNotPanic(t *testing.T) {
	s, err := NewSynth("cat")
	if err != nil {
		t.Fatalf("NewSynth: %v", err)
	}

	s.Say("hello")
	s.SayChar("x")
	s.Cancel()
	s.SetRate(5)
	s.SetVolume(80)
	s.SetVoice(1)

	if s.cmd == nil {
		t.Fatal("expected the first write to spawn the subprocess")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestSynth_CloseWithoutAnyWriteIsNoop(t *testing.T) {
	s, err := NewSynth("cat")
	if err != nil {
		t.Fatalf("NewSynth: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected Close on an unspawned synth to be a no-op, got %v", err)
	}
}
