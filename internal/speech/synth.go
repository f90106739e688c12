package speech

import (
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/google/shlex"
)

// Synth drives a speech-server subprocess over the newline-terminated line
// protocol of spec.md §6 (s/l/x/r/v/V). A write that fails with a broken
// pipe triggers one respawn-and-retry; a second failure drops the message
// silently, leaving the driver ready to retry on the next call.
type Synth struct {
	mu      sync.Mutex
	cmdLine []string
	cmd     *exec.Cmd
	stdin   io.WriteCloser
}

// NewSynth parses cmdLine (shell-split, matching the original's
// shlex.split) and does not start the process until the first write.
func NewSynth(cmdLine string) (*Synth, error) {
	parts, err := shlex.Split(cmdLine)
	if err != nil {
		return nil, fmt.Errorf("parse speech server command: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty speech server command")
	}
	return &Synth{cmdLine: parts}, nil
}

func (s *Synth) spawnLocked() error {
	cmd := exec.Command(s.cmdLine[0], s.cmdLine[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open speech server stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start speech server: %w", err)
	}
	s.cmd = cmd
	s.stdin = stdin
	return nil
}

// writeLine sends one protocol line, respawning once on broken pipe.
func (s *Synth) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdin == nil {
		if err := s.spawnLocked(); err != nil {
			return
		}
	}
	if _, err := io.WriteString(s.stdin, line); err == nil {
		return
	}
	// Broken pipe: respawn once and retry.
	s.stdin = nil
	if s.cmd != nil {
		s.cmd.Wait()
	}
	if err := s.spawnLocked(); err != nil {
		return
	}
	io.WriteString(s.stdin, line) // second failure is dropped silently
}

// Say speaks a line of text.
func (s *Synth) Say(text string) { s.writeLine("s" + text + "\n") }

// SayChar speaks a single unmapped character.
func (s *Synth) SayChar(ch string) { s.writeLine("l" + ch + "\n") }

// Cancel interrupts any speech currently in progress.
func (s *Synth) Cancel() { s.writeLine("x\n") }

// SetRate sets the synth's speech rate.
func (s *Synth) SetRate(n int) { s.writeLine(fmt.Sprintf("r%d\n", n)) }

// SetVolume sets the synth's output volume.
func (s *Synth) SetVolume(n int) { s.writeLine(fmt.Sprintf("v%d\n", n)) }

// SetVoice selects the synth's voice by index.
func (s *Synth) SetVoice(n int) { s.writeLine(fmt.Sprintf("V%d\n", n)) }

// Close shuts down the subprocess, if running.
func (s *Synth) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stdin != nil {
		s.stdin.Close()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Wait()
	}
	return nil
}
