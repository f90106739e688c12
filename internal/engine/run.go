package engine

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	"tdsr/internal/config"
	"tdsr/internal/logutil"
	"tdsr/internal/ptyhost"
	"tdsr/internal/speech"
	"tdsr/internal/vt"
)

// Options configures one tdsr run.
type Options struct {
	// SpeechServer overrides the command line used to start the speech
	// synth subprocess. Empty selects a platform default.
	SpeechServer string
	// Debug enables structured JSON logging to DebugLogPath.
	Debug        bool
	DebugLogPath string
	// Program and ProgramArgs give the command to wrap; if Program is
	// empty, $SHELL is used, matching handle_child's fallback.
	Program     string
	ProgramArgs []string
}

// defaultSpeechServer mirrors the original's platform-specific default:
// a bundled macOS say-based driver on Darwin, a speechd-backed one
// elsewhere.
func defaultSpeechServer() string {
	if runtime.GOOS == "darwin" {
		return "tdsr-mac"
	}
	return "tdsr-speechd"
}

// Run wires together config, synth, PTY host, and session, then blocks in
// the main loop until the child exits or a fatal I/O error occurs.
func Run(opts Options) error {
	if err := logutil.Init(opts.Debug, opts.DebugLogPath); err != nil {
		return err
	}

	os.Setenv("TSDR_ACTIVE", "true")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("tdsr: load config: %w", err)
	}
	if !configFileExists(cfg) {
		if err := cfg.Save(); err != nil {
			logutil.Warn("failed writing default config", "err", err)
		}
	}

	speechServer := opts.SpeechServer
	if speechServer == "" {
		speechServer = defaultSpeechServer()
	}
	synth, err := speech.NewSynth(speechServer)
	if err != nil {
		return fmt.Errorf("tdsr: speech server: %w", err)
	}
	if cfg.Speech.Rate != nil {
		synth.SetRate(*cfg.Speech.Rate)
	}
	if cfg.Speech.Volume != nil {
		synth.SetVolume(*cfg.Speech.Volume)
	}
	if cfg.Speech.VoiceIdx != nil {
		synth.SetVoice(*cfg.Speech.VoiceIdx)
	}

	// Raw mode is set once for the lifetime of the process and restored
	// only in the final deferred cleanup, unlike the original, which set
	// it and then immediately restored it before the loop ever ran.
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("tdsr: set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("tdsr: get terminal size: %w", err)
	}

	screen := vt.NewScreen(rows, cols)
	session := NewSession(screen, nil, synth, cfg)
	host := ptyhost.New(screen, session)
	session.Host = host

	command, args := resolveChild(opts)
	if err := host.Start(command, args, rows, cols, map[string]string{"TSDR_ACTIVE": "true"}); err != nil {
		return fmt.Errorf("tdsr: start child: %w", err)
	}
	defer host.Kill()

	synth.Say("tdsr, presented by Lighthouse of San Francisco")

	err = runLoop(session)
	synth.Close()
	return err
}

// resolveChild mirrors handle_child: an explicit program/args wins, else
// $SHELL, else /bin/sh as a last-resort fallback the original leaves
// implicit in os.execvp's own PATH search.
func resolveChild(opts Options) (string, []string) {
	if opts.Program != "" {
		return opts.Program, opts.ProgramArgs
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell, nil
	}
	return "/bin/sh", nil
}

func configFileExists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.Path())
	return err == nil
}
