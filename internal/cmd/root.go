package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tdsr/internal/engine"
	"tdsr/internal/version"
)

// NewRootCmd builds tdsr's command line: a single command (no
// subcommands) that wraps the given program, or $SHELL if none is given,
// in a screen-reading PTY.
func NewRootCmd() *cobra.Command {
	var speechServer string
	var debug bool
	var debugLogPath string

	rootCmd := &cobra.Command{
		Use:   "tdsr [flags] [--] [command] [args...]",
		Short: "Terminal screen reader",
		Long: `tdsr wraps a child program in a pseudo-terminal, renders its output into a
virtual screen, and speaks what changes through a speech synthesizer,
giving a blind user a character-cell terminal they can review by line,
word, or character.`,
		Version:               version.DisplayVersion(),
		Args:                  cobra.ArbitraryArgs,
		DisableFlagsInUseLine: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
				return fmt.Errorf("tdsr: stdin is not a terminal")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := engine.Options{
				SpeechServer: speechServer,
				Debug:        debug,
				DebugLogPath: debugLogPath,
			}
			if len(args) > 0 {
				opts.Program = args[0]
				opts.ProgramArgs = args[1:]
			}
			return engine.Run(opts)
		},
	}

	rootCmd.Flags().StringVarP(&speechServer, "speech-server", "s", "", "command line for the speech synth subprocess (default: platform-specific)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write structured debug logs")
	rootCmd.Flags().StringVar(&debugLogPath, "debug-log", "", "debug log path (default: tdsr.log)")

	return rootCmd
}
