package config

import (
	"os"
	"path/filepath"
)

// ResolvePath returns the config file path to use: ~/.tdsr.cfg if it
// already exists (preserving older installs, per the original's comment
// "start using XDG in the future, but if the file already exists in
// ~/.tdsr.cfg, respect it"), else the XDG-style
// ~/.config/tdsr/tdsr.cfg. found reports whether either path currently
// exists on disk.
func ResolvePath() (path string, found bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	legacy := filepath.Join(home, ".tdsr.cfg")
	if _, err := os.Stat(legacy); err == nil {
		return legacy, true
	}

	xdg := filepath.Join(home, ".config", "tdsr", "tdsr.cfg")
	if _, err := os.Stat(xdg); err == nil {
		return xdg, true
	}

	return xdg, false
}
