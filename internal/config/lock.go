package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"gopkg.in/ini.v1"
)

// Save writes the config back to its recorded path, guarded by an
// exclusive file lock so a concurrent tdsr instance's config-menu commit
// can't interleave writes. Booleans always serialize as the canonical
// "true"/"false" (ini.v1's reflection-based ReflectFrom, not the
// original's untyped str(bool) passthrough) — spec.md §9's Open Question
// on boolean representation, fixed per REDESIGN FLAGS.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config: no path to save to")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	lock := flock.New(c.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("config: acquire lock: %w", err)
	}
	defer lock.Unlock()

	file := ini.Empty()
	speechSec, err := file.NewSection("speech")
	if err != nil {
		return err
	}
	if err := speechSec.ReflectFrom(&c.Speech); err != nil {
		return fmt.Errorf("config: encode speech section: %w", err)
	}

	if err := writeMapSection(file, "symbols", c.Symbols); err != nil {
		return err
	}
	if err := writeMapSection(file, "plugins", c.Plugins); err != nil {
		return err
	}
	if err := writeMapSection(file, "commands", c.Commands); err != nil {
		return err
	}

	return file.SaveTo(c.path)
}

func writeMapSection(file *ini.File, name string, values map[string]string) error {
	sec, err := file.NewSection(name)
	if err != nil {
		return err
	}
	for k, v := range values {
		sec.NewKey(k, v)
	}
	return nil
}

// SetBool sets the boolean speech field that field points to and saves, used by
// the config menu's on/off toggles (set_process_symbols, set_echo,
// set_cursor_tracking, set_line_pause, set_repeated_symbols).
func (c *Config) SetBool(field *bool, newValue bool) error {
	*field = newValue
	return c.Save()
}

// SetCursorDelayMillis stores a cursor delay given in milliseconds (the
// config menu's input unit) as the seconds value the scheduler consumes,
// per the original's set_delay2 dividing by 1000.
func (c *Config) SetCursorDelayMillis(ms int) error {
	seconds := float64(ms) / 1000
	c.Speech.CursorDelay = &seconds
	return c.Save()
}

// ParseIntField is a small helper shared by the config menu's rate/volume/
// voice-index/cursor-delay prompts: it parses val as a base-10 integer,
// returning ok=false (never an error) on failure, mirroring the
// original's bare `except ValueError: say("Invalid value")`.
func ParseIntField(val string) (n int, ok bool) {
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
