// Package config loads and saves tdsr's INI-format settings file: speech
// defaults, the user-configurable symbol table, and plugin/command
// shortcuts (spec.md §6).
package config

import (
	"os"

	"gopkg.in/ini.v1"
)

// SpeechSection mirrors the original's state.config['speech'] defaults.
// Pointer fields (Rate, Volume, VoiceIdx, CursorDelay) distinguish "unset"
// from a configured zero value, matching the original's `if 'rate' in
// state.config['speech']` presence checks.
type SpeechSection struct {
	ProcessSymbols        bool    `ini:"process_symbols"`
	KeyEcho               bool    `ini:"key_echo"`
	CursorTracking        bool    `ini:"cursor_tracking"`
	LinePause             bool    `ini:"line_pause"`
	RepeatedSymbols       bool    `ini:"repeated_symbols"`
	RepeatedSymbolsValues string  `ini:"repeated_symbols_values"`
	Prompt                string  `ini:"prompt"`
	Rate                  *int    `ini:"rate,omitempty"`
	Volume                *int    `ini:"volume,omitempty"`
	VoiceIdx              *int    `ini:"voice_idx,omitempty"`
	CursorDelay           *float64 `ini:"cursor_delay,omitempty"`
}

func defaultSpeech() SpeechSection {
	return SpeechSection{
		ProcessSymbols:        false,
		KeyEcho:               true,
		CursorTracking:        true,
		LinePause:             true,
		RepeatedSymbols:       false,
		RepeatedSymbolsValues: "-=!#",
		Prompt:                ".*",
	}
}

// Config holds everything persisted to the INI file. Symbols maps a
// decimal codepoint string to its spoken word; Plugins maps a plugin name
// to the Meta-prefixed shortcut letter that invokes it; Commands maps a
// plugin name to the regex its output-collection loop also requires.
type Config struct {
	Speech   SpeechSection
	Symbols  map[string]string
	Plugins  map[string]string
	Commands map[string]string

	path string
}

// New returns an in-memory config with the original's built-in defaults
// and empty symbol/plugin/command tables.
func New() *Config {
	return &Config{
		Speech:   defaultSpeech(),
		Symbols:  map[string]string{},
		Plugins:  map[string]string{},
		Commands: map[string]string{},
	}
}

// Load reads the config at the first existing path found by ResolvePath,
// or returns New() with no error if none exists yet.
func Load() (*Config, error) {
	path, found := ResolvePath()
	if !found {
		c := New()
		c.path = path
		return c, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path. A missing file yields New()
// with path recorded for a later Save.
func LoadFrom(path string) (*Config, error) {
	c := New()
	c.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	if sec := file.Section("speech"); sec != nil {
		if err := sec.MapTo(&c.Speech); err != nil {
			return nil, err
		}
	}
	c.Symbols = sectionMap(file, "symbols")
	c.Plugins = sectionMap(file, "plugins")
	c.Commands = sectionMap(file, "commands")
	return c, nil
}

func sectionMap(file *ini.File, name string) map[string]string {
	out := map[string]string{}
	sec, err := file.GetSection(name)
	if err != nil {
		return out
	}
	for _, key := range sec.Keys() {
		out[key.Name()] = key.Value()
	}
	return out
}

// Path returns the file path this config was loaded from or will save to.
func (c *Config) Path() string {
	return c.path
}
