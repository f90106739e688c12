// Package pluginext implements the output-extension contract: a plugin
// inspects the screen's rows bottom-up to find the start of a shell
// command's output and extracts the lines worth speaking from it,
// matching the original's handle_plugin/plugins.*.parse_output design.
package pluginext

import (
	"fmt"
	"plugin"
	"regexp"
)

// Parser is the contract a plugin module must satisfy: given the
// collected output lines (bottom-up order, oldest last), return the
// subset worth speaking.
type Parser interface {
	ParseOutput(lines []string) ([]string, error)
}

// ParseOutputFunc adapts a bare function to Parser.
type ParseOutputFunc func(lines []string) ([]string, error)

func (f ParseOutputFunc) ParseOutput(lines []string) ([]string, error) { return f(lines) }

// Load opens a Go plugin (.so) built with `go build -buildmode=plugin`
// and resolves its exported ParseOutput(lines []string) ([]string, error)
// function, matching the original's importlib.import_module indirection
// but resolved against the standard library's plugin loader rather than
// a third-party scripting runtime — no example in the retrieved pack
// wires Go-native dynamic loading any other way, and CGO-requiring
// alternatives are a worse fit for a single-binary CLI tool.
func Load(path string) (Parser, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pluginext: open %s: %w", path, err)
	}
	sym, err := p.Lookup("ParseOutput")
	if err != nil {
		return nil, fmt.Errorf("pluginext: lookup ParseOutput in %s: %w", path, err)
	}
	fn, ok := sym.(func([]string) ([]string, error))
	if !ok {
		return nil, fmt.Errorf("pluginext: %s: ParseOutput has the wrong signature", path)
	}
	return ParseOutputFunc(fn), nil
}

// CollectOutput walks screen rows from the bottom upward, accumulating
// them until a row matches prompt (and, if cmdPattern is non-nil, also
// matches cmdPattern), then stops — mirroring handle_plugin's loop that
// hunts backward for the prompt line that issued the command. lineAt(i)
// returns row i's already-trimmed text; rows is the total row count.
func CollectOutput(rows int, lineAt func(i int) string, prompt, cmdPattern *regexp.Regexp) []string {
	var lines []string
	for i := rows - 1; i >= 0; i-- {
		line := lineAt(i)
		lines = append(lines, line)
		if prompt != nil && prompt.MatchString(line) {
			if cmdPattern == nil || cmdPattern.MatchString(line) {
				break
			}
		}
	}
	return lines
}
