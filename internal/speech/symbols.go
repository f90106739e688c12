package speech

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// spaceCodepoint is always excluded from symbol substitution, per
// spec.md §3/§4.3, to prevent runaway spacing.
const spaceCodepoint = 32

// SymbolTable maps codepoints to spoken words and compiles an alternation
// regexp over them. The regexp is rebuilt eagerly on every mutation
// (spec.md §9's symbol-regex-rebuild note), never lazily at say()-time.
type SymbolTable struct {
	mu    sync.RWMutex
	words map[rune]string
	re    *regexp.Regexp
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{words: make(map[rune]string)}
}

// Set maps codepoint to word and rebuilds the compiled regexp.
func (t *SymbolTable) Set(codepoint rune, word string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.words[codepoint] = word
	t.rebuildLocked()
}

// Delete removes codepoint's mapping and rebuilds the compiled regexp.
func (t *SymbolTable) Delete(codepoint rune) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.words, codepoint)
	t.rebuildLocked()
}

func (t *SymbolTable) rebuildLocked() {
	var alts []string
	for cp := range t.words {
		if cp == spaceCodepoint {
			continue
		}
		alts = append(alts, regexp.QuoteMeta(string(cp)))
	}
	if len(alts) == 0 {
		t.re = nil
		return
	}
	t.re = regexp.MustCompile(strings.Join(alts, "|"))
}

// Substitute runs the compiled symbol regexp over text, replacing each
// match with its mapped word surrounded by spaces. A no-op when no symbols
// are configured.
func (t *SymbolTable) Substitute(text string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.re == nil {
		return text
	}
	return t.re.ReplaceAllStringFunc(text, func(m string) string {
		r := []rune(m)[0]
		if word, ok := t.words[r]; ok {
			return " " + word + " "
		}
		return m
	})
}

// Character looks up the spoken word for a single codepoint, used by
// say_character which always substitutes when the codepoint is mapped,
// regardless of process_symbols.
func (t *SymbolTable) Character(r rune) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	word, ok := t.words[r]
	return word, ok
}

// CompressRepeats replaces runs of length >1 of any character in chars with
// "<count> <char>"; other characters pass through unchanged. Used when
// repeated_symbols is enabled (spec.md §4.3, default chars "-=!#").
func CompressRepeats(text, chars string) string {
	if text == "" || chars == "" {
		return text
	}
	set := make(map[rune]bool, len(chars))
	for _, c := range chars {
		set[c] = true
	}

	var out strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		r := runes[i]
		if !set[r] {
			out.WriteRune(r)
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] == r {
			j++
		}
		n := j - i
		if n > 1 {
			fmt.Fprintf(&out, "%d %c", n, r)
		} else {
			out.WriteRune(r)
		}
		i = j
	}
	return out.String()
}
