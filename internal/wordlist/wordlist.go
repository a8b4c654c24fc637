// Package wordlist deduplicates, sorts and persists extracted words as
// newline-joined UTF-8 text, one file per language and dictionary.
package wordlist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Wordlist is a sorted set of unique words for one language of one
// dictionary. It is never mutated after New.
type Wordlist struct {
	Language string
	Filename string
	words    []string
}

// New builds a Wordlist from raw, possibly duplicated words. Empty strings
// are dropped. Order is ascending by code point.
func New(language, filename string, raw []string) *Wordlist {
	return &Wordlist{Language: language, Filename: filename, words: Unique(raw)}
}

// Unique returns the distinct non-empty values of raw in code point order.
func Unique(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	// Byte order of valid UTF-8 equals code point order.
	sort.Strings(words)
	return words
}

// Words returns a copy of the words.
func (w *Wordlist) Words() []string {
	return append([]string(nil), w.words...)
}

// Count returns the number of words.
func (w *Wordlist) Count() int {
	return len(w.words)
}

// Empty reports whether the list has no words.
func (w *Wordlist) Empty() bool {
	return len(w.words) == 0
}

// Bytes returns the file content: words joined by "\n", no trailing newline.
func (w *Wordlist) Bytes() []byte {
	return []byte(strings.Join(w.words, "\n"))
}

// Save writes the list into dir. An empty list writes nothing and returns
// an empty path.
func (w *Wordlist) Save(dir string) (string, error) {
	if w.Empty() {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, w.Filename)
	if err := os.WriteFile(path, w.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write wordlist: %w", err)
	}
	return path, nil
}

// Load reads a saved wordlist. Blank lines are ignored.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlist: %w", err)
	}
	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			words = append(words, line)
		}
	}
	return words, nil
}
