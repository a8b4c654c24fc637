// Package lookup answers approximate queries against extracted wordlists.
// Words are indexed by their folded form, so "cafe" finds "café" at
// distance 0 and the surface spellings are reported back with the
// languages they came from.
package lookup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zippy/internal/normalizer"
	"zippy/internal/wordlist"
)

// Match is one surface word found by Search.
type Match struct {
	Word      string   `json:"word"`
	Languages []string `json:"languages"`
	Distance  int      `json:"distance"`
}

// Index maps folded keys to the words and languages that produced them.
type Index struct {
	tree  tree
	forms map[string]map[string]map[string]bool // key -> word -> language set
	words int
}

// New returns an empty index.
func New() *Index {
	return &Index{forms: make(map[string]map[string]map[string]bool)}
}

// Add indexes word under language. Blank words are ignored.
func (ix *Index) Add(word, language string) {
	word = strings.TrimSpace(word)
	if word == "" {
		return
	}
	key := normalizer.Fold(word)
	ix.tree.insert(key)

	byWord, ok := ix.forms[key]
	if !ok {
		byWord = make(map[string]map[string]bool)
		ix.forms[key] = byWord
	}
	langs, ok := byWord[word]
	if !ok {
		langs = make(map[string]bool)
		byWord[word] = langs
		ix.words++
	}
	langs[language] = true
}

// AddAll indexes every word under language.
func (ix *Index) AddAll(words []string, language string) {
	for _, w := range words {
		ix.Add(w, language)
	}
}

// Keys is the number of distinct folded keys.
func (ix *Index) Keys() int { return ix.tree.size }

// Words is the number of distinct surface words.
func (ix *Index) Words() int { return ix.words }

// Search returns the words whose folded form is within maxDistance of the
// folded query, nearest first and alphabetical within a distance.
func (ix *Index) Search(query string, maxDistance int) []Match {
	query = normalizer.Fold(strings.TrimSpace(query))
	if query == "" || maxDistance < 0 {
		return nil
	}

	var matches []Match
	ix.tree.within(query, maxDistance, func(key string, d int) {
		for word, set := range ix.forms[key] {
			langs := make([]string, 0, len(set))
			for l := range set {
				langs = append(langs, l)
			}
			sort.Strings(langs)
			matches = append(matches, Match{Word: word, Languages: langs, Distance: d})
		}
	})

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Word < matches[j].Word
	})
	return matches
}

// LanguageOfFile names the language of a wordlist file: the prefix of a
// per-dictionary list or the whole stem of a consolidated one.
func LanguageOfFile(name string) string {
	if lang := wordlist.LanguageOf(name); lang != "" {
		return lang
	}
	base := filepath.Base(name)
	if !strings.HasSuffix(base, ".txt") {
		return ""
	}
	return strings.TrimSuffix(base, ".txt")
}

// LoadDir indexes every .txt wordlist directly under dir. A non-empty
// languages slice restricts which files are read.
func LoadDir(dir string, languages []string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read wordlists dir: %w", err)
	}

	wanted := make(map[string]bool, len(languages))
	for _, l := range languages {
		wanted[strings.ToLower(l)] = true
	}

	ix := New()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lang := LanguageOfFile(e.Name())
		if lang == "" || (len(wanted) > 0 && !wanted[lang]) {
			continue
		}
		words, err := wordlist.Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		ix.AddAll(words, lang)
	}
	return ix, nil
}
