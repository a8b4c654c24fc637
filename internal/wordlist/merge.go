package wordlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zippy/internal/normalizer"
)

// LanguageOf returns the language prefix of a wordlist filename
// ("english_freedict-eng-ces.txt" -> "english"), or "" if it has none.
func LanguageOf(filename string) string {
	base := filepath.Base(filename)
	if !strings.HasSuffix(base, ".txt") {
		return ""
	}
	lang, _, ok := strings.Cut(strings.TrimSuffix(base, ".txt"), "_")
	if !ok || lang == "" {
		return ""
	}
	return lang
}

// MergeOptions configures Consolidate.
type MergeOptions struct {
	// Fold lowercases words and maps accented Latin letters to ASCII.
	Fold bool
	// Languages restricts the merge; empty means all.
	Languages []string
}

// Group is the merged result for one language.
type Group struct {
	Language string   `json:"language"`
	Count    int      `json:"count"`
	Sources  []string `json:"sources"`
	File     string   `json:"file"`
}

// Manifest describes a consolidation run.
type Manifest struct {
	Input  string  `json:"input"`
	Total  int     `json:"total"`
	Groups []Group `json:"groups"`
}

// Consolidate merges every <lang>_*.txt file directly under inputDir into
// outputDir/<lang>.txt and writes outputDir/manifest.json.
func Consolidate(inputDir, outputDir string, opts MergeOptions) (*Manifest, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input dir: %w", err)
	}

	wanted := make(map[string]bool, len(opts.Languages))
	for _, l := range opts.Languages {
		wanted[strings.ToLower(l)] = true
	}

	sources := make(map[string][]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lang := LanguageOf(e.Name())
		if lang == "" || (len(wanted) > 0 && !wanted[lang]) {
			continue
		}
		sources[lang] = append(sources[lang], e.Name())
	}

	langs := make([]string, 0, len(sources))
	for l := range sources {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	manifest := &Manifest{Input: inputDir, Groups: make([]Group, 0, len(langs))}
	for _, lang := range langs {
		files := sources[lang]
		sort.Strings(files)

		var raw []string
		for _, f := range files {
			words, err := Load(filepath.Join(inputDir, f))
			if err != nil {
				return nil, err
			}
			raw = append(raw, words...)
		}
		if opts.Fold {
			for i, w := range raw {
				raw[i] = normalizer.Fold(w)
			}
		}

		list := New(lang, lang+".txt", raw)
		path, err := list.Save(outputDir)
		if err != nil {
			return nil, err
		}
		manifest.Groups = append(manifest.Groups, Group{
			Language: lang,
			Count:    list.Count(),
			Sources:  files,
			File:     path,
		})
		manifest.Total += list.Count()
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, "manifest.json"), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}
	return manifest, nil
}
