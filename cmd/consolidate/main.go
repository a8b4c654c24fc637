// zippy-consolidate - merge per-dictionary wordlists into one file per language
// Usage: zippy-consolidate -i wordlists -o wordlists/consolidated
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"zippy/internal/config"
	"zippy/internal/ui"
	"zippy/internal/wordlist"
)

func main() {
	defaults := config.Load().Defaults

	inputDir := pflag.StringP("input", "i", defaults.WordlistsDir, "Directory with <language>_<dictionary>.txt wordlists")
	outputDir := pflag.StringP("output", "o", "", "Output directory (default <input>/consolidated)")
	languages := pflag.StringSliceP("languages", "l", nil, "Languages to merge (default all)")
	fold := pflag.Bool("fold", false, "Lowercase and strip Latin diacritics before merging")
	quiet := pflag.BoolP("quiet", "q", defaults.Quiet, "Suppress output")
	pflag.Parse()

	if *inputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: zippy-consolidate -i <input-dir> [-o <output-dir>]")
		pflag.PrintDefaults()
		os.Exit(1)
	}
	if *outputDir == "" {
		*outputDir = filepath.Join(*inputDir, "consolidated")
	}

	term := ui.New(*quiet, false)
	pterm.DefaultSection.Println(fmt.Sprintf("Consolidating wordlists from %s", *inputDir))

	manifest, err := wordlist.Consolidate(*inputDir, *outputDir, wordlist.MergeOptions{
		Fold:      *fold,
		Languages: *languages,
	})
	if err != nil {
		term.Error(err.Error())
		os.Exit(1)
	}
	if len(manifest.Groups) == 0 {
		term.Warning("No wordlists found")
		return
	}

	counts := make(map[string]int, len(manifest.Groups))
	for _, g := range manifest.Groups {
		counts[g.Language] = g.Count
		term.Debug(fmt.Sprintf("%s: %d source files", g.Language, len(g.Sources)))
	}
	term.CountTable("Language", counts)

	term.Info(fmt.Sprintf("Total: %s words in %d languages", ui.Count(manifest.Total), len(manifest.Groups)))
	term.Success(fmt.Sprintf("Output: %s/", *outputDir))
}
