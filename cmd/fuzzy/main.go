// zippy-fuzzy looks a word up in extracted wordlists, tolerating typos
// and missing accents.
// Usage: zippy-fuzzy [options] <query>
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zippy/internal/config"
	"zippy/internal/lookup"
	"zippy/internal/ui"

	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

func main() {
	dir := pflag.StringP("wordlists", "d", "", "Directory containing wordlist .txt files")
	maxDistance := pflag.IntP("distance", "n", 2, "Maximum edit distance")
	limit := pflag.IntP("limit", "l", 10, "Maximum results to show")
	jsonOutput := pflag.BoolP("json", "j", false, "Output as JSON")
	languages := pflag.StringSliceP("language", "L", nil, "Restrict to these languages (empty = all)")
	consolidated := pflag.BoolP("consolidated", "c", false, "Search <dir>/consolidated instead of per-dictionary lists")

	pflag.Parse()

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: zippy-fuzzy [options] <query>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
		os.Exit(1)
	}
	query := strings.Join(pflag.Args(), " ")

	if *dir == "" {
		*dir = config.Load().Defaults.WordlistsDir
	}
	if *consolidated {
		*dir = filepath.Join(*dir, "consolidated")
	}

	ix, err := lookup.LoadDir(*dir, *languages)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if ix.Words() == 0 {
		fmt.Fprintf(os.Stderr, "No words found in %s\n", *dir)
		os.Exit(1)
	}

	results := ix.Search(query, *maxDistance)
	if *limit > 0 && len(results) > *limit {
		results = results[:*limit]
	}

	if *jsonOutput {
		output := struct {
			Query   string         `json:"query"`
			MaxDist int            `json:"max_distance"`
			Indexed int            `json:"indexed"`
			Count   int            `json:"count"`
			Results []lookup.Match `json:"results"`
		}{
			Query:   query,
			MaxDist: *maxDistance,
			Indexed: ix.Words(),
			Count:   len(results),
			Results: results,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	term := ui.New(false, false)
	if len(results) == 0 {
		term.Warning(fmt.Sprintf("No matches for %q within distance %d (%s words indexed)",
			query, *maxDistance, ui.Count(ix.Words())))
		return
	}

	rows := [][]string{{"Word", "Distance", "Languages"}}
	for _, r := range results {
		langs := make([]string, len(r.Languages))
		for i, l := range r.Languages {
			langs[i] = ui.LanguageTitle(l)
		}
		rows = append(rows, []string{r.Word, fmt.Sprintf("%d", r.Distance), strings.Join(langs, ", ")})
	}
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	term.Info(fmt.Sprintf("%d match(es) for %q among %s words", len(results), query, ui.Count(ix.Words())))
}
