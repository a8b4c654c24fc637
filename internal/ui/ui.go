// Package ui provides terminal UI components using pterm.
package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Theme colors for consistent styling
var (
	ColorPrimary   = pterm.FgCyan
	ColorSecondary = pterm.FgLightBlue
	ColorSuccess   = pterm.FgGreen
	ColorWarning   = pterm.FgYellow
	ColorError     = pterm.FgRed
	ColorMuted     = pterm.FgGray
)

var (
	numbers = message.NewPrinter(language.English)
	titles  = cases.Title(language.English)
)

// Count formats n with thousands separators.
func Count(n int) string {
	return numbers.Sprintf("%d", n)
}

// LanguageTitle capitalises a language name for display.
func LanguageTitle(name string) string {
	return titles.String(name)
}

// UI wraps pterm components for zippy.
type UI struct {
	quiet   bool
	verbose bool
}

// New creates a new UI instance.
func New(quiet, verbose bool) *UI {
	if quiet {
		pterm.DisableOutput()
	}
	return &UI{quiet: quiet, verbose: verbose}
}

// Banner prints the application banner.
func (u *UI) Banner() {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("zip", pterm.NewStyle(pterm.FgCyan)),
		pterm.NewLettersFromStringWithStyle("py", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()

	pterm.DefaultCenter.Println(
		pterm.FgGray.Sprint("Bilingual Dictionary Wordlist Extractor"),
	)
	fmt.Println()
}

// Config prints the configuration summary.
func (u *UI) Config(dictionariesDir, wordlistsDir string, pos []string, skipPlurals bool, workers int) {
	pterm.DefaultSection.Println("Configuration")

	posDesc := "all"
	if len(pos) > 0 {
		posDesc = strings.Join(pos, ", ")
	}
	if skipPlurals {
		posDesc += " (plurals skipped)"
	}

	data := [][]string{
		{"Dictionaries", dictionariesDir},
		{"Wordlists", wordlistsDir},
		{"Parts of speech", posDesc},
		{"Workers", fmt.Sprintf("%d", workers)},
	}

	pterm.DefaultTable.WithData(data).Render()
	fmt.Println()
}

// Phase prints a phase header.
func (u *UI) Phase(number int, total int, name string) {
	pterm.DefaultSection.WithLevel(2).Println(
		fmt.Sprintf("[%d/%d] %s", number, total, name),
	)
}

// Spinner creates a spinner for long operations.
func (u *UI) Spinner(message string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start(message)
	return spinner
}

// Progress creates a progress bar.
func (u *UI) Progress(title string, total int) *pterm.ProgressbarPrinter {
	pb, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		Start()
	return pb
}

// Document prints the header line of one processed dictionary.
func (u *UI) Document(name, format, layout string) {
	details := pterm.FgGray.Sprintf("format: %s", format)
	if layout != "" {
		details += pterm.FgGray.Sprintf(", layout: %s", layout)
	}
	pterm.Info.Println(pterm.FgCyan.Sprint(name), details)
}

// Saved prints a written wordlist.
func (u *UI) Saved(lang string, count int, path string) {
	pterm.Success.Printf("%s: %s words → %s\n", LanguageTitle(lang), Count(count), path)
}

// Recovered prints the StarDict recovery count when non-zero.
func (u *UI) Recovered(n int) {
	if n > 0 {
		pterm.Info.Printf("  ↪ Recovered %s words from corrupted StarDict offsets\n", Count(n))
	}
}

// NoWords warns that a dictionary produced nothing.
func (u *UI) NoWords(name string) {
	pterm.Warning.Println(pterm.FgCyan.Sprint(name), "no words extracted from this dictionary")
}

// DocumentError prints a per-document failure.
func (u *UI) DocumentError(name string, err error) {
	pterm.Error.Println(pterm.FgCyan.Sprint(name), err)
}

// CountTable prints a two-column table sorted by key.
func (u *UI) CountTable(header string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	data := pterm.TableData{{header, "Count"}}
	for _, k := range keys {
		data = append(data, []string{k, Count(counts[k])})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	fmt.Println()
}

// FinalReport prints the final summary report.
func (u *UI) FinalReport(processed, total, totalWords, filesWritten int, duration time.Duration) {
	pterm.DefaultSection.Println("Summary")

	throughput := float64(0)
	if duration.Seconds() > 0 {
		throughput = float64(totalWords) / duration.Seconds()
	}

	panel := pterm.DefaultBox.WithTitle("Results").Sprint(
		fmt.Sprintf(
			"  Dictionaries:   %s\n"+
				"  Total Words:    %s\n"+
				"  Files Written:  %s\n"+
				"  Duration:       %s\n"+
				"  Throughput:     %s words/sec",
			pterm.FgCyan.Sprintf("%d/%d", processed, total),
			pterm.FgGreen.Sprint(Count(totalWords)),
			pterm.FgCyan.Sprintf("%d", filesWritten),
			pterm.FgYellow.Sprint(duration.Round(time.Millisecond)),
			pterm.FgMagenta.Sprintf("%.0f", throughput),
		),
	)
	fmt.Println(panel)
	pterm.Info.Printf("Processed %d/%d files successfully\n", processed, total)
}

// Success prints a success message.
func (u *UI) Success(message string) {
	pterm.Success.Println(message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	pterm.Error.Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	pterm.Warning.Println(message)
}

// Info prints an info message.
func (u *UI) Info(message string) {
	pterm.Info.Println(message)
}

// Debug prints a debug message (only in verbose mode).
func (u *UI) Debug(message string) {
	if u.verbose {
		pterm.Debug.Println(message)
	}
}

// Done prints the completion message.
func (u *UI) Done() {
	fmt.Println()
	pterm.DefaultCenter.Println(
		pterm.FgGreen.Sprint("✓ Done!"),
	)
}
