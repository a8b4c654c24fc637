// zippy CLI - extracts source and target language wordlists from bilingual
// dictionaries.
//
// Usage:
//
//	zippy [flags] [all]
//	zippy [flags] single <file>
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"zippy/internal/config"
	"zippy/internal/corpus"
	"zippy/internal/ingest"
	"zippy/internal/metrics"
	"zippy/internal/pipeline"
	"zippy/internal/pos"
	"zippy/internal/ui"
	"zippy/internal/wordlist"
)

func main() {
	defaults := config.Load().Defaults

	// Flags
	posInclude := pflag.StringSliceP("pos", "p", defaults.POSInclude, "Parts of speech to keep (empty = all)")
	noSkipPlurals := pflag.Bool("no-skip-plurals", !defaults.SkipPlurals, "Keep entries tagged as plural")
	dictDir := pflag.StringP("dictionaries", "d", defaults.DictionariesDir, "Directory containing dictionary files")
	outputDir := pflag.StringP("output", "o", defaults.WordlistsDir, "Directory for wordlists")
	sampleSize := pflag.Int("sample-size", defaults.SampleSize, "Lines sampled for script detection")
	recoveryDivisor := pflag.Int("recovery-divisor", defaults.RecoveryDivisor, "StarDict recovery threshold divisor")
	quiet := pflag.BoolP("quiet", "q", defaults.Quiet, "Suppress progress output")
	verbose := pflag.CountP("verbose", "v", "Verbose logging (-v info, -vv debug)")
	writeMetrics := pflag.Bool("metrics", defaults.Metrics, "Write metrics to the wordlists directory")
	benchmark := pflag.Bool("benchmark", false, "Run in benchmark mode (JSON output only)")

	// Parallel processing flags
	parallel := pflag.Bool("parallel", defaults.Parallel, "Process dictionaries in parallel")
	workers := pflag.IntP("workers", "w", defaults.Workers, "Number of parallel workers (0 = auto)")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: zippy [flags] [all | single <file>]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *verbose == 0 {
		*verbose = defaults.Verbose
	}
	*workers = config.ResolveWorkers(*parallel, *workers)

	log := newLogger(*verbose)
	term := ui.New(*quiet || *benchmark, *verbose > 0)

	// Command
	var paths []string
	args := pflag.Args()
	single := len(args) > 0 && args[0] == "single"
	switch {
	case len(args) == 0 || (args[0] == "all" && len(args) == 1):
	case single && len(args) == 2:
	default:
		pflag.Usage()
		os.Exit(2)
	}

	if !*benchmark {
		term.Banner()
	}

	filter := pos.NewFilter(*posInclude, !*noSkipPlurals)

	collector := metrics.NewCollector()
	collector.SetConfigMap(map[string]interface{}{
		"dictionaries_dir": *dictDir,
		"wordlists_dir":    *outputDir,
		"pos_include":      *posInclude,
		"skip_plurals":     !*noSkipPlurals,
		"sample_size":      *sampleSize,
		"recovery_divisor": *recoveryDivisor,
		"parallel":         *parallel,
		"workers":          *workers,
	})

	if !*benchmark {
		term.Config(*dictDir, *outputDir, *posInclude, !*noSkipPlurals, *workers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Phase 1: Discover
	collector.StartStage(metrics.StageDiscover)
	if !*benchmark {
		term.Phase(1, 3, "Discovering dictionaries")
	}
	if single {
		path := args[1]
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(*dictDir, args[1])
		}
		paths = []string{path}
	} else {
		spinner := term.Spinner(fmt.Sprintf("Scanning %s", *dictDir))
		found, err := ingest.Discover(*dictDir)
		spinner.Stop()
		if err != nil {
			term.Error(err.Error())
			os.Exit(1)
		}
		paths = found
	}
	collector.SetCounter("files", int64(len(paths)))
	collector.EndStage(metrics.StageDiscover)

	if len(paths) == 0 {
		term.Warning(fmt.Sprintf("No supported dictionaries in %s (%v)", *dictDir, ingest.SupportedExtensions))
		os.Exit(0)
	}
	if !*benchmark {
		term.Info(fmt.Sprintf("%d dictionaries found", len(paths)))
	}

	// Phase 2: Extract
	collector.StartStage(metrics.StageExtract)
	if !*benchmark {
		term.Phase(2, 3, "Extracting words")
	}

	p := pipeline.New(pipeline.Options{
		Filter:          filter,
		SampleSize:      *sampleSize,
		RecoveryDivisor: *recoveryDivisor,
		Logger:          log,
	})

	var progress *pterm.ProgressbarPrinter
	if !*benchmark {
		progress = term.Progress("Dictionaries", len(paths))
	}
	results := ingest.ProcessAll(ctx, paths, ingest.ParallelConfig{
		Workers:  *workers,
		Pipeline: p,
		Logger:   log,
	}, func(r *ingest.DocumentResult) {
		collector.RecordDocument(documentMetrics(r))
		if progress != nil {
			progress.Increment()
		}
	})
	if progress != nil {
		progress.Stop()
	}

	pstats := ingest.AggregateResults(results)
	collector.EndStage(metrics.StageExtract)
	collector.SetStageRate(metrics.StageExtract, "documents_per_sec", pstats.TotalDocuments)

	// Phase 3: Write
	collector.StartStage(metrics.StageWrite)
	if !*benchmark {
		term.Phase(3, 3, "Writing wordlists")
	}

	writer := wordlist.NewWriter(*outputDir, *workers)
	lists := make([]documentLists, len(results))
	for i, r := range results {
		if r.Error != nil {
			continue
		}
		lists[i] = documentLists{
			source: wordlist.New(r.Source.SourceLanguage, r.Source.SourceFile, r.Result.Source),
			target: wordlist.New(r.Source.TargetLanguage, r.Source.TargetFile, r.Result.Target),
		}
		writer.Add(lists[i].target)
		writer.Add(lists[i].source)
	}
	wstats := writer.Write(ctx)
	collector.SetCounter("files", int64(len(wstats.FilesWritten)))
	collector.SetCounter("skipped", int64(len(wstats.Skipped)))
	collector.SetCounter("words", int64(wstats.TotalWords))
	collector.EndStage(metrics.StageWrite)
	collector.SetStageRate(metrics.StageWrite, "words_per_sec", wstats.TotalWords)

	if !*benchmark {
		reportDocuments(term, results, lists, *outputDir)
		for _, err := range wstats.Errors {
			term.Error(err.Error())
		}
		term.CountTable("Language", wstats.ByLanguage)
	}

	runMetrics := collector.Finalize(int64(wstats.TotalWords), len(wstats.FilesWritten))

	if *writeMetrics || *benchmark {
		reporter := metrics.NewReporter(*outputDir)
		previousRun, _ := reporter.LastRun()

		if err := reporter.Write(runMetrics); err != nil {
			if !*benchmark {
				term.Warning(fmt.Sprintf("Failed to write metrics: %v", err))
			}
		} else if !*benchmark {
			term.Debug(fmt.Sprintf("Metrics written: %s", runMetrics.RunID))
		}

		if previousRun != nil && !*benchmark {
			if comparison := metrics.CompareRuns(runMetrics, previousRun); comparison != nil {
				term.Info(metrics.FormatComparison(comparison))
			}
		}
	}

	if *benchmark {
		fmt.Printf(`{"run_id":"%s","duration_ms":%d,"throughput":%.2f,"words":%d,"files":%d,"documents":%d,"failed":%d,"parallel":%t,"workers":%d}`,
			collector.RunID(),
			runMetrics.Totals.DurationMs,
			runMetrics.Totals.Throughput,
			runMetrics.Totals.WordsWritten,
			runMetrics.Totals.FilesWritten,
			pstats.TotalDocuments,
			pstats.Failed,
			*parallel,
			*workers,
		)
		fmt.Println()
	} else {
		if !single {
			term.CountTable("Layout", runMetrics.Totals.ByLayout)
		}
		term.FinalReport(
			pstats.Successful,
			pstats.TotalDocuments,
			wstats.TotalWords,
			len(wstats.FilesWritten),
			collector.StageDuration(metrics.StageDiscover)+collector.StageDuration(metrics.StageExtract)+collector.StageDuration(metrics.StageWrite),
		)
		term.Done()
	}

	if pstats.Failed > 0 {
		os.Exit(1)
	}
}

// newLogger writes human-readable zerolog output to stderr.
func newLogger(verbosity int) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case verbosity >= 2:
		level = zerolog.DebugLevel
	case verbosity == 1:
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

func documentMetrics(r *ingest.DocumentResult) metrics.DocumentMetrics {
	d := metrics.DocumentMetrics{
		Name:       r.Source.Name,
		DurationMs: r.Duration.Milliseconds(),
	}
	if r.Error != nil {
		d.Error = r.Error.Error()
		return d
	}
	d.Packaging = r.Result.Packaging.String()
	d.Layout = r.Result.Layout.String()
	d.SourceWords = len(r.Result.Source)
	d.TargetWords = len(r.Result.Target)
	d.Recovered = r.Result.Recovered
	return d
}

// documentLists holds the two wordlists built from one document.
type documentLists struct {
	source *wordlist.Wordlist
	target *wordlist.Wordlist
}

// reportDocuments prints one block per dictionary in input order.
func reportDocuments(term *ui.UI, results []*ingest.DocumentResult, lists []documentLists, outputDir string) {
	for i, r := range results {
		if r.Error != nil {
			term.DocumentError(r.Source.Name, r.Error)
			continue
		}

		layout := ""
		if r.Result.Packaging == corpus.Text {
			layout = r.Result.Layout.String()
		}
		term.Document(r.Source.Name, r.Result.Packaging.String(), layout)

		source, target := lists[i].source, lists[i].target
		if !source.Empty() {
			term.Saved(source.Language, source.Count(), filepath.Join(outputDir, source.Filename))
		}
		if !target.Empty() {
			term.Saved(target.Language, target.Count(), filepath.Join(outputDir, target.Filename))
		}
		term.Recovered(r.Result.Recovered)
		if source.Empty() && target.Empty() {
			term.NoWords(r.Source.Name)
		}
	}
}
