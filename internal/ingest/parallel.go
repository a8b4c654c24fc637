package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"zippy/internal/pipeline"
)

// ParallelConfig configures ProcessAll.
type ParallelConfig struct {
	Workers  int // Number of parallel workers (<= 1 = sequential)
	Pipeline *pipeline.Pipeline
	Logger   zerolog.Logger
}

// DocumentResult holds the outcome for a single dictionary file.
type DocumentResult struct {
	Source   Source
	Result   *pipeline.Result
	Error    error
	Duration time.Duration
}

// ProgressCallback is called when a document completes processing.
type ProgressCallback func(result *DocumentResult)

// Process loads and extracts one dictionary file. Failures are recorded on
// the result, never returned.
func Process(path string, p *pipeline.Pipeline, log zerolog.Logger) *DocumentResult {
	start := time.Now()
	dr := &DocumentResult{Source: NewSource(path)}

	doc, err := Load(path)
	if err == nil {
		dr.Result, err = p.Process(doc)
	}
	dr.Error = err
	dr.Duration = time.Since(start)

	ev := log.Debug()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Str("document", dr.Source.Name).Dur("took", dr.Duration).Msg("document processed")
	return dr
}

// ProcessAll runs Process over paths with a worker pool. Results keep the
// order of paths; documents not started before ctx is cancelled carry
// ctx.Err().
func ProcessAll(ctx context.Context, paths []string, config ParallelConfig, callback ProgressCallback) []*DocumentResult {
	results := make([]*DocumentResult, len(paths))
	p := config.Pipeline
	if p == nil {
		p = pipeline.New(pipeline.DefaultOptions())
	}

	if config.Workers <= 1 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				results[i] = &DocumentResult{Source: NewSource(path), Error: err}
				continue
			}
			results[i] = Process(path, p, config.Logger)
			if callback != nil {
				callback(results[i])
			}
		}
		return results
	}

	type job struct {
		index int
		path  string
	}
	type done struct {
		index     int
		result    *DocumentResult
		cancelled bool
	}

	jobs := make(chan job, len(paths))
	resultsChan := make(chan done, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					resultsChan <- done{j.index, &DocumentResult{Source: NewSource(j.path), Error: err}, true}
					continue
				}
				resultsChan <- done{j.index, Process(j.path, p, config.Logger), false}
			}
		}()
	}

	for i, path := range paths {
		jobs <- job{i, path}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for r := range resultsChan {
		results[r.index] = r.result
		if callback != nil && !r.cancelled {
			callback(r.result)
		}
	}
	return results
}

// ParallelStats holds aggregate statistics over document results.
type ParallelStats struct {
	TotalDocuments int
	Successful     int
	Failed         int
	Empty          int
	SourceWords    int
	TargetWords    int
	Recovered      int
}

// AggregateResults computes statistics from results. Word counts are raw
// (before deduplication).
func AggregateResults(results []*DocumentResult) *ParallelStats {
	stats := &ParallelStats{TotalDocuments: len(results)}

	for _, r := range results {
		if r == nil || r.Error != nil || r.Result == nil {
			stats.Failed++
			continue
		}
		stats.Successful++
		if r.Result.Empty() {
			stats.Empty++
		}
		stats.SourceWords += len(r.Result.Source)
		stats.TargetWords += len(r.Result.Target)
		stats.Recovered += r.Result.Recovered
	}
	return stats
}
