package wordlist

import (
	"context"
	"sort"
	"sync"
)

// Stats summarises a Write.
type Stats struct {
	TotalWords   int
	ByLanguage   map[string]int
	FilesWritten []string
	// Skipped lists filenames of empty wordlists that were not written.
	Skipped []string
	Errors  []error
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{ByLanguage: make(map[string]int)}
}

// Writer collects wordlists and writes them to OutputDir.
type Writer struct {
	OutputDir string
	Workers   int
	lists     []*Wordlist
}

// NewWriter creates a Writer. workers <= 1 writes sequentially.
func NewWriter(outputDir string, workers int) *Writer {
	return &Writer{OutputDir: outputDir, Workers: workers}
}

// Add queues a list for writing.
func (w *Writer) Add(list *Wordlist) {
	w.lists = append(w.lists, list)
}

// Len returns the number of queued lists.
func (w *Writer) Len() int {
	return len(w.lists)
}

// Write saves every queued non-empty list. Cancellation stops handing out
// new files; files already being written complete.
func (w *Writer) Write(ctx context.Context) *Stats {
	stats := NewStats()
	var mu sync.Mutex

	record := func(list *Wordlist) {
		path, err := list.Save(w.OutputDir)
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err != nil:
			stats.Errors = append(stats.Errors, err)
		case path == "":
			stats.Skipped = append(stats.Skipped, list.Filename)
		default:
			stats.FilesWritten = append(stats.FilesWritten, path)
			stats.TotalWords += list.Count()
			stats.ByLanguage[list.Language] += list.Count()
		}
	}

	if w.Workers <= 1 {
		for _, list := range w.lists {
			if ctx.Err() != nil {
				break
			}
			record(list)
		}
		return stats.sorted()
	}

	jobs := make(chan *Wordlist, len(w.lists))
	var wg sync.WaitGroup
	for i := 0; i < w.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for list := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					record(list)
				}
			}
		}()
	}

	for _, list := range w.lists {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return stats.sorted()
		case jobs <- list:
		}
	}
	close(jobs)
	wg.Wait()

	return stats.sorted()
}

func (s *Stats) sorted() *Stats {
	sort.Strings(s.FilesWritten)
	sort.Strings(s.Skipped)
	return s
}
