// Benchmark runner for zippy. Each config runs the zippy binary in
// --benchmark mode over a dictionaries directory and records its JSON
// report.
// Run with: go run ./benchmarks [options]
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Parallel bool   `yaml:"parallel"`
	Workers  int    `yaml:"workers"`
}

type Group struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Dictionaries string   `yaml:"dictionaries"`
	Extra        []string `yaml:"args"`
	Configs      []Config `yaml:"configs"`
}

type ConfigFile struct {
	Groups []Group `yaml:"groups"`
}

// report is the single JSON line zippy prints with --benchmark.
type report struct {
	RunID      string  `json:"run_id"`
	DurationMs int64   `json:"duration_ms"`
	Throughput float64 `json:"throughput"`
	Words      int     `json:"words"`
	Files      int     `json:"files"`
	Documents  int     `json:"documents"`
	Failed     int     `json:"failed"`
	Parallel   bool    `json:"parallel"`
	Workers    int     `json:"workers"`
}

type BenchmarkResult struct {
	ConfigID   string  `json:"config_id"`
	Group      string  `json:"group"`
	DurationMs int64   `json:"duration_ms"`
	Throughput float64 `json:"throughput"`
	Words      int     `json:"words"`
	Files      int     `json:"files"`
	Documents  int     `json:"documents"`
	Failed     int     `json:"failed"`
	Parallel   bool    `json:"parallel"`
	Workers    int     `json:"workers"`
}

func main() {
	configPath := pflag.StringP("config", "c", "benchmarks/configs.yaml", "Path to benchmark configs")
	outputDir := pflag.StringP("output", "o", "benchmarks/results", "Output directory for results")
	group := pflag.StringP("group", "g", "", "Run only this group (empty = all)")
	iterations := pflag.IntP("iterations", "n", 1, "Number of iterations per config")
	binary := pflag.String("zippy", "", "Path to the zippy binary (default: search ./zippy and PATH)")
	pflag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
		os.Exit(1)
	}

	zippyPath := *binary
	if zippyPath == "" {
		zippyPath = findZippy()
	}
	if zippyPath == "" {
		fmt.Fprintln(os.Stderr, "Error: zippy binary not found. Build with 'go build ./cmd/zippy' first.")
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	var results []BenchmarkResult
	total := countConfigs(cfg.Groups, *group)
	current := 0

	for _, g := range cfg.Groups {
		if *group != "" && g.Name != *group {
			continue
		}

		fmt.Printf("\n=== Group: %s (%s) ===\n", g.Name, g.Description)
		fmt.Printf("Dictionaries: %s\n", g.Dictionaries)

		for _, c := range g.Configs {
			current++
			fmt.Printf("\n[%d/%d] Running: %s\n", current, total, c.Name)

			var durations []int64
			var last BenchmarkResult

			for i := 0; i < *iterations; i++ {
				if *iterations > 1 {
					fmt.Printf("  Iteration %d/%d...", i+1, *iterations)
				}

				result, err := runBenchmark(zippyPath, g, c)
				if err != nil {
					fmt.Printf(" ERROR: %v\n", err)
					continue
				}
				durations = append(durations, result.DurationMs)
				last = result

				if *iterations > 1 {
					fmt.Printf(" %dms\n", result.DurationMs)
				} else {
					fmt.Printf("  Duration: %dms, Documents: %d, Words: %d, Files: %d\n",
						result.DurationMs, result.Documents, result.Words, result.Files)
				}
			}

			if len(durations) > 0 {
				if *iterations > 1 {
					var sum int64
					for _, d := range durations {
						sum += d
					}
					last.DurationMs = sum / int64(len(durations))
					fmt.Printf("  Average: %dms\n", last.DurationMs)
				}
				results = append(results, last)
			}
		}
	}

	resultsFile := filepath.Join(*outputDir, fmt.Sprintf("benchmark_%s.json",
		time.Now().Format("2006-01-02_15-04-05")))

	output := map[string]interface{}{
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"iterations": *iterations,
		"results":    results,
	}
	data, _ = json.MarshalIndent(output, "", "  ")
	if err := os.WriteFile(resultsFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
	} else {
		fmt.Printf("\nResults written to: %s\n", resultsFile)
	}

	printSummary(results)
}

func findZippy() string {
	for _, c := range []string{"zippy", "zippy.exe", "../zippy"} {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	if path, err := exec.LookPath("zippy"); err == nil {
		return path
	}
	return ""
}

func countConfigs(groups []Group, filter string) int {
	count := 0
	for _, g := range groups {
		if filter != "" && g.Name != filter {
			continue
		}
		count += len(g.Configs)
	}
	return count
}

// runBenchmark writes wordlists into a scratch dir so runs do not see each
// other's output.
func runBenchmark(zippyPath string, g Group, c Config) (BenchmarkResult, error) {
	scratch, err := os.MkdirTemp("", "zippy-bench-*")
	if err != nil {
		return BenchmarkResult{}, err
	}
	defer os.RemoveAll(scratch)

	args := []string{
		"all",
		"--benchmark",
		"--dictionaries", g.Dictionaries,
		"--output", scratch,
		"--workers", fmt.Sprintf("%d", c.Workers),
		fmt.Sprintf("--parallel=%t", c.Parallel),
	}
	args = append(args, g.Extra...)

	cmd := exec.Command(zippyPath, args...)
	out, err := cmd.Output()
	// zippy exits 1 when a document fails but still prints its report.
	if err != nil && len(out) == 0 {
		return BenchmarkResult{}, fmt.Errorf("command failed: %w", err)
	}

	var r report
	line := lastLine(out)
	if err := json.Unmarshal([]byte(line), &r); err != nil {
		return BenchmarkResult{}, fmt.Errorf("failed to parse output: %w (output: %s)", err, line)
	}

	return BenchmarkResult{
		ConfigID:   c.ID,
		Group:      g.Name,
		DurationMs: r.DurationMs,
		Throughput: r.Throughput,
		Words:      r.Words,
		Files:      r.Files,
		Documents:  r.Documents,
		Failed:     r.Failed,
		Parallel:   r.Parallel,
		Workers:    r.Workers,
	}, nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return lines[len(lines)-1]
}

func printSummary(results []BenchmarkResult) {
	if len(results) == 0 {
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("%-30s %10s %10s %8s\n", "Config", "Duration", "Words", "Speedup")
	fmt.Println(strings.Repeat("-", 70))

	var order []string
	groups := make(map[string][]BenchmarkResult)
	for _, r := range results {
		if _, ok := groups[r.Group]; !ok {
			order = append(order, r.Group)
		}
		groups[r.Group] = append(groups[r.Group], r)
	}

	for _, name := range order {
		groupResults := groups[name]
		fmt.Printf("\n[%s]\n", name)

		// Sequential run is the baseline.
		var baseline int64
		for _, r := range groupResults {
			if !r.Parallel {
				baseline = r.DurationMs
				break
			}
		}

		for _, r := range groupResults {
			speedup := "-"
			if baseline > 0 && r.DurationMs > 0 {
				speedup = fmt.Sprintf("%.2fx", float64(baseline)/float64(r.DurationMs))
			}
			id := r.ConfigID
			if len(id) > 30 {
				id = id[:27] + "..."
			}
			fmt.Printf("%-30s %8dms %10d %8s\n", id, r.DurationMs, r.Words, speedup)
		}
	}

	fmt.Println(strings.Repeat("=", 70))
}
