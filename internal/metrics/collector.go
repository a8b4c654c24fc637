// Package metrics collects per-run stage timings and document counters and
// keeps a JSON history of runs.
package metrics

import (
	"crypto/rand"
	"encoding/hex"
	"runtime"
	"sort"
	"sync"
	"time"
)

// Stage names used by the zippy CLI.
const (
	StageDiscover = "discover"
	StageExtract  = "extract"
	StageWrite    = "write"
)

// StageMetrics holds metrics for a single processing stage.
type StageMetrics struct {
	Name       string             `json:"name"`
	StartTime  time.Time          `json:"start_time"`
	EndTime    time.Time          `json:"end_time"`
	DurationMs int64              `json:"duration_ms"`
	Counters   map[string]int64   `json:"counters,omitempty"`
	Gauges     map[string]float64 `json:"gauges,omitempty"`
}

// DocumentMetrics records the outcome of one dictionary file.
type DocumentMetrics struct {
	Name        string `json:"name"`
	Packaging   string `json:"packaging"`
	Layout      string `json:"layout,omitempty"`
	SourceWords int    `json:"source_words"`
	TargetWords int    `json:"target_words"`
	Recovered   int    `json:"recovered,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
}

// RunMetrics holds all metrics for a complete run.
type RunMetrics struct {
	RunID       string                   `json:"run_id"`
	Timestamp   time.Time                `json:"timestamp"`
	Config      map[string]interface{}   `json:"config"`
	Stages      map[string]*StageMetrics `json:"stages"`
	Documents   []DocumentMetrics        `json:"documents"`
	Totals      *TotalMetrics            `json:"totals"`
	Environment *EnvironmentInfo         `json:"environment"`
}

// TotalMetrics holds aggregate metrics.
type TotalMetrics struct {
	DurationMs   int64          `json:"duration_ms"`
	PeakMemoryMB float64        `json:"peak_memory_mb"`
	Documents    int            `json:"documents"`
	Failed       int            `json:"failed"`
	ByLayout     map[string]int `json:"by_layout"`
	Recovered    int            `json:"recovered"`
	WordsWritten int64          `json:"words_written"`
	FilesWritten int            `json:"files_written"`
	Throughput   float64        `json:"throughput_words_per_sec"`
}

// EnvironmentInfo holds system environment details.
type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	GOOS      string `json:"goos"`
	GOARCH    string `json:"goarch"`
	NumCPU    int    `json:"num_cpu"`
	MaxProcs  int    `json:"max_procs"`
}

// Collector collects metrics during execution. It is safe for concurrent
// use.
type Collector struct {
	mu          sync.Mutex
	runID       string
	startTime   time.Time
	config      map[string]interface{}
	stages      map[string]*StageMetrics
	activeStage string
	documents   []DocumentMetrics
	peakMemory  uint64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		runID:     generateRunID(),
		startTime: time.Now(),
		config:    make(map[string]interface{}),
		stages:    make(map[string]*StageMetrics),
	}
}

// generateRunID creates a unique run identifier.
func generateRunID() string {
	timestamp := time.Now().Format("20060102-150405")
	bytes := make([]byte, 4)
	rand.Read(bytes)
	return timestamp + "-" + hex.EncodeToString(bytes)
}

// SetConfigMap stores configuration values for the run.
func (c *Collector) SetConfigMap(config map[string]interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range config {
		c.config[k] = v
	}
}

// StartStage begins timing a new processing stage.
func (c *Collector) StartStage(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeStage = name
	c.stages[name] = &StageMetrics{
		Name:      name,
		StartTime: time.Now(),
		Counters:  make(map[string]int64),
		Gauges:    make(map[string]float64),
	}
	c.updatePeakMemory()
}

// EndStage completes timing for the named stage.
func (c *Collector) EndStage(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stage, ok := c.stages[name]; ok {
		stage.EndTime = time.Now()
		stage.DurationMs = stage.EndTime.Sub(stage.StartTime).Milliseconds()
	}
	if c.activeStage == name {
		c.activeStage = ""
	}
	c.updatePeakMemory()
}

// IncrementCounter increments a counter for the active stage.
func (c *Collector) IncrementCounter(name string, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stage, ok := c.stages[c.activeStage]; ok {
		stage.Counters[name] += delta
	}
}

// SetCounter sets a counter value for the active stage.
func (c *Collector) SetCounter(name string, value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stage, ok := c.stages[c.activeStage]; ok {
		stage.Counters[name] = value
	}
}

// SetStageGauge sets a gauge for a specific stage.
func (c *Collector) SetStageGauge(stage, name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.stages[stage]; ok {
		s.Gauges[name] = value
	}
}

// RecordDocument stores the outcome of one document and bumps the active
// stage's counters: documents, failed, layout.<name>, recovered and the
// source/target word counts.
func (c *Collector) RecordDocument(d DocumentMetrics) {
	c.mu.Lock()
	c.documents = append(c.documents, d)
	c.mu.Unlock()

	c.IncrementCounter("documents", 1)
	if d.Error != "" {
		c.IncrementCounter("failed", 1)
		return
	}
	if d.Layout != "" {
		c.IncrementCounter("layout."+d.Layout, 1)
	}
	if d.Recovered > 0 {
		c.IncrementCounter("recovered", int64(d.Recovered))
	}
	c.IncrementCounter("source_words", int64(d.SourceWords))
	c.IncrementCounter("target_words", int64(d.TargetWords))
}

// SetStageRate records n per second of the stage's duration as the gauge
// name. Stages that have not ended, or ended instantly, are left alone.
func (c *Collector) SetStageRate(stage, name string, n int) {
	d := c.StageDuration(stage)
	if d <= 0 {
		return
	}
	c.SetStageGauge(stage, name, float64(n)/d.Seconds())
}

// updatePeakMemory tracks the maximum memory usage. Callers hold mu.
func (c *Collector) updatePeakMemory() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	if m.Alloc > c.peakMemory {
		c.peakMemory = m.Alloc
	}
}

// Finalize creates the final RunMetrics report.
func (c *Collector) Finalize(wordsWritten int64, filesWritten int) *RunMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updatePeakMemory()
	totalDuration := time.Since(c.startTime)

	throughput := float64(0)
	if totalDuration.Seconds() > 0 {
		throughput = float64(wordsWritten) / totalDuration.Seconds()
	}

	docs := append([]DocumentMetrics(nil), c.documents...)
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })

	totals := &TotalMetrics{
		DurationMs:   totalDuration.Milliseconds(),
		PeakMemoryMB: float64(c.peakMemory) / 1024 / 1024,
		Documents:    len(docs),
		ByLayout:     make(map[string]int),
		WordsWritten: wordsWritten,
		FilesWritten: filesWritten,
		Throughput:   throughput,
	}
	for _, d := range docs {
		if d.Error != "" {
			totals.Failed++
			continue
		}
		if d.Layout != "" {
			totals.ByLayout[d.Layout]++
		}
		totals.Recovered += d.Recovered
	}

	return &RunMetrics{
		RunID:     c.runID,
		Timestamp: c.startTime,
		Config:    c.config,
		Stages:    c.stages,
		Documents: docs,
		Totals:    totals,
		Environment: &EnvironmentInfo{
			GoVersion: runtime.Version(),
			GOOS:      runtime.GOOS,
			GOARCH:    runtime.GOARCH,
			NumCPU:    runtime.NumCPU(),
			MaxProcs:  runtime.GOMAXPROCS(0),
		},
	}
}

// RunID returns the run identifier.
func (c *Collector) RunID() string {
	return c.runID
}

// StageDuration returns the duration of a completed stage.
func (c *Collector) StageDuration(name string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stage, ok := c.stages[name]; ok && !stage.EndTime.IsZero() {
		return stage.EndTime.Sub(stage.StartTime)
	}
	return 0
}
