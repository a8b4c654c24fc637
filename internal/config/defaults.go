// Package config provides centralized configuration defaults for zippy.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigFile represents the structure of config.toml / config.yaml
type ConfigFile struct {
	Defaults Defaults `toml:"defaults" yaml:"defaults"`
	// Path is the file the config was read from, empty for fallbacks.
	Path string `toml:"-" yaml:"-"`
}

// Defaults holds all default values
type Defaults struct {
	DictionariesDir string   `toml:"dictionaries_dir" yaml:"dictionaries_dir"`
	WordlistsDir    string   `toml:"wordlists_dir" yaml:"wordlists_dir"`
	POSInclude      []string `toml:"pos_include" yaml:"pos_include"`
	SkipPlurals     bool     `toml:"skip_plurals" yaml:"skip_plurals"`
	SampleSize      int      `toml:"sample_size" yaml:"sample_size"`
	RecoveryDivisor int      `toml:"recovery_divisor" yaml:"recovery_divisor"`
	Parallel        bool     `toml:"parallel" yaml:"parallel"`
	Workers         int      `toml:"workers" yaml:"workers"`
	Metrics         bool     `toml:"metrics" yaml:"metrics"`
	Quiet           bool     `toml:"quiet" yaml:"quiet"`
	Verbose         int      `toml:"verbose" yaml:"verbose"`
}

// Hardcoded fallback defaults (used if no config file is found)
var fallbackDefaults = Defaults{
	DictionariesDir: "dictionaries",
	WordlistsDir:    "wordlists",
	POSInclude:      []string{"n", "adj", "adv", "v"},
	SkipPlurals:     true,
	SampleSize:      500,
	RecoveryDivisor: 12,
	Parallel:        true,
	Workers:         0,
	Metrics:         true,
	Quiet:           false,
	Verbose:         0,
}

// Fallback returns a copy of the hardcoded defaults.
func Fallback() Defaults {
	d := fallbackDefaults
	d.POSInclude = append([]string(nil), fallbackDefaults.POSInclude...)
	return d
}

// candidateNames are tried in order in every candidate directory.
var candidateNames = []string{"config.toml", "config.yaml", "config.yml"}

// loaded holds the parsed config (nil if not loaded yet)
var loaded *ConfigFile

// Load finds the first config file near the working directory or the
// executable, falling back to the hardcoded defaults.
func Load() *ConfigFile {
	if loaded != nil {
		return loaded
	}

	dirs := []string{".", "..", filepath.Join("..", "..")}
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		dirs = append(dirs, dir, filepath.Join(dir, ".."), filepath.Join(dir, "..", ".."))
	}

	for _, dir := range dirs {
		for _, name := range candidateNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if cfg, err := LoadFile(path); err == nil {
				loaded = cfg
				return loaded
			}
		}
	}

	loaded = &ConfigFile{Defaults: Fallback()}
	return loaded
}

// LoadFile decodes one config file, TOML or YAML by extension. Keys absent
// from the file keep their fallback values.
func LoadFile(path string) (*ConfigFile, error) {
	cfg := &ConfigFile{Defaults: Fallback(), Path: path}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}
	return cfg, nil
}

// MaxWorkers is the cap for parallel workers
const MaxWorkers = 8

// ResolveWorkers turns a requested worker count into the count to use:
// 1 when parallel is off, NumCPU when requested <= 0, never above MaxWorkers.
func ResolveWorkers(parallel bool, requested int) int {
	if !parallel {
		return 1
	}
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if requested > MaxWorkers {
		requested = MaxWorkers
	}
	return requested
}
