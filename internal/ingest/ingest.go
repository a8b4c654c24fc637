// Package ingest finds dictionary files on disk, unpacks them and hands
// their content to the pipeline as documents.
package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zippy/internal/corpus"
	"zippy/internal/pipeline"
	"zippy/internal/stardict"
)

var (
	// ErrUnsupportedFormat is returned for files with no supported extension.
	ErrUnsupportedFormat = errors.New("unsupported dictionary format")
	// ErrNoDictionary is returned when an archive holds no dictionary file.
	ErrNoDictionary = errors.New("no dictionary found in archive")
	// ErrNotFound is returned when a dictionary file or directory is missing.
	ErrNotFound = errors.New("dictionary not found")
)

// SupportedExtensions lists the file suffixes Discover and Load accept.
var SupportedExtensions = []string{
	".dict.dz",
	".dictd.tar.xz",
	".src.tar.xz",
	".stardict.tar.xz",
}

// IsSupported reports whether name ends in a supported extension.
func IsSupported(name string) bool {
	for _, ext := range SupportedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Source describes one dictionary file and where its wordlists go.
type Source struct {
	Path           string
	Name           string
	SourceLanguage string
	TargetLanguage string
	SourceFile     string
	TargetFile     string
}

// NewSource derives languages and output filenames from path.
func NewSource(path string) Source {
	name := filepath.Base(path)
	src, tgt := Languages(name)
	tgtFile, srcFile := Filenames(name)
	return Source{
		Path:           path,
		Name:           name,
		SourceLanguage: src,
		TargetLanguage: tgt,
		SourceFile:     srcFile,
		TargetFile:     tgtFile,
	}
}

// Discover returns the supported files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionaries dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && IsSupported(e.Name()) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads path into a pipeline document. Archives are unpacked into a
// temporary directory that is removed before Load returns.
func Load(path string) (pipeline.Document, error) {
	name := filepath.Base(path)
	if !IsSupported(name) {
		return pipeline.Document{}, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return pipeline.Document{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}

	if strings.HasSuffix(name, ".dict.dz") {
		return loadText(name, path)
	}

	tmp, err := os.MkdirTemp("", "zippy-")
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := Unpack(path, tmp); err != nil {
		return pipeline.Document{}, err
	}
	found, err := Locate(tmp)
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("%s: %w", name, err)
	}

	switch found.Packaging {
	case corpus.BinaryIndex:
		return loadStarDict(name, found.StarDictBase())
	case corpus.Markup:
		data, err := os.ReadFile(found.Path)
		if err != nil {
			return pipeline.Document{}, fmt.Errorf("failed to read markup: %w", err)
		}
		return pipeline.Document{Name: name, Packaging: corpus.Markup, Markup: data}, nil
	default:
		return loadText(name, found.Path)
	}
}

// loadText reads a (dict)zipped line-oriented dictionary.
func loadText(name, path string) (pipeline.Document, error) {
	data, err := readGzip(path)
	if err != nil {
		return pipeline.Document{}, err
	}
	lines, err := corpus.FromReader(bytes.NewReader(data))
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return pipeline.Document{
		Name:      name,
		Packaging: corpus.Text,
		Lines:     lines,
		DZ:        strings.HasSuffix(path, ".dict.dz"),
	}, nil
}

// loadStarDict reads base.ifo, base.idx.gz and base.dict.dz.
func loadStarDict(name, base string) (pipeline.Document, error) {
	ifo, err := os.Open(base + ".ifo")
	if err != nil {
		return pipeline.Document{}, fmt.Errorf("failed to open ifo: %w", err)
	}
	info, err := stardict.ParseInfo(ifo)
	ifo.Close()
	if err != nil {
		return pipeline.Document{}, err
	}

	index, err := readGzip(base + ".idx.gz")
	if err != nil {
		return pipeline.Document{}, err
	}
	data, err := readGzip(base + ".dict.dz")
	if err != nil {
		return pipeline.Document{}, err
	}
	return pipeline.Document{
		Name:      name,
		Packaging: corpus.BinaryIndex,
		Index:     index,
		Data:      data,
		Info:      &info,
	}, nil
}
