package ingest

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz"

	"zippy/internal/corpus"
)

// Unpack extracts a .tar.xz archive into dir. Only regular files and
// directories are written; entries escaping dir are rejected.
func Unpack(archivePath, dir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to read xz stream: %w", err)
	}

	root := filepath.Clean(dir) + string(os.PathSeparator)
	tr := tar.NewReader(xr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		target := filepath.Join(dir, hdr.Name)
		if !strings.HasPrefix(target+string(os.PathSeparator), root) {
			return fmt.Errorf("archive entry %q escapes destination", hdr.Name)
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr); err != nil {
				return err
			}
		}
	}
}

func writeEntry(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", filepath.Base(path), err)
	}
	return out.Close()
}

// Found is the dictionary located inside an unpacked archive.
type Found struct {
	Packaging corpus.Packaging
	// Path is the .dict.dz or .tei file. For StarDict it is the .dict.dz
	// next to its .idx.gz and .ifo.
	Path string
}

// StarDictBase returns the path of f without its .dict.dz suffix.
func (f Found) StarDictBase() string {
	return strings.TrimSuffix(f.Path, ".dict.dz")
}

// Locate walks dir in lexical order and returns the first .dict.dz or .tei
// file. A .dict.dz with sibling .idx.gz and .ifo files is StarDict.
func Locate(dir string) (Found, error) {
	var found Found
	errFound := errors.New("found")

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case strings.HasSuffix(path, ".dict.dz"):
			found = Found{Packaging: corpus.Text, Path: path}
			base := strings.TrimSuffix(path, ".dict.dz")
			if exists(base+".idx.gz") && exists(base+".ifo") {
				found.Packaging = corpus.BinaryIndex
			}
			return errFound
		case strings.HasSuffix(path, ".tei"):
			found = Found{Packaging: corpus.Markup, Path: path}
			return errFound
		}
		return nil
	})
	if errors.Is(err, errFound) {
		return found, nil
	}
	if err != nil {
		return Found{}, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return Found{}, ErrNoDictionary
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// readGzip returns the decompressed content of a gzip or dictzip file.
// Files that are not gzip at all are returned as stored.
func readGzip(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if errors.Is(err, gzip.ErrHeader) {
		return os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", filepath.Base(path), err)
	}
	return data, nil
}
