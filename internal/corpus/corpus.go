// Package corpus turns raw dictionary bytes into an immutable, 0-indexed
// sequence of lines. Undecodable bytes are replaced, never rejected.
package corpus

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Packaging tells the pipeline how a document is stored on disk.
type Packaging int

const (
	// Text is a line-oriented dictionary (.dict / .dict.dz).
	Text Packaging = iota
	// BinaryIndex is a StarDict index/blob pair.
	BinaryIndex
	// Markup is a TEI XML document.
	Markup
)

// String returns the packaging name used in logs.
func (p Packaging) String() string {
	switch p {
	case Text:
		return "text"
	case BinaryIndex:
		return "stardict"
	case Markup:
		return "tei"
	default:
		return "unknown"
	}
}

// Corpus is the ordered line sequence of one dictionary document.
// Callers must treat it as read-only.
type Corpus []string

// Len returns the number of lines.
func (c Corpus) Len() int {
	return len(c)
}

// Line returns the line at index i with surrounding whitespace trimmed,
// or "" when i is out of range.
func (c Corpus) Line(i int) string {
	if i < 0 || i >= len(c) {
		return ""
	}
	return strings.TrimSpace(c[i])
}

// Head returns at most n leading lines.
func (c Corpus) Head(n int) Corpus {
	if n < 0 || n >= len(c) {
		return c
	}
	return c[:n]
}

// decoder replaces invalid UTF-8 with U+FFFD and drops a leading BOM.
func decoder() transform.Transformer {
	return transform.Chain(unicode.BOMOverride(unicode.UTF8.NewDecoder()), norm.NFC)
}

// FromReader reads the whole document and splits it into lines.
// Both "\n" and "\r\n" terminators are accepted.
func FromReader(r io.Reader) (Corpus, error) {
	data, err := io.ReadAll(transform.NewReader(r, decoder()))
	if err != nil {
		return nil, err
	}
	return split(string(data)), nil
}

// FromBytes is FromReader over an in-memory buffer.
func FromBytes(data []byte) Corpus {
	c, err := FromReader(bytes.NewReader(data))
	if err != nil {
		// the decoder replaces instead of failing; keep the raw text as a last resort
		return split(strings.ToValidUTF8(string(data), "�"))
	}
	return c
}

// DecodeString decodes a byte slice, replacing invalid sequences.
func DecodeString(b []byte) string {
	s, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(s)
}

func split(s string) Corpus {
	if s == "" {
		return Corpus{}
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return Corpus(lines)
}
