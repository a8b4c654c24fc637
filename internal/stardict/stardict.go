// Package stardict reads StarDict index/data pairs: null-terminated
// headwords followed by big-endian offset and size records pointing into
// the decompressed dictionary blob.
package stardict

import (
	"bytes"
	"encoding/binary"

	"github.com/rs/zerolog"

	"zippy/internal/corpus"
	"zippy/internal/normalizer"
)

// DefaultRecoveryDivisor estimates the record count of an index as its
// byte length divided by this value (a short word plus 8 bytes of record).
const DefaultRecoveryDivisor = 12

// Entry is one index record whose offset lies inside the data blob.
type Entry struct {
	Word   string
	Offset uint64
	Size   uint32
}

// Options tunes Parse.
type Options struct {
	// OffsetBits is 32 or 64, from the .ifo idxoffsetbits key.
	OffsetBits int
	// RecoveryDivisor triggers the headword recovery pass when fewer
	// entries than consumed/RecoveryDivisor were resolved.
	RecoveryDivisor int
	Logger          zerolog.Logger
}

// DefaultOptions returns 32-bit offsets and the default divisor.
func DefaultOptions() Options {
	return Options{
		OffsetBits:      32,
		RecoveryDivisor: DefaultRecoveryDivisor,
		Logger:          zerolog.Nop(),
	}
}

// Dictionary is the parsed form of one index/data pair.
type Dictionary struct {
	Entries []Entry
	// Recovered holds valid headwords that only the recovery pass found.
	Recovered []string
	// Skipped counts records whose offset was outside the data blob.
	Skipped int
	// Clamped counts records whose size overran the blob.
	Clamped int
	// Truncated is set when the index ended inside a record.
	Truncated bool

	data []byte
}

// Parse walks index sequentially. It never fails: out-of-bounds offsets are
// skipped, overlong sizes are clamped and a truncated trailing record ends
// the scan without discarding what was already parsed.
func Parse(index, data []byte, opts Options) *Dictionary {
	if opts.RecoveryDivisor <= 0 {
		opts.RecoveryDivisor = DefaultRecoveryDivisor
	}
	offsetSize := 4
	if opts.OffsetBits == 64 {
		offsetSize = 8
	}
	recordSize := offsetSize + 4

	d := &Dictionary{data: data}
	pos := 0
	for pos < len(index) {
		end := bytes.IndexByte(index[pos:], 0)
		if end < 0 {
			break
		}
		word := corpus.DecodeString(index[pos : pos+end])
		pos += end + 1

		if pos+recordSize > len(index) {
			d.Truncated = true
			break
		}
		var offset uint64
		if offsetSize == 8 {
			offset = binary.BigEndian.Uint64(index[pos:])
		} else {
			offset = uint64(binary.BigEndian.Uint32(index[pos:]))
		}
		size := binary.BigEndian.Uint32(index[pos+offsetSize:])
		pos += recordSize

		if offset >= uint64(len(data)) {
			d.Skipped++
			continue
		}
		if remaining := uint64(len(data)) - offset; uint64(size) > remaining {
			size = uint32(remaining)
			d.Clamped++
		}
		d.Entries = append(d.Entries, Entry{Word: word, Offset: offset, Size: size})
	}

	log := opts.Logger
	if len(d.Entries) < pos/opts.RecoveryDivisor {
		d.Recovered = d.recover(index, recordSize)
		log.Debug().
			Int("entries", len(d.Entries)).
			Int("estimate", pos/opts.RecoveryDivisor).
			Int("recovered", len(d.Recovered)).
			Msg("stardict recovery pass")
	}
	if d.Skipped > 0 || d.Truncated {
		log.Debug().
			Int("skipped", d.Skipped).
			Int("clamped", d.Clamped).
			Bool("truncated", d.Truncated).
			Msg("stardict index irregularities")
	}
	return d
}

// recover re-walks the index reading only headwords, keeping valid ones
// that no resolved entry carries.
func (d *Dictionary) recover(index []byte, recordSize int) []string {
	known := make(map[string]bool, len(d.Entries))
	for _, e := range d.Entries {
		known[e.Word] = true
	}

	var words []string
	pos := 0
	for pos < len(index) {
		end := bytes.IndexByte(index[pos:], 0)
		if end < 0 {
			break
		}
		word := corpus.DecodeString(index[pos : pos+end])
		pos += end + 1
		if pos+recordSize > len(index) {
			break
		}
		pos += recordSize

		if known[word] {
			continue
		}
		if clean := normalizer.Clean(word); normalizer.IsValid(clean) {
			words = append(words, clean)
		}
	}
	return words
}

// Definition returns the data bytes of e.
func (d *Dictionary) Definition(e Entry) []byte {
	return d.data[e.Offset : e.Offset+uint64(e.Size)]
}

// Headwords returns the valid cleaned headwords of resolved entries
// followed by the recovered ones. Duplicates are kept.
func (d *Dictionary) Headwords() []string {
	words := make([]string, 0, len(d.Entries)+len(d.Recovered))
	for _, e := range d.Entries {
		if clean := normalizer.Clean(e.Word); normalizer.IsValid(clean) {
			words = append(words, clean)
		}
	}
	return append(words, d.Recovered...)
}
