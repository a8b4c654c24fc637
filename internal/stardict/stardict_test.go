package stardict

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	word   string
	offset uint32
	size   uint32
}

func buildIndex(records ...record) []byte {
	var buf []byte
	for _, r := range records {
		buf = append(buf, r.word...)
		buf = append(buf, 0)
		buf = binary.BigEndian.AppendUint32(buf, r.offset)
		buf = binary.BigEndian.AppendUint32(buf, r.size)
	}
	return buf
}

func TestParseResolvesEntries(t *testing.T) {
	data := []byte("househomewater")
	index := buildIndex(
		record{"casa", 0, 5},
		record{"hogar", 5, 4},
		record{"agua", 9, 5},
	)

	d := Parse(index, data, DefaultOptions())
	require.Len(t, d.Entries, 3)
	assert.Equal(t, "house", string(d.Definition(d.Entries[0])))
	assert.Equal(t, "home", string(d.Definition(d.Entries[1])))
	assert.Equal(t, "water", string(d.Definition(d.Entries[2])))
	assert.Zero(t, d.Skipped)
	assert.False(t, d.Truncated)
	assert.Empty(t, d.Recovered)
	assert.Equal(t, []string{"casa", "hogar", "agua"}, d.Headwords())
}

func TestParseClampsOverlongSize(t *testing.T) {
	data := []byte("house")
	d := Parse(buildIndex(record{"casa", 2, 100}), data, DefaultOptions())

	require.Len(t, d.Entries, 1)
	assert.Equal(t, uint32(3), d.Entries[0].Size)
	assert.Equal(t, "use", string(d.Definition(d.Entries[0])))
	assert.Equal(t, 1, d.Clamped)
}

func TestParseSkipsOutOfBoundsAndRecovers(t *testing.T) {
	data := []byte("house")
	index := buildIndex(
		record{"casa", 0, 5},
		record{"perro", 5, 3},
		record{"gato", 900, 3},
	)

	d := Parse(index, data, DefaultOptions())
	require.Len(t, d.Entries, 1)
	assert.Equal(t, "casa", d.Entries[0].Word)
	assert.Equal(t, 2, d.Skipped)

	// 40 index bytes suggest 3 records; only 1 resolved.
	assert.Equal(t, []string{"perro", "gato"}, d.Recovered)
	assert.Equal(t, []string{"casa", "perro", "gato"}, d.Headwords())
}

func TestRecoveryDivisorIsConfigurable(t *testing.T) {
	data := []byte("house")
	index := buildIndex(record{"casa", 0, 5}, record{"gato", 900, 3})

	opts := DefaultOptions()
	opts.RecoveryDivisor = 1000
	d := Parse(index, data, opts)
	assert.Empty(t, d.Recovered)
	assert.Equal(t, []string{"casa"}, d.Headwords())

	opts.RecoveryDivisor = 0
	d = Parse(index, data, opts)
	assert.Equal(t, []string{"gato"}, d.Recovered)
}

func TestRecoveryDropsInvalidHeadwords(t *testing.T) {
	index := buildIndex(
		record{"ab", 50, 1},
		record{"USB", 50, 1},
		record{"(gato)", 50, 1},
		record{"a+b+c+d", 50, 1},
	)

	d := Parse(index, nil, DefaultOptions())
	assert.Empty(t, d.Entries)
	assert.Equal(t, []string{"gato"}, d.Recovered)
}

func TestParseTruncatedTrailingRecord(t *testing.T) {
	data := []byte("househome")
	index := buildIndex(record{"casa", 0, 5}, record{"hogar", 5, 4})
	index = append(index, "agua\x00\x00\x00"...)

	d := Parse(index, data, DefaultOptions())
	assert.True(t, d.Truncated)
	assert.Len(t, d.Entries, 2)
	assert.Equal(t, []string{"casa", "hogar"}, d.Headwords())
}

func TestParseMissingTerminator(t *testing.T) {
	d := Parse([]byte("casa"), []byte("x"), DefaultOptions())
	assert.Empty(t, d.Entries)
	assert.False(t, d.Truncated)
	assert.Empty(t, d.Headwords())
}

func TestParseInvalidUTF8Replaced(t *testing.T) {
	index := buildIndex(record{"ca\xffsa", 0, 1})
	d := Parse(index, []byte("x"), DefaultOptions())

	require.Len(t, d.Entries, 1)
	assert.Equal(t, "ca�sa", d.Entries[0].Word)
}

func TestParse64BitOffsets(t *testing.T) {
	var index []byte
	index = append(index, "casa\x00"...)
	index = binary.BigEndian.AppendUint64(index, 2)
	index = binary.BigEndian.AppendUint32(index, 3)

	opts := DefaultOptions()
	opts.OffsetBits = 64
	d := Parse(index, []byte("house"), opts)

	require.Len(t, d.Entries, 1)
	assert.Equal(t, "use", string(d.Definition(d.Entries[0])))
}

func TestParseInfo(t *testing.T) {
	ifo := strings.Join([]string{
		"StarDict's dict ifo file",
		"version=3.0.0",
		"bookname=Spanish-English FreeDict Dictionary",
		"wordcount=4500",
		"idxfilesize=81000",
		"idxoffsetbits=64",
		"sametypesequence=h",
		"website=https://freedict.org",
	}, "\n")

	info, err := ParseInfo(strings.NewReader(ifo))
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", info.Version)
	assert.Equal(t, "Spanish-English FreeDict Dictionary", info.BookName)
	assert.Equal(t, 4500, info.WordCount)
	assert.Equal(t, 81000, info.IdxFileSize)
	assert.Equal(t, "h", info.SameTypeSeq)
	assert.Equal(t, "https://freedict.org", info.Fields["website"])
	assert.Equal(t, 64, info.Options().OffsetBits)
}

func TestParseInfoErrors(t *testing.T) {
	tests := []struct {
		name string
		ifo  string
	}{
		{"bad count", "wordcount=many"},
		{"bad bits", "idxoffsetbits=16"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInfo(strings.NewReader(tt.ifo))
			assert.Error(t, err)
		})
	}

	info, err := ParseInfo(strings.NewReader("bookname=x\nnot a pair\n"))
	require.NoError(t, err)
	assert.Equal(t, 32, info.IdxOffsetBits)
}
