package stardict

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const ifoMagic = "StarDict's dict ifo file"

// Info is the metadata of a StarDict .ifo file.
type Info struct {
	Version       string
	BookName      string
	WordCount     int
	IdxFileSize   int
	IdxOffsetBits int
	SameTypeSeq   string
	Fields        map[string]string
}

// ParseInfo reads key=value lines. The magic first line is optional;
// unknown keys are kept in Fields.
func ParseInfo(r io.Reader) (Info, error) {
	info := Info{IdxOffsetBits: 32, Fields: map[string]string{}}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == ifoMagic {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		info.Fields[key] = value

		var err error
		switch key {
		case "version":
			info.Version = value
		case "bookname":
			info.BookName = value
		case "wordcount":
			info.WordCount, err = strconv.Atoi(value)
		case "idxfilesize":
			info.IdxFileSize, err = strconv.Atoi(value)
		case "idxoffsetbits":
			info.IdxOffsetBits, err = strconv.Atoi(value)
		case "sametypesequence":
			info.SameTypeSeq = value
		}
		if err != nil {
			return info, fmt.Errorf("ifo %s: %w", key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return info, fmt.Errorf("read ifo: %w", err)
	}
	if info.IdxOffsetBits != 32 && info.IdxOffsetBits != 64 {
		return info, fmt.Errorf("ifo idxoffsetbits: unsupported value %d", info.IdxOffsetBits)
	}
	return info, nil
}

// Options returns DefaultOptions adjusted to the offset width in info.
func (i Info) Options() Options {
	opts := DefaultOptions()
	opts.OffsetBits = i.IdxOffsetBits
	return opts
}
