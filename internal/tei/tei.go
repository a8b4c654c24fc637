// Package tei extracts headwords and translations from TEI dictionary
// markup. Element names are matched by local name so any namespace works.
package tei

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"zippy/internal/normalizer"
)

// Entries holds the raw text of orth and quote elements found inside
// entry elements, in document order.
type Entries struct {
	Count  int
	Orths  []string
	Quotes []string
}

// Parse reads a whole TEI document. Only the text directly inside an
// element, before its first child, is taken. A malformed document returns
// an error and no entries.
func Parse(r io.Reader) (*Entries, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = passthroughCharset

	out := &Entries{}
	entryDepth := 0
	var field *[]string
	var text strings.Builder

	flush := func() {
		if field != nil {
			*field = append(*field, text.String())
			field = nil
		}
		text.Reset()
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse tei: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			flush()
			switch t.Name.Local {
			case "entry":
				if entryDepth == 0 {
					out.Count++
				}
				entryDepth++
			case "orth":
				if entryDepth > 0 {
					field = &out.Orths
				}
			case "quote":
				if entryDepth > 0 {
					field = &out.Quotes
				}
			}
		case xml.EndElement:
			flush()
			if t.Name.Local == "entry" && entryDepth > 0 {
				entryDepth--
			}
		case xml.CharData:
			if field != nil {
				text.Write(t)
			}
		}
	}
	return out, nil
}

// passthroughCharset accepts documents that declare a non-UTF-8 encoding.
// Bytes are read unchanged; invalid sequences surface later as U+FFFD.
func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// Headwords returns trimmed orth texts that pass normalizer.IsValid.
func (e *Entries) Headwords() []string {
	var words []string
	for _, s := range e.Orths {
		if w := strings.TrimSpace(s); normalizer.IsValid(w) {
			words = append(words, w)
		}
	}
	return words
}

// Translations returns trimmed quote texts made only of letters.
func (e *Entries) Translations() []string {
	var words []string
	for _, s := range e.Quotes {
		if w := strings.TrimSpace(s); normalizer.IsAlpha(w) {
			words = append(words, w)
		}
	}
	return words
}
