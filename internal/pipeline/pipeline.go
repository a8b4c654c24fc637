// Package pipeline runs one dictionary document from its packaged form to
// two raw word lists. It branches on the packaging: text documents go
// through layout detection and a strategy, StarDict pairs through the
// binary index parser, TEI through the markup extractor.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"zippy/internal/corpus"
	"zippy/internal/extract"
	"zippy/internal/layout"
	"zippy/internal/pos"
	"zippy/internal/script"
	"zippy/internal/stardict"
	"zippy/internal/tei"
)

// ErrUnknownPackaging is returned for documents with no known packaging.
var ErrUnknownPackaging = errors.New("unknown packaging")

// Document is the input contract: lines for Text, the index and data
// blobs for BinaryIndex, the raw markup for Markup.
type Document struct {
	Name      string
	Packaging corpus.Packaging
	Lines     corpus.Corpus
	Index     []byte
	Data      []byte
	// Info, when set, supplies the StarDict offset width.
	Info   *stardict.Info
	Markup []byte
	// DZ marks text that came out of a .dict.dz container.
	DZ bool
}

// Options is fixed for a run.
type Options struct {
	Filter          pos.Filter
	SampleSize      int
	RecoveryDivisor int
	Logger          zerolog.Logger
}

// DefaultOptions returns the default POS filter and sample size.
func DefaultOptions() Options {
	return Options{
		Filter:          pos.DefaultFilter(),
		SampleSize:      script.DefaultSampleSize,
		RecoveryDivisor: stardict.DefaultRecoveryDivisor,
		Logger:          zerolog.Nop(),
	}
}

// Result holds the raw, possibly duplicated, word lists of one document.
type Result struct {
	Name      string
	Packaging corpus.Packaging
	// Layout and Script are only meaningful for Text documents.
	Layout layout.Layout
	Script script.Tag
	Source []string
	Target []string
	// Recovered counts headwords found only by the StarDict recovery pass.
	Recovered int
	// Entries is the number of index records or markup entries seen.
	Entries int
}

// Empty reports whether neither role produced a word.
func (r *Result) Empty() bool {
	return len(r.Source) == 0 && len(r.Target) == 0
}

// Pipeline binds run-wide options. It holds no per-document state and is
// safe for concurrent use.
type Pipeline struct {
	opts      Options
	extractor *extract.Extractor
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.SampleSize <= 0 {
		opts.SampleSize = script.DefaultSampleSize
	}
	if opts.RecoveryDivisor <= 0 {
		opts.RecoveryDivisor = stardict.DefaultRecoveryDivisor
	}
	return &Pipeline{opts: opts, extractor: extract.New(opts.Filter)}
}

// Process extracts both word lists from doc. A panic inside a heuristic is
// turned into an error for this document only.
func (p *Pipeline) Process(doc Document) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%s: %v", doc.Name, r)
		}
	}()

	log := p.opts.Logger.With().Str("document", doc.Name).Str("packaging", doc.Packaging.String()).Logger()

	switch doc.Packaging {
	case corpus.Text:
		return p.processText(doc, log), nil
	case corpus.BinaryIndex:
		return p.processStarDict(doc, log), nil
	case corpus.Markup:
		return p.processMarkup(doc, log), nil
	default:
		return nil, fmt.Errorf("%s: %w", doc.Name, ErrUnknownPackaging)
	}
}

func (p *Pipeline) processText(doc Document, log zerolog.Logger) *Result {
	lines := []string(doc.Lines)
	det := layout.Detect(lines, layout.Options{SampleSize: p.opts.SampleSize})
	log.Debug().
		Str("layout", det.Layout.String()).
		Str("script", string(det.Script)).
		Int("lines", doc.Lines.Len()).
		Bool("dz", doc.DZ).
		Bool("pos_filter", p.extractor.Filter().Enabled()).
		Msg("layout detected")

	words := extract.Run(p.extractor.For(det, doc.DZ), lines)
	return &Result{
		Name:      doc.Name,
		Packaging: doc.Packaging,
		Layout:    det.Layout,
		Script:    det.Script,
		Source:    words.Source,
		Target:    words.Target,
	}
}

func (p *Pipeline) processStarDict(doc Document, log zerolog.Logger) *Result {
	opts := stardict.DefaultOptions()
	if doc.Info != nil {
		opts = doc.Info.Options()
	}
	opts.RecoveryDivisor = p.opts.RecoveryDivisor
	opts.Logger = log

	d := stardict.Parse(doc.Index, doc.Data, opts)
	if len(d.Recovered) > 0 {
		log.Info().Int("recovered", len(d.Recovered)).Msg("recovered headwords from index")
	}

	// Definitions are not decoded; the target role has no words.
	return &Result{
		Name:      doc.Name,
		Packaging: doc.Packaging,
		Layout:    layout.Unknown,
		Script:    script.Latin,
		Source:    d.Headwords(),
		Recovered: len(d.Recovered),
		Entries:   len(d.Entries) + d.Skipped,
	}
}

func (p *Pipeline) processMarkup(doc Document, log zerolog.Logger) *Result {
	res := &Result{
		Name:      doc.Name,
		Packaging: doc.Packaging,
		Layout:    layout.Unknown,
		Script:    script.Latin,
	}
	entries, err := tei.Parse(bytes.NewReader(doc.Markup))
	if err != nil {
		log.Warn().Err(err).Msg("malformed markup, no words extracted")
		return res
	}
	res.Source = entries.Headwords()
	res.Target = entries.Translations()
	res.Entries = entries.Count
	return res
}
