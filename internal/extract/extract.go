// Package extract turns a classified line corpus into raw word lists, one
// strategy per layout. Strategies never deduplicate or sort; that happens
// once, downstream, in package wordlist.
package extract

import (
	"strings"
	"unicode/utf8"

	"zippy/internal/layout"
	"zippy/internal/normalizer"
	"zippy/internal/pos"
)

// Role selects which language an extraction call produces.
type Role int

const (
	Source Role = iota
	Target
)

func (r Role) String() string {
	if r == Target {
		return "target"
	}
	return "source"
}

// Swap returns the opposite role.
func (r Role) Swap() Role {
	if r == Source {
		return Target
	}
	return Source
}

// Strategy extracts words for one role from a corpus.
type Strategy func(lines []string, role Role) []string

// Extractor binds the run-wide POS filter to the strategies.
type Extractor struct {
	filter pos.Filter
}

// New creates an Extractor. The filter is copied and never mutated.
func New(filter pos.Filter) *Extractor {
	return &Extractor{filter: filter}
}

// Filter returns the POS filter in use.
func (e *Extractor) Filter() pos.Filter {
	return e.filter
}

// For returns the strategy for a detection result. When the document came
// from a .dict.dz container and the layout is target-source, the caller's
// role is swapped before the pairwise logic runs.
// TODO: confirm against more .dz sources whether the swap reflects the
// container format or compensates for pair detection on those files.
func (e *Extractor) For(res layout.Result, dz bool) Strategy {
	switch res.Layout {
	case layout.ScriptDriven:
		tag := res.Script
		return func(lines []string, role Role) []string {
			return e.ScriptDriven(lines, role, tag)
		}
	case layout.SourceTarget, layout.TargetSource:
		l := res.Layout
		if dz && l == layout.TargetSource {
			return func(lines []string, role Role) []string {
				return e.Alternating(lines, role.Swap(), l)
			}
		}
		return func(lines []string, role Role) []string {
			return e.Alternating(lines, role, l)
		}
	case layout.Simple:
		return e.Simple
	case layout.Multiline:
		return e.Multiline
	default:
		return e.HeaderSkip
	}
}

// pairTranslations splits a translation line on commas and semicolons and
// keeps Latin-1 tokens that are alphabetic once normalized.
func pairTranslations(line string, minLen int) []string {
	line = strings.NewReplacer(",", " ", ";", " ").Replace(line)
	var words []string
	for _, tok := range strings.Fields(line) {
		clean := normalizer.Clean(tok)
		if utf8.RuneCountInString(clean) < minLen {
			continue
		}
		if !normalizer.IsAlpha(normalizer.Normalize(clean)) || !normalizer.IsLatin1(clean) {
			continue
		}
		words = append(words, clean)
	}
	return words
}

// simpleSeparators are replaced by spaces before splitting a translation.
var simpleSeparators = strings.NewReplacer(
	",", " ",
	"،", " ", // arabic comma
	"、", " ", // ideographic comma
	"~", " ",
)

// simpleTranslations yields alphabetic cleaned tokens from a translation.
func simpleTranslations(line string) []string {
	var words []string
	for _, tok := range strings.Fields(simpleSeparators.Replace(line)) {
		if clean := normalizer.Clean(tok); normalizer.IsAlpha(clean) {
			words = append(words, clean)
		}
	}
	return words
}

// bareHeadword is the source-side check shared by Simple and HeaderSkip.
func (e *Extractor) bareHeadword(line string) (string, bool) {
	clean := normalizer.Clean(line)
	if clean == "" || normalizer.HasDigit(clean) || strings.ContainsAny(clean, `()[]<>/\`) {
		return "", false
	}
	if !e.filter.Allows(line) {
		return "", false
	}
	return clean, true
}

// Words collects the extraction output of both roles.
type Words struct {
	Source []string
	Target []string
}

// Run applies s once per role.
func Run(s Strategy, lines []string) Words {
	return Words{
		Source: s(lines, Source),
		Target: s(lines, Target),
	}
}
