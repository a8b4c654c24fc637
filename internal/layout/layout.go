// Package layout classifies a dictionary document into one textual layout
// using a fixed-priority chain of heuristics. The first satisfied
// heuristic wins; there is no scoring across layouts.
package layout

import (
	"strings"
	"unicode/utf8"

	"zippy/internal/corpus"
	"zippy/internal/ipa"
	"zippy/internal/normalizer"
	"zippy/internal/script"
)

// Layout is the structural convention a document follows.
type Layout int

const (
	Unknown Layout = iota
	ScriptDriven
	SourceTarget
	TargetSource
	Simple
	Multiline
)

var names = map[Layout]string{
	Unknown:      "unknown",
	ScriptDriven: "script-driven",
	SourceTarget: "source-target",
	TargetSource: "target-source",
	Simple:       "simple",
	Multiline:    "multiline",
}

func (l Layout) String() string {
	if n, ok := names[l]; ok {
		return n
	}
	return "unknown"
}

// Alternating reports whether l is one of the two pairwise layouts.
func (l Layout) Alternating() bool {
	return l == SourceTarget || l == TargetSource
}

// Window bounds used by the detectors. Headers routinely run to a few
// dozen lines, so sampling starts at line 50.
const (
	windowStart        = 50
	alternatingEnd     = 200
	simpleEnd          = 400
	multilineEnd       = 150
	pronunciationProbe = 200

	alternatingSamples = 5
	simpleHits         = 3
	multilineHits      = 5

	maxSimpleLine   = 50
	maxHeadwordLine = 30
	proseTokens     = 8
)

// Result is the outcome of Detect.
type Result struct {
	Layout Layout
	// Script is the dominant document script; only non-Latin for
	// ScriptDriven.
	Script script.Tag
}

// Options tune detection.
type Options struct {
	SampleSize int
}

// rule is one step of the detection chain.
type rule struct {
	name   string
	detect func(lines []string, opts Options) (Result, bool)
}

// chain is evaluated in order; first match wins.
var chain = []rule{
	{"script", detectScript},
	{"alternating", detectAlternatingOrMultiline},
	{"simple", detectSimple},
	{"multiline", detectMultilineRule},
}

// Detect classifies lines. It is a pure function of its input.
func Detect(lines []string, opts Options) Result {
	for _, r := range chain {
		if res, ok := r.detect(lines, opts); ok {
			return res
		}
	}
	return Result{Layout: Unknown, Script: script.Latin}
}

func detectScript(lines []string, opts Options) (Result, bool) {
	s := script.Document(lines, opts.SampleSize)
	if s.IsNonLatin() {
		return Result{Layout: ScriptDriven, Script: s}, true
	}
	return Result{}, false
}

// detectAlternatingOrMultiline resolves pair evidence. A multiline
// document also produces source-target pair evidence, so multiline
// triples take precedence here.
func detectAlternatingOrMultiline(lines []string, _ Options) (Result, bool) {
	dir := AlternatingDirection(lines)
	if dir == Unknown {
		return Result{}, false
	}
	if IsMultiline(lines) {
		return Result{Layout: Multiline, Script: script.Latin}, true
	}
	return Result{Layout: dir, Script: script.Latin}, true
}

func detectSimple(lines []string, _ Options) (Result, bool) {
	if IsSimple(lines) {
		return Result{Layout: Simple, Script: script.Latin}, true
	}
	return Result{}, false
}

func detectMultilineRule(lines []string, _ Options) (Result, bool) {
	if IsMultiline(lines) {
		return Result{Layout: Multiline, Script: script.Latin}, true
	}
	return Result{}, false
}

// IsPlainLatin reports whether s is alphabetic once separators are removed.
func IsPlainLatin(s string) bool {
	return normalizer.IsAlpha(normalizer.Normalize(s))
}

// PairDirection classifies a single adjacent pair: SourceTarget when a
// carries the pronunciation and b is a plain translation, TargetSource
// for the mirror case, Unknown otherwise.
func PairDirection(a, b string) Layout {
	if a == "" || b == "" || IsHeader(a) || IsHeader(b) {
		return Unknown
	}
	markA, markB := ipa.HasMarkers(a), ipa.HasMarkers(b)
	switch {
	case markA && !markB && IsPlainLatin(b):
		return SourceTarget
	case markB && !markA && IsPlainLatin(a):
		return TargetSource
	}
	return Unknown
}

// AlternatingDirection samples adjacent pairs in [50,200) and returns the
// majority direction of up to five qualifying samples. Ties and zero
// evidence return Unknown.
func AlternatingDirection(lines []string) Layout {
	c := corpus.Corpus(lines)
	st, ts := 0, 0
	end := min(alternatingEnd, c.Len()-1)
	for i := windowStart; i < end && st+ts < alternatingSamples; i++ {
		switch PairDirection(c.Line(i), c.Line(i+1)) {
		case SourceTarget:
			st++
		case TargetSource:
			ts++
		}
	}
	switch {
	case st > ts:
		return SourceTarget
	case ts > st:
		return TargetSource
	}
	return Unknown
}

// IsHeadwordCandidate reports whether line looks like a bare headword in
// a simple headword/translation document.
func IsHeadwordCandidate(line string) bool {
	if line == "" || IsHeader(line) || ContainsYear(line) {
		return false
	}
	n := utf8.RuneCountInString(line)
	if n > maxSimpleLine || hasBareColon(line) {
		return false
	}
	if normalizer.ContainsAny(line, entryMarkers...) {
		return false
	}
	if normalizer.ContainsAny(strings.ToLower(line), technicalTerms...) {
		return false
	}
	return n <= maxHeadwordLine
}

// hasPronunciationAndPOS reports a slash together with an angle-bracket
// pair, i.e. "word /pron/ <pos>" style entries.
func hasPronunciationAndPOS(line string) bool {
	return strings.Contains(line, "/") && strings.Contains(line, "<") && strings.Contains(line, ">")
}

// IsSimple reports whether the document is a plain headword/translation
// list: three headword candidates followed by a non-empty line in
// [50,400), and no pronunciation+POS entries near the top.
func IsSimple(lines []string) bool {
	c := corpus.Corpus(lines)
	for _, l := range c.Head(pronunciationProbe) {
		if hasPronunciationAndPOS(l) {
			return false
		}
	}

	hits := 0
	end := min(simpleEnd, c.Len()-1)
	for i := windowStart; i < end; i++ {
		if !IsHeadwordCandidate(c.Line(i)) || c.Line(i+1) == "" {
			continue
		}
		hits++
		if hits >= simpleHits {
			return true
		}
	}
	return false
}

// IsEntryHead reports whether a is a pronunciation+POS line and b a
// translation line carrying neither marker.
func IsEntryHead(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if !strings.Contains(a, "/") || !strings.Contains(a, "<") {
		return false
	}
	return !strings.Contains(b, "/") && !strings.Contains(b, "<")
}

// IsDefinition reports whether line reads like prose: it has a period or
// more than eight space-separated tokens.
func IsDefinition(line string) bool {
	if line == "" {
		return false
	}
	return strings.Contains(line, ".") || len(strings.Fields(line)) > proseTokens
}

// IsTriple reports whether lines i, i+1, i+2 form a multiline entry.
func IsTriple(lines []string, i int) bool {
	c := corpus.Corpus(lines)
	return IsEntryHead(c.Line(i), c.Line(i+1)) && IsDefinition(c.Line(i+2))
}

// IsMultiline reports whether five entry triples start in [50,150).
func IsMultiline(lines []string) bool {
	hits := 0
	end := min(multilineEnd, len(lines)-2)
	for i := windowStart; i < end; i++ {
		if IsTriple(lines, i) {
			hits++
			if hits >= multilineHits {
				return true
			}
		}
	}
	return false
}
