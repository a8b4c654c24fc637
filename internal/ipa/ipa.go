// Package ipa recognises pronunciation transcriptions in dictionary lines
// and pulls the headword out of "word /pronunciation/ <pos>" lines.
package ipa

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"zippy/internal/normalizer"
)

// symbols are IPA characters that do not occur in ordinary Latin
// orthography. U+0303 is the combining tilde of nasal vowels.
const symbols = "ɐəɪɛɜːʃɹɔɑɒæʌʔɘɯɤɞɨʊʉɵɶœøˈˌ̃"

// transcriptionSymbols is the narrower set that marks a line as a
// transcription when extracting plain Latin translations.
const transcriptionSymbols = "ˈˌɑɛɪəɹθð"

// slashed matches short ASCII-ish transcriptions such as /ad/ or /abkazi/.
var slashed = regexp.MustCompile(`/[a-zA-Zɛɔɑɪə\x{0303}]+/`)

// MinHeadwordLetters is the shortest normalized headword accepted.
const MinHeadwordLetters = 2

// HasMarkers reports whether line carries a pronunciation marker: it must
// contain a slash, plus either an IPA symbol or a slash-delimited
// transcription.
func HasMarkers(line string) bool {
	if !strings.Contains(line, "/") {
		return false
	}
	if strings.ContainsAny(line, symbols) {
		return true
	}
	return slashed.MatchString(line)
}

// HasTranscription reports whether line has a slash and a stress mark or
// one of the most common IPA vowels.
func HasTranscription(line string) bool {
	return strings.Contains(line, "/") && strings.ContainsAny(line, transcriptionSymbols)
}

// Headword returns the trimmed text before the first slash when its
// normalized form is purely alphabetic, at least two letters long, and the
// original text has no digits.
func Headword(line string) (string, bool) {
	idx := strings.Index(line, "/")
	if idx < 0 {
		return "", false
	}

	word := strings.TrimSpace(line[:idx])
	if word == "" {
		return "", false
	}

	clean := normalizer.Normalize(word)
	if utf8.RuneCountInString(clean) < MinHeadwordLetters || !normalizer.IsAlpha(clean) {
		return "", false
	}
	if normalizer.HasDigit(word) {
		return "", false
	}
	return word, true
}
