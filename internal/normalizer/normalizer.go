// Package normalizer cleans and validates candidate words.
//
// The validator is Latin-biased: strategies for non-Latin scripts use
// script membership checks from package script instead of IsValid.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Punctuation is the ASCII punctuation set stripped by Clean.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// accented lists the non-ASCII Latin letters IsValid accepts explicitly.
const accented = "áàâäéèêëíìîïóòôöúùûüýÿñçłśźżąęćńłžčšđ"

// MinValidLength is the shortest word IsValid accepts.
const MinValidLength = 3

// separators are removed by Normalize so hyphenated or apostrophized
// forms can pass an alphabetic test. U+2010 is the Unicode hyphen.
var separators = regexp.MustCompile(`[-‐'.,/ ]+`)

// denylist holds technical abbreviations that look like words.
var denylist = map[string]bool{
	"ADN": true, "ARN": true, "ATP": true, "ADSL": true, "USB": true,
	"DVD": true, "AAO": true, "ABP": true, "AFI": true, "AMPA": true,
	"ACS": true, "ANPE": true, "ATB": true,
}

// Clean strips leading and trailing ASCII punctuation.
func Clean(word string) string {
	return strings.Trim(word, Punctuation)
}

// Normalize removes internal separator characters.
func Normalize(word string) string {
	return separators.ReplaceAllString(word, "")
}

// IsAlpha reports whether s is non-empty and made only of letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// IsLatin1 reports whether every character of s fits in a single byte
// of ISO-8859-1. Used as a coarse Latin-only check.
func IsLatin1(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}

// HasDigit reports whether s contains any decimal digit.
func HasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

// ContainsAny reports whether s contains any of the given substrings.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

// IsValid checks a candidate word against the length, denylist,
// alphanumeric-ratio and character-set rules.
func IsValid(word string) bool {
	word = strings.TrimSpace(word)
	length := utf8.RuneCountInString(word)
	if length < MinValidLength {
		return false
	}

	if denylist[strings.ToUpper(word)] {
		return false
	}

	alnum := 0
	for _, r := range word {
		if isAlnum(r) {
			alnum++
		}
	}
	if float64(alnum) < float64(length)*0.6 {
		return false
	}

	for _, r := range word {
		if isAlnum(r) || unicode.IsSpace(r) || r == '\'' || r == '-' {
			continue
		}
		if !strings.ContainsRune(accented, r) {
			return false
		}
	}
	return true
}

// charMap maps non-ASCII characters to ASCII equivalents for Fold.
var charMap = map[rune]string{
	// Turkish
	'ç': "c", 'Ç': "c",
	'ş': "s", 'Ş': "s",
	'ğ': "g", 'Ğ': "g",
	'ı': "i", 'İ': "i",
	// German
	'ä': "a", 'Ä': "a",
	'ö': "o", 'Ö': "o",
	'ü': "u", 'Ü': "u",
	'ß': "ss",
	// French
	'æ': "ae", 'œ': "oe",
	// Polish
	'ł': "l", 'Ł': "l",
	// Nordic
	'ø': "o", 'Ø': "o",
	// Croatian
	'đ': "d", 'Đ': "d",
}

// FoldChar maps a single character to its lowercase ASCII form. Characters
// with no ASCII decomposition are lowercased and kept.
func FoldChar(r rune) string {
	if ascii, ok := charMap[r]; ok {
		return ascii
	}
	if ascii, ok := charMap[unicode.ToLower(r)]; ok {
		return ascii
	}

	// Fall back to Unicode decomposition
	var result strings.Builder
	for _, c := range norm.NFD.String(string(r)) {
		if !unicode.Is(unicode.Mn, c) && c < utf8.RuneSelf {
			result.WriteRune(unicode.ToLower(c))
		}
	}
	if result.Len() > 0 {
		return result.String()
	}
	return strings.ToLower(string(r))
}

// Fold lowercases word and folds Latin diacritics to ASCII.
// Non-Latin scripts pass through lowercased.
func Fold(word string) string {
	var result strings.Builder
	result.Grow(len(word))
	for _, r := range word {
		result.WriteString(FoldChar(r))
	}
	return result.String()
}
