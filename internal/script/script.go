// Package script classifies characters and documents by Unicode script.
package script

// Tag is a script classification.
type Tag string

const (
	Latin      Tag = "latin"
	Arabic     Tag = "arabic"
	Cyrillic   Tag = "cyrillic"
	CJK        Tag = "cjk"
	Devanagari Tag = "devanagari"
)

// DefaultSampleSize is how many leading lines Document inspects.
const DefaultSampleSize = 500

type span struct {
	lo, hi rune
}

// ranges are inclusive code point spans. Latin is deliberately absent:
// it is only tallied at document level.
var ranges = map[Tag][]span{
	Arabic:     {{0x0600, 0x06FF}},
	Cyrillic:   {{0x0400, 0x04FF}},
	Devanagari: {{0x0900, 0x097F}},
	CJK: {
		{0x3040, 0x309F}, // hiragana
		{0x30A0, 0x30FF}, // katakana
		{0x4E00, 0x9FAF}, // unified ideographs
	},
}

// order is the lookup order for Of.
var order = []Tag{Arabic, Cyrillic, CJK, Devanagari}

// IsNonLatin reports whether t is one of the tracked non-Latin scripts.
func (t Tag) IsNonLatin() bool {
	_, ok := ranges[t]
	return ok
}

// Of returns the script of r, or false if r is in no tracked range.
func Of(r rune) (Tag, bool) {
	for _, t := range order {
		if In(r, t) {
			return t, true
		}
	}
	return "", false
}

// In reports whether r falls inside any range of t.
func In(r rune, t Tag) bool {
	for _, s := range ranges[t] {
		if r >= s.lo && r <= s.hi {
			return true
		}
	}
	return false
}

// Contains reports whether s has at least one character of script t.
func Contains(s string, t Tag) bool {
	for _, r := range s {
		if In(r, t) {
			return true
		}
	}
	return false
}

// All reports whether every character of s is in script t or in extra.
func All(s string, t Tag, extra string) bool {
	for _, r := range s {
		if In(r, t) {
			continue
		}
		ok := false
		for _, e := range extra {
			if r == e {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Document returns the dominant script over the first sampleSize lines.
// Any non-zero count of a non-Latin script outranks Latin.
// A sampleSize <= 0 falls back to DefaultSampleSize.
func Document(lines []string, sampleSize int) Tag {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	// Printable ASCII would be the Latin tally, but Latin loses to any
	// non-zero non-Latin count and wins otherwise, so only non-Latin is counted.
	// Ties go to the script seen first.
	counts := make(map[Tag]int, len(ranges))
	var seen []Tag
	for i, line := range lines {
		if i >= sampleSize {
			break
		}
		for _, r := range line {
			if t, ok := Of(r); ok {
				if counts[t] == 0 {
					seen = append(seen, t)
				}
				counts[t]++
			}
		}
	}

	best, bestCount := Latin, 0
	for _, t := range seen {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best
}
