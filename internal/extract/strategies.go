package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"zippy/internal/corpus"
	"zippy/internal/ipa"
	"zippy/internal/layout"
	"zippy/internal/normalizer"
	"zippy/internal/script"
)

// stopwords are English function words dropped from multiline
// translations. No other strategy uses them.
var stopwords = map[string]bool{
	"the": true, "and": true, "of": true, "or": true, "in": true, "to": true,
	"for": true, "with": true, "from": true, "by": true, "at": true, "on": true,
	"an": true, "as": true, "be": true, "is": true, "are": true, "was": true,
	"were": true, "been": true, "have": true, "has": true, "had": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "must": true,
}

var (
	cjkDelimiters = regexp.MustCompile(`[,，、。；;]+|\s+`)
	multilineSeps = strings.NewReplacer(",", " ", ";", " ", "2.", " ")
)

const cjkTrim = ".,，、。；; "

// pronunciationWord returns a validated headword from a pronunciation line.
func pronunciationWord(line string) (string, bool) {
	word, ok := ipa.Headword(line)
	if !ok || !normalizer.IsValid(word) {
		return "", false
	}
	return word, true
}

// ScriptDriven extracts from documents whose target language is identified
// by its script. Target words are tokens containing the target script;
// source words come from Latin pronunciation lines.
func (e *Extractor) ScriptDriven(lines []string, role Role, tag script.Tag) []string {
	var words []string
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || layout.IsHeader(line) || !e.filter.Allows(line) {
			continue
		}

		if role == Source {
			if strings.Contains(line, "/") {
				if w, ok := pronunciationWord(line); ok {
					words = append(words, w)
				}
			} else if layout.IsPlainLatin(line) && utf8.RuneCountInString(line) >= 2 && normalizer.IsLatin1(line) {
				words = append(words, line)
			}
			continue
		}

		if !tag.IsNonLatin() {
			if !ipa.HasTranscription(line) && layout.IsPlainLatin(line) {
				words = append(words, line)
			}
			continue
		}
		if script.Contains(line, tag) {
			words = append(words, wordsByScript(line, tag)...)
		}
	}
	return words
}

// wordsByScript splits line with delimiters suited to the script and keeps
// tokens belonging to it.
func wordsByScript(line string, tag script.Tag) []string {
	var words []string
	if tag == script.CJK {
		for _, part := range cjkDelimiters.Split(line, -1) {
			clean := strings.Trim(part, cjkTrim)
			if clean != "" && script.Contains(clean, script.CJK) {
				words = append(words, clean)
			}
		}
		return words
	}

	for _, tok := range strings.Fields(line) {
		clean := normalizer.Clean(tok)
		if utf8.RuneCountInString(clean) >= 2 && script.All(clean, tag, " -") {
			words = append(words, clean)
		}
	}
	return words
}

// Alternating walks every adjacent pair whose first line carries a
// pronunciation marker and whose second does not. The headword goes to the
// pronunciation role (source for source-target, target for target-source);
// the translations go to the other role.
func (e *Extractor) Alternating(lines []string, role Role, l layout.Layout) []string {
	c := corpus.Corpus(lines)
	pronRole := Source
	if l == layout.TargetSource {
		pronRole = Target
	}

	var words []string
	for i := 0; i < len(lines)-1; i++ {
		a, b := c.Line(i), c.Line(i+1)
		if a == "" || b == "" || layout.IsHeader(a) || layout.IsHeader(b) {
			continue
		}
		if !ipa.HasMarkers(a) || ipa.HasMarkers(b) {
			continue
		}

		if role == pronRole {
			if !e.filter.Allows(a) {
				continue
			}
			if w, ok := pronunciationWord(a); ok {
				words = append(words, w)
			}
			continue
		}

		if !e.filter.Allows(b) {
			continue
		}
		words = append(words, pairTranslations(b, 2)...)
	}
	return words
}

// Simple reads headword/translation pairs with a single forward cursor:
// each non-header line consumes the line after it.
func (e *Extractor) Simple(lines []string, role Role) []string {
	c := corpus.Corpus(lines)
	var words []string
	for i := 0; i < len(lines); i++ {
		line := c.Line(i)
		if line == "" || layout.IsHeader(line) {
			continue
		}

		next := c.Line(i+1)
		i++

		if role == Source {
			if w, ok := e.bareHeadword(line); ok {
				words = append(words, w)
			}
		} else if next != "" {
			words = append(words, simpleTranslations(next)...)
		}
	}
	return words
}

// Multiline walks word/translation/definition triples. A qualifying
// triple advances the cursor by three, anything else by one.
func (e *Extractor) Multiline(lines []string, role Role) []string {
	c := corpus.Corpus(lines)
	var words []string
	i := 0
	for i < len(lines)-2 {
		if !layout.IsTriple(lines, i) {
			i++
			continue
		}

		head := c.Line(i)
		if !e.filter.Allows(head) {
			i++
			continue
		}

		if role == Source {
			if w, ok := pronunciationWord(head); ok {
				words = append(words, w)
			}
		} else {
			words = append(words, multilineTranslations(c.Line(i+1))...)
		}
		i += 3
	}
	return words
}

func multilineTranslations(line string) []string {
	var words []string
	for _, tok := range strings.Fields(multilineSeps.Replace(line)) {
		clean := normalizer.Clean(tok)
		if utf8.RuneCountInString(clean) < 3 || stopwords[strings.ToLower(clean)] {
			continue
		}
		if normalizer.IsAlpha(normalizer.Normalize(clean)) && normalizer.IsLatin1(clean) {
			words = append(words, clean)
		}
	}
	return words
}

// startMarkers rule a line out as the first headword of the body.
const startMarkers = "/<>*()"

// FindStart locates the first plausible headword: a short, marker-free,
// non-header line followed by a strictly longer line. It returns 0 when
// nothing qualifies.
func FindStart(lines []string) int {
	c := corpus.Corpus(lines)
	for i := 0; i < len(lines)-1; i++ {
		line := c.Line(i)
		if line == "" || layout.IsHeader(line) || layout.ContainsYear(line) || strings.Contains(line, ":") {
			continue
		}
		n := utf8.RuneCountInString(line)
		if n > 30 || normalizer.Normalize(line) == "" || strings.ContainsAny(line, startMarkers) {
			continue
		}
		next := c.Line(i+1)
		if next != "" && utf8.RuneCountInString(next) > n {
			return i
		}
	}
	return 0
}

// HeaderSkip is the fallback for documents no detector recognised. It
// skips to FindStart and reads non-overlapping headword/translation pairs.
func (e *Extractor) HeaderSkip(lines []string, role Role) []string {
	c := corpus.Corpus(lines)
	var words []string
	i := FindStart(lines)
	for i < len(lines)-1 {
		line, next := c.Line(i), c.Line(i+1)
		if line == "" || next == "" {
			i++
			continue
		}

		if role == Source {
			if w, ok := e.bareHeadword(line); ok {
				words = append(words, w)
			}
		} else {
			words = append(words, simpleTranslations(next)...)
		}
		i += 2
	}
	return words
}
