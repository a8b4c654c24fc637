// Package pos filters dictionary lines by their inline part-of-speech tags,
// e.g. "casa /ˈkasa/ <n, fem>".
package pos

import (
	"regexp"
	"strings"
)

// Plural is the base type marking plural forms.
const Plural = "pl"

// DefaultInclude is the inclusion set used when none is configured.
var DefaultInclude = []string{"n", "adj", "adv", "v"}

var (
	tagPattern   = regexp.MustCompile(`<([^>]+)>`)
	splitPattern = regexp.MustCompile(`[,\s]+`)
)

// vocabulary holds the recognised base codes and their synonyms across
// the dictionaries seen in the wild. Keys are lowercase.
var vocabulary = map[string]bool{
	// base
	"n": true, "adj": true, "adv": true, "v": true, Plural: true,
	// proper noun
	"pn": true,
	// spelled-out forms
	"phraseologicalunit": true, "interjection": true, "preposition": true,
	"pronoun": true, "conjunction": true, "numeral": true, "determiner": true,
	// abbreviated forms
	"int": true, "prep": true, "pron": true, "conj": true, "num": true,
	"vt": true, "vi": true, "art": true,
}

// Filter is the run-wide part-of-speech configuration. It is built once
// at startup and passed by value into every detector and strategy.
type Filter struct {
	Include     []string
	SkipPlurals bool
}

// NewFilter builds a Filter with a lowercased inclusion set.
func NewFilter(include []string, skipPlurals bool) Filter {
	lowered := make([]string, 0, len(include))
	for _, code := range include {
		code = strings.ToLower(strings.TrimSpace(code))
		if code != "" {
			lowered = append(lowered, code)
		}
	}
	return Filter{Include: lowered, SkipPlurals: skipPlurals}
}

// DefaultFilter returns the stock content-word filter.
func DefaultFilter() Filter {
	return NewFilter(DefaultInclude, true)
}

// Tags returns the contents of every <...> annotation in line.
func Tags(line string) []string {
	matches := tagPattern.FindAllStringSubmatch(line, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}

// BaseTypes splits a tag on commas and whitespace and keeps the
// recognised part-of-speech codes, lowercased.
func BaseTypes(tag string) []string {
	var found []string
	for _, part := range splitPattern.Split(strings.TrimSpace(tag), -1) {
		part = strings.ToLower(strings.TrimSpace(part))
		if vocabulary[part] {
			found = append(found, part)
		}
	}
	return found
}

func (f Filter) includes(code string) bool {
	for _, c := range f.Include {
		if c == code {
			return true
		}
	}
	return false
}

// Enabled reports whether the filter restricts anything.
func (f Filter) Enabled() bool {
	return len(f.Include) > 0
}

// Allows decides whether the word on line passes the filter. Lines
// without tags are always included.
func (f Filter) Allows(line string) bool {
	if !f.Enabled() {
		return true
	}

	tags := Tags(line)
	if len(tags) == 0 {
		return true
	}

	bases := make([][]string, len(tags))
	for i, tag := range tags {
		bases[i] = BaseTypes(tag)
	}

	if f.SkipPlurals {
		for _, types := range bases {
			for _, t := range types {
				if t == Plural {
					return false
				}
			}
		}
	}

	for _, types := range bases {
		for _, t := range types {
			if f.includes(t) {
				return true
			}
		}
	}
	return false
}
