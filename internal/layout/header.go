package layout

import (
	"regexp"
	"strings"
)

// headerPrefixes open metadata lines in FreeDict and dictd sources.
var headerPrefixes = []string{
	"#", "00-database", "Author:", "Maintainer:", "Edition:", "Size:",
	"Publisher:", "Availability:", "Copyright", "This program",
	"Published", "ID#", "Series:", "Changelog:", "*", "Notes:",
	"Source(s):", "Database Status:", "The Project:",
}

// headerKeywords mark metadata anywhere in a lowercased line.
var headerKeywords = []string{
	"freedict", "dictionary", "license", "copyright",
	"available", "foundation", "version", "ver.", "converted",
	"imported", "makefile", "initial", "michael bunk",
	"piotr bański", "conversion of tei", "tools/xsl",
	"manual clean-up", "stable",
}

// technicalTerms never appear in headword/translation pairs.
var technicalTerms = []string{"http", "www", "email", "@", "creating", "makefile"}

// entryMarkers disqualify a line from being a bare headword.
var entryMarkers = []string{"/", "<", ">", "1.", "2.", "*"}

var yearPattern = regexp.MustCompile(`20(?:05|10|18|19|20|21|22|23|24)`)

// IsHeader reports whether line is dictionary metadata rather than data.
func IsHeader(line string) bool {
	for _, p := range headerPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	lower := strings.ToLower(line)
	for _, k := range headerKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ContainsYear reports whether line mentions a release year, which in
// practice means a changelog entry.
func ContainsYear(line string) bool {
	return yearPattern.MatchString(line)
}

// hasBareColon reports a colon outside lines that start with a hyphen
// (suffix entries such as "-a: ..." are data).
func hasBareColon(line string) bool {
	return strings.Contains(line, ":") && !strings.HasPrefix(line, "-")
}
