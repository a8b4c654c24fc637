package ingest

import (
	"path/filepath"
	"strings"
)

// LanguageNames maps ISO 639-3 codes used in FreeDict filenames to the
// names used in wordlist filenames.
var LanguageNames = map[string]string{
	"afr": "afrikaans",
	"ara": "arabic",
	"ast": "asturian",
	"bre": "breton",
	"bul": "bulgarian",
	"cat": "catalan",
	"ces": "czech",
	"ckb": "sorani",
	"cym": "welsh",
	"dan": "danish",
	"deu": "german",
	"ell": "greek",
	"eng": "english",
	"epo": "esperanto",
	"fin": "finnish",
	"fra": "french",
	"gle": "irish",
	"hin": "hindi",
	"hrv": "croatian",
	"ita": "italian",
	"jpn": "japanese",
	"kha": "khasi",
	"kmr": "kurmanji",
	"lat": "latin",
	"nld": "dutch",
	"pol": "polish",
	"por": "portuguese",
	"rus": "russian",
	"spa": "spanish",
	"swe": "swedish",
	"swh": "swahili",
}

// LanguageName returns the name for code, or code itself when unknown.
func LanguageName(code string) string {
	code = strings.ToLower(code)
	if name, ok := LanguageNames[code]; ok {
		return name
	}
	return code
}

// Languages returns the source and target language names encoded in a
// dictionary filename or bare code pair:
//
//	freedict-eng-ces-0.1.3.dictd.tar.xz -> english, czech
//	fra-eng.dict.dz                     -> french, english
//	eng-zyx                             -> english, zyx
//
// The first two dash-separated parts of exactly three characters are used;
// failing that, the first two parts, or the single part twice.
func Languages(name string) (source, target string) {
	name = filepath.Base(name)

	var parts []string
	if strings.HasSuffix(name, ".dict.dz") {
		parts = strings.Split(strings.TrimSuffix(name, ".dict.dz"), "-")
	} else {
		parts = strings.Split(strings.TrimSuffix(name, filepath.Ext(name)), "-")
		var codes []string
		for _, p := range parts {
			if len([]rune(p)) == 3 {
				codes = append(codes, p)
				if len(codes) == 2 {
					break
				}
			}
		}
		if len(codes) == 2 {
			parts = codes
		}
	}

	if len(parts) >= 2 {
		return LanguageName(parts[0]), LanguageName(parts[1])
	}
	return LanguageName(parts[0]), LanguageName(parts[0])
}

// BaseName returns the filename up to its first dot.
func BaseName(name string) string {
	name = filepath.Base(name)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Filenames returns the target and source wordlist filenames for a
// dictionary: <language>_<base>.txt.
func Filenames(name string) (target, source string) {
	base := BaseName(name)
	src, tgt := Languages(base)
	return tgt + "_" + base + ".txt", src + "_" + base + ".txt"
}
