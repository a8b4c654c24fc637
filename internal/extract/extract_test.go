package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zippy/internal/layout"
	"zippy/internal/pos"
	"zippy/internal/script"
)

func blank(n int) []string {
	return make([]string, n)
}

func sourceTargetCorpus() []string {
	lines := blank(50)
	for i := 0; i < 3; i++ {
		lines = append(lines, "casa /ˈkasa/ <n>", "house")
	}
	for len(lines) < 60 {
		lines = append(lines, "")
	}
	return lines
}

func multilineCorpus() []string {
	lines := blank(50)
	for i := 0; i < 5; i++ {
		lines = append(lines,
			"word /wɜːd/ <n>",
			"palabra, the vocablo",
			"A term used to describe a unit of language.",
		)
	}
	return append(lines, "", "")
}

func TestRoundTripSourceTarget(t *testing.T) {
	lines := sourceTargetCorpus()
	res := layout.Detect(lines, layout.Options{})
	require.Equal(t, layout.SourceTarget, res.Layout)

	words := Run(New(pos.DefaultFilter()).For(res, false), lines)
	assert.Equal(t, []string{"casa", "casa", "casa"}, words.Source)
	assert.Equal(t, []string{"house", "house", "house"}, words.Target)
}

func TestAlternatingTargetSource(t *testing.T) {
	e := New(pos.DefaultFilter())
	lines := []string{"house", "casa /ˈkasa/ <n>", "home, dwelling", "", "# header", "x"}

	// the pronunciation line is line one of the pair (casa, home)
	assert.Equal(t, []string{"casa"}, e.Alternating(lines, Target, layout.TargetSource))
	assert.Equal(t, []string{"home", "dwelling"}, e.Alternating(lines, Source, layout.TargetSource))
}

func TestAlternatingFiltersTranslations(t *testing.T) {
	e := New(pos.Filter{})
	lines := []string{"casa /ˈkasa/", "house; h, home2, дом, (abode), ok"}

	assert.Equal(t, []string{"house", "abode", "ok"}, e.Alternating(lines, Target, layout.SourceTarget))
}

func TestAlternatingAppliesPOSFilter(t *testing.T) {
	e := New(pos.DefaultFilter())
	lines := []string{"el /el/ <art>", "the", "casas /ˈkasas/ <n, pl>", "houses"}

	assert.Empty(t, e.Alternating(lines, Source, layout.SourceTarget))
}

func TestDzInvertsTargetSource(t *testing.T) {
	e := New(pos.DefaultFilter())
	lines := []string{"house", "casa /ˈkasa/ <n>", "home", ""}
	res := layout.Result{Layout: layout.TargetSource, Script: script.Latin}

	plain := Run(e.For(res, false), lines)
	dz := Run(e.For(res, true), lines)

	assert.Equal(t, plain.Source, dz.Target)
	assert.Equal(t, plain.Target, dz.Source)
	assert.Equal(t, []string{"casa"}, dz.Source)
}

func TestDzKeepsSourceTarget(t *testing.T) {
	e := New(pos.DefaultFilter())
	lines := sourceTargetCorpus()
	res := layout.Result{Layout: layout.SourceTarget}

	assert.Equal(t, Run(e.For(res, false), lines), Run(e.For(res, true), lines))
}

func TestMultiline(t *testing.T) {
	lines := multilineCorpus()
	res := layout.Detect(lines, layout.Options{})
	require.Equal(t, layout.Multiline, res.Layout)

	words := Run(New(pos.DefaultFilter()).For(res, false), lines)
	assert.Len(t, words.Source, 5)
	assert.Contains(t, words.Source, "word")
	assert.Contains(t, words.Target, "palabra")
	assert.Contains(t, words.Target, "vocablo")
	assert.NotContains(t, words.Target, "the")
	assert.Len(t, words.Target, 10)
}

func TestMultilineTranslations(t *testing.T) {
	got := multilineTranslations("casa, hogar; 2. el domicilio, and")
	assert.Equal(t, []string{"casa", "hogar", "domicilio"}, got)
}

func TestSimpleCursor(t *testing.T) {
	e := New(pos.DefaultFilter())
	lines := []string{
		"# header",
		"xwe",
		"water, drink",
		"",
		"ava",
		"the~water",
		"bav2",
		"father",
		"a(b)",
		"ignored",
	}

	assert.Equal(t, []string{"xwe", "ava"}, e.Simple(lines, Source))
	assert.Equal(t, []string{"water", "drink", "the", "water", "father", "ignored"}, e.Simple(lines, Target))
}

func TestSimpleRejectsTaggedHeadwords(t *testing.T) {
	e := New(pos.Filter{})
	lines := []string{"ku <conj>", "that", "av <n>", "water"}

	assert.Empty(t, e.Simple(lines, Source))
	assert.Equal(t, []string{"that", "water"}, e.Simple(lines, Target))
}

func TestScriptDrivenCyrillic(t *testing.T) {
	e := New(pos.Filter{})
	lines := []string{
		"house /haʊs/",
		"дом, жилище",
		"д",
		"Author: дом",
		"дом2",
		"home",
	}

	assert.Equal(t, []string{"дом", "жилище"}, e.ScriptDriven(lines, Target, script.Cyrillic))
	assert.Equal(t, []string{"house", "home"}, e.ScriptDriven(lines, Source, script.Cyrillic))
}

func TestScriptDrivenCJK(t *testing.T) {
	e := New(pos.Filter{})
	lines := []string{"water /ˈwɔːtə/", "水；みず、お水。", "fire", "火"}

	assert.Equal(t, []string{"水", "みず", "お水", "火"}, e.ScriptDriven(lines, Target, script.CJK))
}

func TestScriptDrivenArabicKeepsHyphen(t *testing.T) {
	e := New(pos.Filter{})
	lines := []string{"كتاب-كبير كتب", "book"}

	assert.Equal(t, []string{"كتاب-كبير", "كتب"}, e.ScriptDriven(lines, Target, script.Arabic))
}

func TestFindStart(t *testing.T) {
	lines := []string{
		"Some long introduction that goes on for a while and then some more",
		"Version: 1",
		"",
		"av",
		"water",
		"ba",
		"wind",
	}
	assert.Equal(t, 3, FindStart(lines))
	assert.Equal(t, 0, FindStart([]string{"longer", "x"}))
}

func TestHeaderSkip(t *testing.T) {
	e := New(pos.DefaultFilter())
	lines := []string{
		"Introduction text: long header line that is not data",
		"av",
		"water",
		"ba",
		"wind, air",
		"",
		"dar",
		"tree",
	}

	assert.Equal(t, []string{"av", "ba", "dar"}, e.HeaderSkip(lines, Source))
	assert.Equal(t, []string{"water", "wind", "air", "tree"}, e.HeaderSkip(lines, Target))
}

func TestHeaderSkipEmpty(t *testing.T) {
	e := New(pos.DefaultFilter())
	assert.Empty(t, e.HeaderSkip(nil, Source))
	assert.Empty(t, e.HeaderSkip([]string{"only"}, Target))
}

func TestForUnknownFallsBack(t *testing.T) {
	e := New(pos.DefaultFilter())
	lines := []string{"av", "water"}
	words := Run(e.For(layout.Result{Layout: layout.Unknown}, false), lines)

	assert.Equal(t, []string{"av"}, words.Source)
	assert.Equal(t, []string{"water"}, words.Target)
}

func TestRoleSwap(t *testing.T) {
	assert.Equal(t, Target, Source.Swap())
	assert.Equal(t, Source, Target.Swap())
	assert.Equal(t, "source", Source.String())
	assert.Equal(t, "target", Target.String())
}

func TestExtractorKeepsFilter(t *testing.T) {
	assert.True(t, New(pos.NewFilter([]string{"n"}, true)).Filter().Enabled())
	assert.False(t, New(pos.NewFilter(nil, false)).Filter().Enabled())
}
