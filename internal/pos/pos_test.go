package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTags(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"single", "casa /ˈkasa/ <n>", []string{"n"}},
		{"compound", "casa <n, fem, sg>", []string{"n, fem, sg"}},
		{"several", "run <v, trans> <n>", []string{"v, trans", "n"}},
		{"none", "house", []string{}},
		{"unterminated", "word <n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tags(tt.line))
		})
	}
}

func TestBaseTypes(t *testing.T) {
	tests := []struct {
		tag  string
		want []string
	}{
		{"n, masc", []string{"n"}},
		{"fem, n, sg", []string{"n"}},
		{"v, trans", []string{"v"}},
		{"adj", []string{"adj"}},
		{"pl", []string{"pl"}},
		{"n pl", []string{"n", "pl"}},
		{"ADJ", []string{"adj"}},
		{"vt", []string{"vt"}},
		{"phraseologicalUnit", []string{"phraseologicalunit"}},
		{"masc, sg", nil},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseTypes(tt.tag))
		})
	}
}

func TestFilterAllows(t *testing.T) {
	content := DefaultFilter()

	tests := []struct {
		name   string
		filter Filter
		line   string
		want   bool
	}{
		{"no filter configured", Filter{}, "the <art>", true},
		{"untagged line", content, "house", true},
		{"noun included", content, "casa /ˈkasa/ <n>", true},
		{"article excluded", content, "the <art>", false},
		{"unknown tag excluded", content, "foo <masc>", false},
		{"plural skipped", content, "casas <n, pl>", false},
		{"plural in second tag skipped", content, "casas <n> <pl>", false},
		{"plural kept without skip", NewFilter([]string{"n"}, false), "casas <n, pl>", true},
		{"any tag may match", content, "run <art> <v>", true},
		{"adverb only filter rejects noun", NewFilter([]string{"adv"}, true), "casa <n>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Allows(tt.line))
		})
	}
}

func TestNewFilterLowercases(t *testing.T) {
	f := NewFilter([]string{" N ", "ADJ", ""}, false)
	assert.Equal(t, []string{"n", "adj"}, f.Include)
	assert.True(t, f.Enabled())
	assert.False(t, NewFilter(nil, true).Enabled())
}
