package tei

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader><fileDesc><titleStmt><title>Spanish-English</title></titleStmt></fileDesc></teiHeader>
  <text><body>
    <entry>
      <form><orth> casa </orth></form>
      <gramGrp><pos>n</pos></gramGrp>
      <sense><cit type="trans"><quote>house</quote></cit><cit type="trans"><quote>home</quote></cit></sense>
    </entry>
    <entry>
      <form><orth>ab</orth></form>
      <sense><cit type="trans"><quote>ice cream</quote></cit></sense>
    </entry>
    <entry>
      <form><orth>árbol<note>bot.</note></orth></form>
      <sense><cit type="trans"><quote>tree</quote></cit></sense>
    </entry>
  </body></text>
  <orth>outside</orth>
</TEI>`

func TestParse(t *testing.T) {
	e, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 3, e.Count)
	assert.Equal(t, []string{" casa ", "ab", "árbol"}, e.Orths)
	assert.Equal(t, []string{"casa", "árbol"}, e.Headwords())
	assert.Equal(t, []string{"house", "home", "tree"}, e.Translations())
}

func TestParseWithoutNamespace(t *testing.T) {
	doc := `<body><entry><orth>perro</orth><quote>dog</quote></entry></body>`
	e, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"perro"}, e.Headwords())
	assert.Equal(t, []string{"dog"}, e.Translations())
}

func TestParsePrefixedNamespace(t *testing.T) {
	doc := `<t:TEI xmlns:t="http://www.tei-c.org/ns/1.0"><t:entry><t:orth>gato</t:orth><t:quote>cat</t:quote></t:entry></t:TEI>`
	e, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"gato"}, e.Headwords())
	assert.Equal(t, []string{"cat"}, e.Translations())
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unclosed", `<TEI><entry><orth>casa</orth>`},
		{"mismatched", `<TEI><entry><orth>casa</quote></entry></TEI>`},
		{"garbage", `not xml at all <<`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
			assert.Nil(t, e)
		})
	}
}

func TestTranslationsRequireLetters(t *testing.T) {
	e := &Entries{Quotes: []string{"house", "to be", "x2", "", "  дом  "}}
	assert.Equal(t, []string{"house", "дом"}, e.Translations())
}
