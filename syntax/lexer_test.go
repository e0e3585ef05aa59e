package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []token) []tokenType {
	types := make([]tokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.typ
	}
	return types
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		types []tokenType
	}{
		{
			name:  "times loop with braces",
			input: "3.times { create :user }",
			types: []tokenType{tokInt, tokDot, tokIdent, tokLBrace, tokIdent, tokSymbol, tokRBrace, tokEOF},
		},
		{
			name:  "keyword argument label",
			input: "create(:user, admin: true)",
			types: []tokenType{tokIdent, tokLParen, tokSymbol, tokComma, tokLabel, tokIdent, tokRParen, tokEOF},
		},
		{
			name:  "do end block with params",
			input: "3.times do |i|\nend",
			types: []tokenType{tokInt, tokDot, tokIdent, tokDo, tokPipe, tokIdent, tokPipe, tokTerm, tokEnd, tokEOF},
		},
		{
			name:  "constant receiver",
			input: "Factory.create :widget",
			types: []tokenType{tokConst, tokDot, tokIdent, tokSymbol, tokEOF},
		},
		{
			name:  "comment runs to end of line",
			input: "create :user # flagged\ncreate :post",
			types: []tokenType{tokIdent, tokSymbol, tokTerm, tokIdent, tokSymbol, tokEOF},
		},
		{
			name:  "semicolon terminates a statement",
			input: "create :a; create :b",
			types: []tokenType{tokIdent, tokSymbol, tokTerm, tokIdent, tokSymbol, tokEOF},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tokens := newLexer([]byte(tc.input)).tokenize()
			assert.Equal(t, tc.types, tokenTypes(tokens))
		})
	}
}

func TestTokenizeValuesAndSpans(t *testing.T) {
	t.Parallel()

	input := `create :user, name: "bo b"`
	tokens := newLexer([]byte(input)).tokenize()
	require.Len(t, tokens, 6) // ident, symbol, comma, label, string, EOF

	assert.Equal(t, "create", tokens[0].text)
	assert.Equal(t, "user", tokens[1].text)
	assert.Equal(t, "name", tokens[3].text)
	assert.Equal(t, "bo b", tokens[4].text)

	// spans index the original buffer, delimiters included
	assert.Equal(t, ":user", input[tokens[1].start:tokens[1].end])
	assert.Equal(t, "name:", input[tokens[3].start:tokens[3].end])
	assert.Equal(t, `"bo b"`, input[tokens[4].start:tokens[4].end])
}

func TestTokenizePredicateNames(t *testing.T) {
	t.Parallel()

	tokens := newLexer([]byte("valid?")).tokenize()
	require.Len(t, tokens, 2)
	assert.Equal(t, tokIdent, tokens[0].typ)
	assert.Equal(t, "valid?", tokens[0].text)
}
