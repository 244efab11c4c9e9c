package foobar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerSingleTokens(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   TokenKind
	}{
		{"plus", "+", TokPlus},
		{"minus", "-", TokMinus},
		{"arrow", "->", TokArrow},
		{"increment", "++", TokIncrement},
		{"decrement", "--", TokDecrement},
		{"equal", "==", TokEqual},
		{"greater-equal", ">=", TokGreaterEqual},
		{"less-equal", "<=", TokLessEqual},
		{"slice-inc-exc", ".,", TokSliceIncExc},
		{"slice-exc-exc", ",,", TokSliceExcExc},
		{"slice-inc-inc", "..", TokSliceIncInc},
		{"class keyword", "class", TokClass},
		{"isa keyword", "isa", TokIsA},
		{"import keyword", "import", TokImport},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := NewLexer(tc.source).Tokenize()
			require.NoError(t, err)
			require.Len(t, tokens, 2)
			assert.Equal(t, tc.want, tokens[0].Kind)
			assert.Equal(t, TokEOF, tokens[1].Kind)
		})
	}
}

func TestLexerVAndVV(t *testing.T) {
	tokens, err := NewLexer("a V b VV c").Tokenize()
	require.NoError(t, err)

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{TokIdentifier, TokOr, TokIdentifier, TokXor, TokIdentifier, TokEOF}, kinds)
}

func TestLexerVIsNotSplitFromLongerIdentifier(t *testing.T) {
	tokens, err := NewLexer("Vehicle").Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokIdentifier, tokens[0].Kind)
	assert.Equal(t, "Vehicle", tokens[0].Text())
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   any
	}{
		{"integer", "42", 42},
		{"float", "3.14", 3.14},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := NewLexer(tc.source).Tokenize()
			require.NoError(t, err)
			assert.Equal(t, TokNumber, tokens[0].Kind)
			assert.Equal(t, tc.want, tokens[0].Value)
		})
	}
}

func TestLexerNumberStopsAtSliceDot(t *testing.T) {
	tokens, err := NewLexer("1..5").Tokenize()
	require.NoError(t, err)

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{TokNumber, TokSliceIncInc, TokNumber, TokEOF}, kinds)
}

func TestLexerStringEscapes(t *testing.T) {
	tokens, err := NewLexer(`"line\nbreak\ttab"`).Tokenize()
	require.NoError(t, err)
	require.Equal(t, TokStringLiteral, tokens[0].Kind)
	assert.Equal(t, "line\nbreak\ttab", tokens[0].Text())
}

func TestLexerUnterminatedStringFails(t *testing.T) {
	_, err := NewLexer(`"oops`).Tokenize()
	require.Error(t, err)
	var lexErr LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexerUnclosedCommentFails(t *testing.T) {
	_, err := NewLexer("/* never closed").Tokenize()
	require.Error(t, err)
}

func TestLexerSkipsLineAndBlockComments(t *testing.T) {
	tokens, err := NewLexer("integer x // trailing comment\n/* block */ integer y").Tokenize()
	require.NoError(t, err)

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{TokInteger, TokIdentifier, TokInteger, TokIdentifier, TokEOF}, kinds)
}

func TestLexerUnexpectedCharacterFails(t *testing.T) {
	_, err := NewLexer("integer x = 1 @ 2;").Tokenize()
	require.Error(t, err)
	var lexErr LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestLexerTracksLineAndColumn(t *testing.T) {
	tokens, err := NewLexer("integer x;\ninteger y;").Tokenize()
	require.NoError(t, err)

	require.Len(t, tokens, 7)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[4].Line)
}
