package mibparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/mibcontext-mcp/pkg/types"
)

func TestPreprocess_StripsCommentsAndBlanks(t *testing.T) {
	source := "-- header comment\n\nfoo OBJECT IDENTIFIER ::= { mib-2 1 }\n   -- indented comment\n\nEND\n"

	lines, err := preprocess(source)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"foo OBJECT IDENTIFIER ::= { mib-2 1 }",
		"END",
	}, lines)
}

func TestPreprocess_ReassemblesQuotedValue(t *testing.T) {
	source := "DESCRIPTION \"one\ntwo\nthree\"\n"

	lines, err := preprocess(source)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, `DESCRIPTION "one two three"`, lines[0])
}

func TestPreprocess_SingleLineQuoteUntouched(t *testing.T) {
	source := "DESCRIPTION \"all on one line\"\nSTATUS current\n"

	lines, err := preprocess(source)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`DESCRIPTION "all on one line"`,
		"STATUS current",
	}, lines)
}

func TestPreprocess_UnterminatedQuote(t *testing.T) {
	source := "DESCRIPTION \"never closes\nmore text\n"

	_, err := preprocess(source)
	assert.ErrorIs(t, err, types.ErrUnterminatedQuote)
}

func TestQuoteOpen(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`DESCRIPTION "closed"`, false},
		{`DESCRIPTION "open`, true},
		{`no quotes at all`, false},
		{`"`, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, quoteOpen(tt.line), "line: %s", tt.line)
	}
}
