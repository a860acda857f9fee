package dna

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecognizedPhrasings(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name          string
		text          string
		wantSequence  string
		wantNumTokens int
	}{
		{
			name:          "starting with then length",
			text:          "generate a DNA sequence starting with ATG, length 50",
			wantSequence:  "ATG",
			wantNumTokens: 47,
		},
		{
			name:          "length then starting with",
			text:          "please generate a sequence of length 30 starting with GATTACA",
			wantSequence:  "GATTACA",
			wantNumTokens: 23,
		},
		{
			name:          "lowercase sequence normalized",
			text:          "starting with atg, length 10",
			wantSequence:  "ATG",
			wantNumTokens: 7,
		},
		{
			name:          "extend phrasing",
			text:          "extend ACGT to 12 bases",
			wantSequence:  "ACGT",
			wantNumTokens: 8,
		},
		{
			name:          "bases from phrasing",
			text:          "give me 20 bases from TTAA",
			wantSequence:  "TTAA",
			wantNumTokens: 16,
		},
		{
			name:          "length of variant",
			text:          "starting with CCGG with a length of 9",
			wantSequence:  "CCGG",
			wantNumTokens: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.text)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantSequence, got.Sequence)
			require.NotNil(t, got.NumTokens)
			assert.Equal(t, tt.wantNumTokens, *got.NumTokens)
		})
	}
}

func TestParseRejections(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name string
		text string
	}{
		{name: "no pattern matches", text: "generate dna"},
		{name: "empty text", text: ""},
		{name: "unrelated text", text: "what's the weather like?"},
		{name: "invalid nucleotide", text: "starting with ATX, length 50"},
		{name: "length equals sequence", text: "starting with ATG, length 3"},
		{name: "length below sequence", text: "starting with ATGATG, length 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, parser.Parse(tt.text))
		})
	}
}

func TestParseFirstMatchWins(t *testing.T) {
	parser := NewParser()

	// Both the "starting with ... length" and "length ... starting with"
	// shapes could fire here; the first pattern in order must win and
	// bind ATG as the sequence.
	got := parser.Parse("starting with ATG, length 50, starting with CCC")
	require.NotNil(t, got)
	assert.Equal(t, "ATG", got.Sequence)
	assert.Equal(t, 47, *got.NumTokens)
}

func TestParseIsPure(t *testing.T) {
	parser := NewParser()
	text := "starting with ATG, length 50"

	first := parser.Parse(text)
	second := parser.Parse(text)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Sequence, second.Sequence)
	assert.Equal(t, *first.NumTokens, *second.NumTokens)
}
