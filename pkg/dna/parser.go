package dna

import (
	"regexp"
	"strconv"
	"strings"
)

// pattern pairs a compiled expression with an extractor mapping its
// capture groups to semantic fields. Group order differs between
// phrasings, so each pattern carries its own extractor.
type pattern struct {
	re      *regexp.Regexp
	extract func(m []string) (seq, length string)
}

var requestPatterns = []pattern{
	{
		// "generate a DNA sequence starting with ATG, length 50"
		re: regexp.MustCompile(`(?i)starting\s+with\s+([A-Za-z]+)\b.*?length\s+(?:of\s+)?(\d+)`),
		extract: func(m []string) (string, string) {
			return m[1], m[2]
		},
	},
	{
		// "generate a DNA sequence of length 50 starting with ATG"
		re: regexp.MustCompile(`(?i)length\s+(?:of\s+)?(\d+)\b.*?starting\s+with\s+([A-Za-z]+)`),
		extract: func(m []string) (string, string) {
			return m[2], m[1]
		},
	},
	{
		// "extend ATG to 50 bases"
		re: regexp.MustCompile(`(?i)extend\s+([A-Za-z]+)\s+to\s+(\d+)\s*(?:bases|bp|nucleotides)?`),
		extract: func(m []string) (string, string) {
			return m[1], m[2]
		},
	},
	{
		// "generate 50 bases from ATG"
		re: regexp.MustCompile(`(?i)(\d+)\s*(?:bases|bp|nucleotides)\s+(?:from|starting\s+from)\s+([A-Za-z]+)`),
		extract: func(m []string) (string, string) {
			return m[2], m[1]
		},
	},
}

// Parser extracts a candidate generation request from free text
type Parser struct {
	patterns []pattern
}

// NewParser creates a parser with the standard request phrasings
func NewParser() *Parser {
	return &Parser{patterns: requestPatterns}
}

// Parse tries each recognized phrasing in order; the first match wins.
// It returns nil when no pattern matches, when the requested total length
// does not exceed the starting sequence, or when the starting sequence
// contains characters outside the nucleotide alphabet. The extracted
// sequence is normalized to uppercase.
func (p *Parser) Parse(text string) *RequestPartial {
	for _, pat := range p.patterns {
		m := pat.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		rawSeq, rawLen := pat.extract(m)
		if !ValidSequence(rawSeq) {
			return nil
		}

		totalLength, err := strconv.Atoi(rawLen)
		if err != nil {
			return nil
		}

		seq := strings.ToUpper(rawSeq)
		numTokens := totalLength - len(seq)
		if numTokens <= 0 {
			return nil
		}

		return &RequestPartial{
			Sequence:  seq,
			NumTokens: &numTokens,
		}
	}
	return nil
}
