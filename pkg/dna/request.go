package dna

import (
	"strings"
)

// Alphabet is the set of valid nucleotide characters
const Alphabet = "ACGT"

// GenerationRequest is the canonical parameter set sent to the
// sequence-generation service. Field names follow the external API.
type GenerationRequest struct {
	Sequence                string  `json:"sequence"`
	NumTokens               int     `json:"num_tokens"`
	Temperature             float64 `json:"temperature"`
	TopK                    int     `json:"top_k"`
	TopP                    float64 `json:"top_p"`
	RandomSeed              *int64  `json:"random_seed,omitempty"`
	EnableSampledProbs      bool    `json:"enable_sampled_probs,omitempty"`
	EnableLogits            bool    `json:"enable_logits,omitempty"`
	EnableElapsedMsPerToken bool    `json:"enable_elapsed_ms_per_token,omitempty"`
}

// RequestPartial holds the caller-supplied subset of generation parameters.
// Nil pointer fields mean "not provided" so explicit zero values survive the
// merge with defaults.
type RequestPartial struct {
	Sequence                string
	NumTokens               *int
	Temperature             *float64
	TopK                    *int
	TopP                    *float64
	RandomSeed              *int64
	EnableSampledProbs      *bool
	EnableLogits            *bool
	EnableElapsedMsPerToken *bool
}

// Defaults supplies values for parameters absent from a RequestPartial
type Defaults struct {
	NumTokens   int
	Temperature float64
	TopK        int
	TopP        float64
}

// DefaultParams returns the standard generation defaults
func DefaultParams() Defaults {
	return Defaults{
		NumTokens:   100,
		Temperature: 0.7,
		TopK:        3,
		TopP:        1,
	}
}

// ValidSequence reports whether s is a non-empty string over the
// nucleotide alphabet, case-insensitive
func ValidSequence(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range strings.ToUpper(s) {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

// Build merges a partial request with defaults into a canonical request.
// The sequence must be present before defaults apply; defaults never
// replace an explicitly provided value, even an explicit zero.
func Build(partial RequestPartial, defaults Defaults) (*GenerationRequest, error) {
	if strings.TrimSpace(partial.Sequence) == "" {
		return nil, &ValidationError{Field: "sequence", Reason: "must not be empty"}
	}
	if !ValidSequence(partial.Sequence) {
		return nil, &ValidationError{Field: "sequence", Reason: "must only contain A, C, G, T"}
	}

	req := &GenerationRequest{
		Sequence:    strings.ToUpper(partial.Sequence),
		NumTokens:   defaults.NumTokens,
		Temperature: defaults.Temperature,
		TopK:        defaults.TopK,
		TopP:        defaults.TopP,
	}

	if partial.NumTokens != nil {
		req.NumTokens = *partial.NumTokens
	}
	if partial.Temperature != nil {
		req.Temperature = *partial.Temperature
	}
	if partial.TopK != nil {
		req.TopK = *partial.TopK
	}
	if partial.TopP != nil {
		req.TopP = *partial.TopP
	}
	if partial.RandomSeed != nil {
		seed := *partial.RandomSeed
		req.RandomSeed = &seed
	}
	if partial.EnableSampledProbs != nil {
		req.EnableSampledProbs = *partial.EnableSampledProbs
	}
	if partial.EnableLogits != nil {
		req.EnableLogits = *partial.EnableLogits
	}
	if partial.EnableElapsedMsPerToken != nil {
		req.EnableElapsedMsPerToken = *partial.EnableElapsedMsPerToken
	}

	return req, nil
}
