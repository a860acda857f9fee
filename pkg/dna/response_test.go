package dna

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseUnmarshalKeepsExtensionFields(t *testing.T) {
	body := `{
		"generated_sequence": "ATGCCTA",
		"sampled_probs": [0.9, 0.8],
		"elapsed_ms_per_token": 12.5
	}`

	var resp GenerationResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	assert.Equal(t, "ATGCCTA", resp.GeneratedSequence)
	assert.Contains(t, resp.Extra, "sampled_probs")
	assert.Contains(t, resp.Extra, "elapsed_ms_per_token")
	assert.NotContains(t, resp.Extra, "generated_sequence")
}

func TestResponseUnmarshalMinimalBody(t *testing.T) {
	var resp GenerationResponse
	require.NoError(t, json.Unmarshal([]byte(`{"generated_sequence":"ATG"}`), &resp))

	assert.Equal(t, "ATG", resp.GeneratedSequence)
	assert.Empty(t, resp.Extra)
}

func TestResponseMarshalRoundTrip(t *testing.T) {
	original := GenerationResponse{
		GeneratedSequence: "ATGC",
		Extra: map[string]json.RawMessage{
			"logits": json.RawMessage(`[1.0, 2.0]`),
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded GenerationResponse
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original.GeneratedSequence, decoded.GeneratedSequence)
	assert.Contains(t, decoded.Extra, "logits")
}
