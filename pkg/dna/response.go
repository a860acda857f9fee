package dna

import (
	"encoding/json"
)

// GenerationResponse is the result of a generation call. The service may
// return extra fields (sampled probabilities, logits, timing) depending on
// the request's enable flags; those are carried opaquely in Extra.
type GenerationResponse struct {
	GeneratedSequence string
	Extra             map[string]json.RawMessage
}

// UnmarshalJSON splits the known generated_sequence field from the
// open-ended remainder of the response body
func (r *GenerationResponse) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if seq, ok := raw["generated_sequence"]; ok {
		if err := json.Unmarshal(seq, &r.GeneratedSequence); err != nil {
			return err
		}
		delete(raw, "generated_sequence")
	}

	if len(raw) > 0 {
		r.Extra = raw
	}
	return nil
}

// MarshalJSON re-assembles the response into its wire form
func (r GenerationResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+1)
	for k, v := range r.Extra {
		out[k] = v
	}
	seq, err := json.Marshal(r.GeneratedSequence)
	if err != nil {
		return nil, err
	}
	out["generated_sequence"] = seq
	return json.Marshal(out)
}
