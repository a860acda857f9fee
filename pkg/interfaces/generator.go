package interfaces

import (
	"context"

	"github.com/8bitsats/Agentic-DNA/pkg/dna"
)

// SequenceGenerator issues calls against an external sequence-generation
// service. Implementations map every transport and HTTP outcome to one of
// the typed errors in the dna package so callers can match exhaustively.
type SequenceGenerator interface {
	// Generate issues a single generation call and suspends until the
	// service responds or the transport times out. No automatic retry.
	Generate(ctx context.Context, req *dna.GenerationRequest) (*dna.GenerationResponse, error)
}
