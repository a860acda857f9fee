package interfaces

import (
	"context"
	"encoding/json"
	"time"
)

// OutcomeStatus is the terminal state of one action invocation
type OutcomeStatus string

const (
	// OutcomeCompleted means the action produced the requested result
	OutcomeCompleted OutcomeStatus = "completed"

	// OutcomeRejected means the input was not usable and the persisted
	// text is guidance for the user
	OutcomeRejected OutcomeStatus = "rejected"

	// OutcomeFailed means a pipeline stage failed; the persisted text is
	// a user-facing failure message with detail kept in logs
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome is the persisted result of one handled message
type Outcome struct {
	// ID uniquely identifies the outcome record
	ID string

	// ConversationID ties the outcome to the conversation it belongs to
	ConversationID string

	// Status is the terminal state the action reached
	Status OutcomeStatus

	// Text is the user-facing message to deliver
	Text string

	// ErrorKind names the failure category for failed outcomes, empty
	// otherwise
	ErrorKind string

	// Traits is the serialized trait record decoded from the generated
	// sequence, when trait decoding is configured. Ownership passes to
	// the persistence collaborator with the outcome.
	Traits json.RawMessage

	// CreatedAt is when the outcome was produced
	CreatedAt time.Time
}

// Memory is the persistence sink outcomes are handed to. The core writes
// exactly one outcome per handled message and does not own its storage
// lifetime.
type Memory interface {
	// WriteOutcome persists an outcome for later delivery
	WriteOutcome(ctx context.Context, outcome Outcome) error

	// Outcomes retrieves up to limit recent outcomes for a conversation,
	// oldest first. limit <= 0 means no limit.
	Outcomes(ctx context.Context, conversationID string, limit int) ([]Outcome, error)
}
