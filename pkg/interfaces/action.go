package interfaces

import "context"

// Message is an incoming message from the hosting agent runtime
type Message struct {
	// ConversationID identifies the conversation the message belongs to
	ConversationID string

	// Text is the raw message text
	Text string

	// Metadata contains additional information about the message
	Metadata map[string]interface{}
}

// ActionContext supplies the collaborators an action needs from the
// hosting runtime
type ActionContext struct {
	// Credential is the bearer credential for the external service,
	// resolved from configuration. Empty means not configured.
	Credential string

	// Memory is the persistence sink for action outcomes
	Memory Memory
}

// Action is a validate/handle pair triggered by an incoming message
// within the hosting agent runtime
type Action interface {
	// Name returns the name of the action
	Name() string

	// Description returns a description of what the action does
	Description() string

	// Validate reports whether this action applies to the message
	Validate(ctx context.Context, actx *ActionContext, msg Message) bool

	// Handle processes the message. It always resolves to a persisted
	// outcome and returns true; errors never escape to the caller.
	Handle(ctx context.Context, actx *ActionContext, msg Message) bool
}
