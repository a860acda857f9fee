package action

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/8bitsats/Agentic-DNA/pkg/dna"
	"github.com/8bitsats/Agentic-DNA/pkg/dna/arc"
	"github.com/8bitsats/Agentic-DNA/pkg/interfaces"
	"github.com/8bitsats/Agentic-DNA/pkg/logging"
	"github.com/8bitsats/Agentic-DNA/pkg/traits"
)

// handleState tracks where one invocation is in the dispatch lifecycle
type handleState string

const (
	stateValidated handleState = "validated"
	stateExecuting handleState = "executing"
	stateCompleted handleState = "completed"
	stateRejected  handleState = "rejected"
	stateFailed    handleState = "failed"
)

const (
	msgCredentialMissing = "I can't generate DNA right now: the generation service is not configured."
	msgParseGuidance     = `I couldn't find generation parameters in that request. Try something like: "generate a DNA sequence starting with ATG, length 50".`
	msgGenerationFailed  = "DNA generation failed. Please try again later."
	msgSequencePrefix    = "Generated DNA sequence: "
)

// GeneratorFactory builds a sequence generator from a resolved credential
type GeneratorFactory func(credential string) interfaces.SequenceGenerator

// GenerateAction turns a free-text request into a generation call and a
// persisted outcome. It holds no cross-message mutable state; concurrent
// messages are independent invocations.
type GenerateAction struct {
	parser       *dna.Parser
	defaults     dna.Defaults
	triggers     []string
	logger       logging.Logger
	newGenerator GeneratorFactory

	// trait decoding is enabled when a mapping table is configured
	table     traits.MappingTable
	chunkSize int
}

// GenerateOption represents an option for configuring the action
type GenerateOption func(*GenerateAction)

// WithLogger sets the logger for the action
func WithLogger(logger logging.Logger) GenerateOption {
	return func(a *GenerateAction) {
		a.logger = logger
	}
}

// WithDefaults overrides the generation parameter defaults
func WithDefaults(defaults dna.Defaults) GenerateOption {
	return func(a *GenerateAction) {
		a.defaults = defaults
	}
}

// WithTriggerPhrases overrides the phrases that validate the action
func WithTriggerPhrases(phrases ...string) GenerateOption {
	return func(a *GenerateAction) {
		a.triggers = phrases
	}
}

// WithGeneratorFactory overrides how a generator is built from the
// resolved credential
func WithGeneratorFactory(factory GeneratorFactory) GenerateOption {
	return func(a *GenerateAction) {
		a.newGenerator = factory
	}
}

// WithTraitDecoding enables decoding successful generations into a trait
// record persisted alongside the sequence outcome
func WithTraitDecoding(table traits.MappingTable, chunkSize int) GenerateOption {
	return func(a *GenerateAction) {
		a.table = table
		a.chunkSize = chunkSize
	}
}

var _ interfaces.Action = (*GenerateAction)(nil)

// NewGenerateAction creates the DNA generation action
func NewGenerateAction(options ...GenerateOption) *GenerateAction {
	a := &GenerateAction{
		parser:   dna.NewParser(),
		defaults: dna.DefaultParams(),
		triggers: []string{"generate dna", "dna sequence", "create dna"},
		logger:   logging.New(),
		newGenerator: func(credential string) interfaces.SequenceGenerator {
			return arc.NewClient(credential)
		},
	}

	for _, option := range options {
		option(a)
	}

	return a
}

// Name implements interfaces.Action.Name
func (a *GenerateAction) Name() string {
	return "GENERATE_DNA"
}

// Description implements interfaces.Action.Description
func (a *GenerateAction) Description() string {
	return "Generates a DNA sequence from a starting subsequence and desired length using an external generation service"
}

// Validate reports whether the message asks for DNA generation: either a
// trigger phrase appears in the text or the parser recognizes it
func (a *GenerateAction) Validate(ctx context.Context, actx *interfaces.ActionContext, msg interfaces.Message) bool {
	text := strings.ToLower(msg.Text)
	for _, trigger := range a.triggers {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	return a.parser.Parse(msg.Text) != nil
}

// Handle runs the pipeline: parse, build, generate, persist. Every path
// persists exactly one outcome and returns true; no error escapes to the
// hosting runtime.
func (a *GenerateAction) Handle(ctx context.Context, actx *interfaces.ActionContext, msg interfaces.Message) bool {
	if actx.Credential == "" {
		err := &dna.AuthConfigError{Reason: "credential is not set"}
		a.logger.Error(ctx, "Generation credential missing", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"state":           string(stateFailed),
			"error":           err.Error(),
		})
		a.persist(ctx, actx, msg, interfaces.OutcomeFailed, msgCredentialMissing, errorKind(err), nil)
		return true
	}

	partial := a.parser.Parse(msg.Text)
	if partial == nil {
		a.logger.Debug(ctx, "No generation parameters recognized", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"state":           string(stateRejected),
		})
		a.persist(ctx, actx, msg, interfaces.OutcomeRejected, msgParseGuidance, "", nil)
		return true
	}

	req, err := dna.Build(*partial, a.defaults)
	if err != nil {
		a.logger.Debug(ctx, "Generation request failed validation", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"state":           string(stateRejected),
			"error":           err.Error(),
		})
		a.persist(ctx, actx, msg, interfaces.OutcomeRejected, msgParseGuidance, "", nil)
		return true
	}

	a.logger.Info(ctx, "Dispatching generation request", map[string]interface{}{
		"conversation_id": msg.ConversationID,
		"state":           string(stateExecuting),
		"sequence":        req.Sequence,
		"num_tokens":      req.NumTokens,
	})

	resp, err := a.newGenerator(actx.Credential).Generate(ctx, req)
	if err != nil {
		a.logger.Error(ctx, "Generation call failed", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"state":           string(stateFailed),
			"error_kind":      errorKind(err),
			"error":           err.Error(),
		})
		a.persist(ctx, actx, msg, interfaces.OutcomeFailed, msgGenerationFailed, errorKind(err), nil)
		return true
	}

	a.logger.Info(ctx, "Generation completed", map[string]interface{}{
		"conversation_id": msg.ConversationID,
		"state":           string(stateCompleted),
		"generated_len":   len(resp.GeneratedSequence),
	})
	a.persist(ctx, actx, msg, interfaces.OutcomeCompleted, msgSequencePrefix+resp.GeneratedSequence, "", a.decodeTraits(ctx, msg, resp.GeneratedSequence))
	return true
}

// decodeTraits decodes the generated sequence through the configured
// mapping table, returning the serialized record to attach to the
// success outcome. Returns nil when decoding is not configured or
// nothing matched.
func (a *GenerateAction) decodeTraits(ctx context.Context, msg interfaces.Message, sequence string) json.RawMessage {
	if a.table == nil {
		return nil
	}

	record := traits.Decode(sequence, a.table, a.chunkSize)
	if len(record) == 0 {
		return nil
	}

	serialized, err := json.Marshal(record)
	if err != nil {
		a.logger.Error(ctx, "Failed to serialize trait record", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"error":           err.Error(),
		})
		return nil
	}
	return serialized
}

func (a *GenerateAction) persist(ctx context.Context, actx *interfaces.ActionContext, msg interfaces.Message, status interfaces.OutcomeStatus, text, kind string, decoded json.RawMessage) {
	outcome := interfaces.Outcome{
		ID:             uuid.NewString(),
		ConversationID: msg.ConversationID,
		Status:         status,
		Text:           text,
		ErrorKind:      kind,
		Traits:         decoded,
		CreatedAt:      time.Now().UTC(),
	}

	if err := actx.Memory.WriteOutcome(ctx, outcome); err != nil {
		a.logger.Error(ctx, "Failed to persist outcome", map[string]interface{}{
			"conversation_id": msg.ConversationID,
			"status":          string(status),
			"error":           err.Error(),
		})
	}
}

// errorKind names the failure category for diagnostics and persisted
// failed outcomes
func errorKind(err error) string {
	var (
		authConfigErr *dna.AuthConfigError
		validationErr *dna.ValidationError
		networkErr    *dna.NetworkError
		authErr       *dna.AuthError
		rateLimitErr  *dna.RateLimitError
		upstreamErr   *dna.UpstreamError
		schemaErr     *dna.SchemaError
	)

	switch {
	case errors.As(err, &authConfigErr):
		return "auth_config"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &networkErr):
		return "network"
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &rateLimitErr):
		return "rate_limit"
	case errors.As(err, &upstreamErr):
		return "upstream"
	case errors.As(err, &schemaErr):
		return "schema"
	default:
		return "unknown"
	}
}
