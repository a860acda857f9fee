package dnasdk

import (
	"github.com/go-redis/redis/v8"

	"github.com/8bitsats/Agentic-DNA/pkg/action"
	"github.com/8bitsats/Agentic-DNA/pkg/config"
	"github.com/8bitsats/Agentic-DNA/pkg/dna"
	"github.com/8bitsats/Agentic-DNA/pkg/dna/arc"
	"github.com/8bitsats/Agentic-DNA/pkg/interfaces"
	"github.com/8bitsats/Agentic-DNA/pkg/logging"
	"github.com/8bitsats/Agentic-DNA/pkg/memory"
	"github.com/8bitsats/Agentic-DNA/pkg/tracing"
	"github.com/8bitsats/Agentic-DNA/pkg/traits"
)

// NewGenerateAction creates the DNA generation action
func NewGenerateAction(options ...action.GenerateOption) *action.GenerateAction {
	return action.NewGenerateAction(options...)
}

// NewParser creates a parser for free-text generation requests
func NewParser() *dna.Parser {
	return dna.NewParser()
}

// NewArcClient creates a client for the Arc generation service
func NewArcClient(credential string, options ...arc.Option) *arc.Client {
	return arc.NewClient(credential, options...)
}

// NewRedisStore creates a Redis-backed outcome store
func NewRedisStore(client *redis.Client, options ...memory.RedisOption) *memory.RedisStore {
	return memory.NewRedisStore(client, options...)
}

// NewBufferStore creates an in-memory outcome store
func NewBufferStore() *memory.BufferStore {
	return memory.NewBufferStore()
}

// NewLogger creates the standard structured logger
func NewLogger(options ...logging.Option) *logging.ZeroLogger {
	return logging.New(options...)
}

// NewOTelTracer creates an OpenTelemetry tracer for generation calls
func NewOTelTracer(cfg tracing.OTelConfig) (*tracing.OTelTracer, error) {
	return tracing.NewOTelTracer(cfg)
}

// NewTracedGenerator wraps a sequence generator with spans around each
// external call
func NewTracedGenerator(generator interfaces.SequenceGenerator, tracer *tracing.OTelTracer) *tracing.GeneratorMiddleware {
	return tracing.NewGeneratorMiddleware(generator, tracer)
}

// LoadConfig loads pipeline configuration from a YAML file
func LoadConfig(filePath string) (*config.Config, error) {
	return config.LoadFromFile(filePath)
}

// LoadMappingTable loads a trait decode table from a YAML file
func LoadMappingTable(filePath string) (traits.MappingTable, int, error) {
	return traits.LoadMappingTable(filePath)
}

// FromConfig wires an action, its generator and outcome store from
// loaded configuration
func FromConfig(cfg *config.Config, logger logging.Logger) (*action.GenerateAction, *interfaces.ActionContext, error) {
	var arcOptions []arc.Option
	if cfg.Arc.Endpoint != "" {
		arcOptions = append(arcOptions, arc.WithBaseURL(cfg.Arc.Endpoint))
	}
	if cfg.Arc.PollSeconds > 0 {
		arcOptions = append(arcOptions, arc.WithPollSeconds(cfg.Arc.PollSeconds))
	}
	arcOptions = append(arcOptions, arc.WithLogger(logger))

	factory := func(credential string) interfaces.SequenceGenerator {
		return arc.NewClient(credential, arcOptions...)
	}
	if cfg.Tracing.Enabled {
		tracer, err := tracing.NewOTelTracer(tracing.OTelConfig{
			Enabled:           true,
			ServiceName:       cfg.Tracing.ServiceName,
			CollectorEndpoint: cfg.Tracing.CollectorEndpoint,
		})
		if err != nil {
			return nil, nil, err
		}
		arcFactory := factory
		factory = func(credential string) interfaces.SequenceGenerator {
			return tracing.NewGeneratorMiddleware(arcFactory(credential), tracer)
		}
	}

	actionOptions := []action.GenerateOption{
		action.WithLogger(logger),
		action.WithGeneratorFactory(factory),
	}
	if len(cfg.Triggers) > 0 {
		actionOptions = append(actionOptions, action.WithTriggerPhrases(cfg.Triggers...))
	}
	if cfg.TraitTablePath != "" {
		table, chunkSize, err := traits.LoadMappingTable(cfg.TraitTablePath)
		if err != nil {
			return nil, nil, err
		}
		actionOptions = append(actionOptions, action.WithTraitDecoding(table, chunkSize))
	}

	store := memory.NewRedisStore(redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}))

	actx := &interfaces.ActionContext{
		Credential: cfg.Credential(),
		Memory:     store,
	}

	return action.NewGenerateAction(actionOptions...), actx, nil
}
