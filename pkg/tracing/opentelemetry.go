package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/8bitsats/Agentic-DNA/pkg/dna"
	"github.com/8bitsats/Agentic-DNA/pkg/interfaces"
)

// OTelTracer implements tracing using OpenTelemetry
type OTelTracer struct {
	tracer      trace.Tracer
	enabled     bool
	serviceName string
}

// OTelConfig contains configuration for OpenTelemetry
type OTelConfig struct {
	// Enabled determines whether OpenTelemetry tracing is enabled
	Enabled bool

	// ServiceName is the name of the service
	ServiceName string

	// CollectorEndpoint is the endpoint of the OpenTelemetry collector
	CollectorEndpoint string
}

// NewOTelTracer creates a new OpenTelemetry tracer
func NewOTelTracer(config OTelConfig) (*OTelTracer, error) {
	if !config.Enabled {
		return &OTelTracer{
			enabled: false,
		}, nil
	}

	ctx := context.Background()
	exporter, err := otlptrace.New(
		ctx,
		otlptracegrpc.NewClient(
			otlptracegrpc.WithEndpoint(config.CollectorEndpoint),
			otlptracegrpc.WithInsecure(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return &OTelTracer{
		tracer:      tp.Tracer(config.ServiceName),
		enabled:     true,
		serviceName: config.ServiceName,
	}, nil
}

// StartSpan starts a new span
func (t *OTelTracer) StartSpan(ctx context.Context, name string, attributes map[string]string) (context.Context, trace.Span) {
	if !t.enabled {
		return ctx, trace.SpanFromContext(ctx)
	}

	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		attrs = append(attrs, attribute.String(k, v))
	}

	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan ends a span, recording err when present
func (t *OTelTracer) EndSpan(span trace.Span, err error) {
	if !t.enabled {
		return
	}

	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

// GeneratorMiddleware wraps a sequence generator with a span around each
// external call
type GeneratorMiddleware struct {
	generator interfaces.SequenceGenerator
	tracer    *OTelTracer
}

// NewGeneratorMiddleware creates a traced sequence generator
func NewGeneratorMiddleware(generator interfaces.SequenceGenerator, tracer *OTelTracer) *GeneratorMiddleware {
	return &GeneratorMiddleware{
		generator: generator,
		tracer:    tracer,
	}
}

// Generate issues the call inside a span carrying the request parameters
func (g *GeneratorMiddleware) Generate(ctx context.Context, req *dna.GenerationRequest) (*dna.GenerationResponse, error) {
	attributes := map[string]string{
		"dna.sequence_len": fmt.Sprintf("%d", len(req.Sequence)),
		"dna.num_tokens":   fmt.Sprintf("%d", req.NumTokens),
		"dna.temperature":  fmt.Sprintf("%g", req.Temperature),
		"dna.top_k":        fmt.Sprintf("%d", req.TopK),
		"dna.top_p":        fmt.Sprintf("%g", req.TopP),
	}

	ctx, span := g.tracer.StartSpan(ctx, "dna.generate", attributes)

	resp, err := g.generator.Generate(ctx, req)
	if err != nil {
		g.tracer.EndSpan(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("dna.generated_len", len(resp.GeneratedSequence)))
	g.tracer.EndSpan(span, nil)
	return resp, nil
}
