package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8bitsats/Agentic-DNA/pkg/dna"
)

type stubGenerator struct {
	resp   *dna.GenerationResponse
	err    error
	gotReq *dna.GenerationRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req *dna.GenerationRequest) (*dna.GenerationResponse, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func disabledTracer(t *testing.T) *OTelTracer {
	t.Helper()
	tracer, err := NewOTelTracer(OTelConfig{Enabled: false})
	require.NoError(t, err)
	return tracer
}

func TestDisabledTracerIsNoOp(t *testing.T) {
	tracer := disabledTracer(t)
	ctx := context.Background()

	spanCtx, span := tracer.StartSpan(ctx, "dna.generate", map[string]string{"k": "v"})
	require.NotNil(t, span)
	assert.Equal(t, ctx, spanCtx)

	// EndSpan must tolerate both nil and non-nil errors without a
	// provider configured.
	tracer.EndSpan(span, nil)
	tracer.EndSpan(span, errors.New("ignored"))
}

func TestGeneratorMiddlewarePassesThroughResponse(t *testing.T) {
	gen := &stubGenerator{resp: &dna.GenerationResponse{GeneratedSequence: "ATGCCTA"}}
	traced := NewGeneratorMiddleware(gen, disabledTracer(t))

	req, err := dna.Build(dna.RequestPartial{Sequence: "ATG"}, dna.DefaultParams())
	require.NoError(t, err)

	resp, err := traced.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ATGCCTA", resp.GeneratedSequence)
	assert.Same(t, req, gen.gotReq)
}

func TestGeneratorMiddlewarePassesThroughTypedErrors(t *testing.T) {
	gen := &stubGenerator{err: &dna.UpstreamError{StatusCode: 500, Body: "boom"}}
	traced := NewGeneratorMiddleware(gen, disabledTracer(t))

	req, err := dna.Build(dna.RequestPartial{Sequence: "ATG"}, dna.DefaultParams())
	require.NoError(t, err)

	resp, err := traced.Generate(context.Background(), req)
	assert.Nil(t, resp)

	// The error kind must survive the middleware so the dispatcher can
	// still match it.
	var upstreamErr *dna.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 500, upstreamErr.StatusCode)
}
