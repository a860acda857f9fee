package arc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/8bitsats/Agentic-DNA/pkg/dna"
	"github.com/8bitsats/Agentic-DNA/pkg/logging"
)

// DefaultBaseURL is the Arc Evo2 generation endpoint
const DefaultBaseURL = "https://health.api.nvidia.com/v1/biology/arc/evo2-40b/generate"

// DefaultPollSeconds is the long-poll hint sent to the service; long
// sequences can take substantial wall-clock time to produce
const DefaultPollSeconds = 300

// Client calls the Arc sequence-generation API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	credential  string
	pollSeconds int
	logger      logging.Logger
}

// Option represents an option for configuring the client
type Option func(*Client)

// WithBaseURL sets the generation endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client. Timeout and
// cancellation policy belong to this client, not to Generate.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPollSeconds sets the long-poll hint header value
func WithPollSeconds(seconds int) Option {
	return func(c *Client) {
		c.pollSeconds = seconds
	}
}

// WithLogger sets the logger for the client
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Arc client with the given bearer credential
func NewClient(credential string, options ...Option) *Client {
	client := &Client{
		httpClient:  &http.Client{},
		baseURL:     DefaultBaseURL,
		credential:  credential,
		pollSeconds: DefaultPollSeconds,
		logger:      logging.New(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// Generate issues a single POST with the canonical request as JSON body.
// Every transport and HTTP outcome maps to one of the typed errors in the
// dna package; there is no automatic retry.
func (c *Client) Generate(ctx context.Context, req *dna.GenerationRequest) (*dna.GenerationResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.credential)
	httpReq.Header.Set("NVCF-POLL-SECONDS", fmt.Sprintf("%d", c.pollSeconds))

	c.logger.Debug(ctx, "Calling generation service", map[string]interface{}{
		"sequence_len": len(req.Sequence),
		"num_tokens":   req.NumTokens,
		"temperature":  req.Temperature,
		"top_k":        req.TopK,
		"top_p":        req.TopP,
	})

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &dna.NetworkError{Err: err}
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &dna.NetworkError{Err: err}
	}

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized:
		return nil, &dna.AuthError{}
	case httpResp.StatusCode == http.StatusTooManyRequests:
		return nil, &dna.RateLimitError{}
	case httpResp.StatusCode < 200 || httpResp.StatusCode >= 300:
		return nil, &dna.UpstreamError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp dna.GenerationResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, &dna.SchemaError{Reason: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	if resp.GeneratedSequence == "" {
		reason := "missing generated_sequence"
		var probe map[string]json.RawMessage
		if json.Unmarshal(respBody, &probe) == nil {
			if _, ok := probe["generated_sequence"]; ok {
				reason = "empty generated_sequence"
			}
		}
		return nil, &dna.SchemaError{Reason: reason}
	}

	c.logger.Debug(ctx, "Generation service responded", map[string]interface{}{
		"generated_len": len(resp.GeneratedSequence),
		"extra_fields":  len(resp.Extra),
	})

	return &resp, nil
}
