package dna

import "fmt"

// ValidationError reports malformed or missing local input. It is surfaced
// to the user as guidance rather than as a failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthConfigError reports a missing or unusable credential in the
// hosting configuration
type AuthConfigError struct {
	Reason string
}

func (e *AuthConfigError) Error() string {
	return fmt.Sprintf("credential configuration error: %s", e.Reason)
}

// NetworkError wraps a transport-level failure where no HTTP response
// was received
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling generation service: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError reports an HTTP 401 from the generation service
type AuthError struct{}

func (e *AuthError) Error() string { return "invalid credential" }

// RateLimitError reports an HTTP 429 from the generation service
type RateLimitError struct{}

func (e *RateLimitError) Error() string { return "rate limited" }

// UpstreamError reports any other non-2xx response, carrying the status
// code and response body for diagnostics
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation service returned status %d: %s", e.StatusCode, e.Body)
}

// SchemaError reports a 2xx response whose body is missing the required
// generated_sequence field. Treated as an upstream failure for user
// messaging but kept distinct for diagnostics.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("malformed generation response: %s", e.Reason)
}
