package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the operator-supplied configuration for the DNA generation
// pipeline, loaded from YAML
type Config struct {
	// Arc configures the external generation service
	Arc ArcConfig `yaml:"arc"`

	// Triggers are the phrases that validate the generation action; empty
	// means use the built-in defaults
	Triggers []string `yaml:"triggers,omitempty"`

	// TraitTablePath points to the YAML decode table; empty disables
	// trait decoding
	TraitTablePath string `yaml:"trait_table_path,omitempty"`

	// Redis configures the outcome store
	Redis RedisConfig `yaml:"redis"`

	// Tracing configures the OpenTelemetry generation tracer
	Tracing TracingConfig `yaml:"tracing,omitempty"`

	// LogLevel is the minimum log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level,omitempty"`
}

// ArcConfig holds the external generation service settings
type ArcConfig struct {
	// Endpoint is the generation URL; empty means the client default
	Endpoint string `yaml:"endpoint,omitempty"`

	// APIKey is the bearer credential. When empty, the NVIDIA_API_KEY
	// environment variable is consulted.
	APIKey string `yaml:"api_key,omitempty"`

	// PollSeconds is the long-poll hint sent with each request
	PollSeconds int `yaml:"poll_seconds,omitempty"`
}

// TracingConfig contains configuration for OpenTelemetry tracing of
// generation calls
type TracingConfig struct {
	// Enabled determines whether spans are exported
	Enabled bool `yaml:"enabled,omitempty"`

	// ServiceName is the name reported with each span
	ServiceName string `yaml:"service_name,omitempty"`

	// CollectorEndpoint is the OTLP collector endpoint
	CollectorEndpoint string `yaml:"collector_endpoint,omitempty"`
}

// RedisConfig contains configuration for the Redis outcome store
type RedisConfig struct {
	// Addr is the Redis address (e.g. "localhost:6379")
	Addr string `yaml:"addr"`

	// Password is the Redis password
	Password string `yaml:"password,omitempty"`

	// DB is the Redis database number
	DB int `yaml:"db,omitempty"`
}

// CredentialEnvVar is consulted when no API key is configured
const CredentialEnvVar = "NVIDIA_API_KEY"

// Credential resolves the bearer credential, preferring the configured
// key over the environment. Empty means not configured.
func (c *Config) Credential() string {
	if c.Arc.APIKey != "" {
		return c.Arc.APIKey
	}
	return os.Getenv(CredentialEnvVar)
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filePath string) (*Config, error) {
	if !isValidFilePath(filePath) {
		return nil, fmt.Errorf("invalid config file path")
	}

	data, err := os.ReadFile(filePath) // #nosec G304 - Path is validated with isValidFilePath() before use
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// isValidFilePath checks if a file path is valid and safe
func isValidFilePath(filePath string) bool {
	if filePath == "" {
		return false
	}

	cleanPath := filepath.Clean(filePath)
	if strings.Contains(cleanPath, "..") {
		return false
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return false
	}

	if strings.HasPrefix(absPath, "/proc") ||
		strings.HasPrefix(absPath, "/sys") ||
		strings.HasPrefix(absPath, "/dev") {
		return false
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return false
	}

	return fileInfo.Mode().IsRegular()
}
