// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// GeneratorHost is the base URL for the OpenAI-compatible chat completion API.
	// Example: "https://api.groq.com/openai/v1"
	GeneratorHost string

	// GeneratorModel is the model identifier used for query reformulation.
	// Example: "llama-3.1-8b-instant"
	GeneratorModel string

	// GeneratorToken is the bearer token for the generator API.
	GeneratorToken string

	// Temperature is the sampling temperature for generation.
	// Default: 0.7
	Temperature float64

	// MaxOutputTokens caps the length of each generated reply.
	// Default: 512
	MaxOutputTokens int

	// EncoderBackend selects the encoder implementation ("tei" or "openai").
	EncoderBackend string

	// EncoderHost is the base URL of the encoder service.
	// Example: "http://localhost:8080" for text-embeddings-inference
	EncoderHost string

	// EncoderModel is the encoder model identifier.
	// Only sent to OpenAI-compatible backends. TEI serves a single model.
	EncoderModel string

	// EncoderToken is the bearer token for the encoder service, if any.
	EncoderToken string

	// Dimensions is the width of the encoder's hidden states.
	// Default: 768
	Dimensions int

	// MaxTokens is the maximum sequence length fed to the encoder.
	// Default: 512
	MaxTokens int

	// Timeout bounds every call to the generator or encoder.
	// Default: 60s
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithGeneratorHost sets the generator service host URL.
func WithGeneratorHost(host string) ConfigOption {
	return func(c *Config) {
		c.GeneratorHost = host
	}
}

// WithGeneratorModel sets the generator model identifier.
func WithGeneratorModel(model string) ConfigOption {
	return func(c *Config) {
		c.GeneratorModel = model
	}
}

// WithGeneratorToken sets the generator API token.
func WithGeneratorToken(token string) ConfigOption {
	return func(c *Config) {
		c.GeneratorToken = token
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = t
	}
}

// WithMaxOutputTokens sets the generation length cap.
func WithMaxOutputTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxOutputTokens = n
	}
}

// WithEncoderBackend selects the encoder implementation.
func WithEncoderBackend(backend string) ConfigOption {
	return func(c *Config) {
		c.EncoderBackend = backend
	}
}

// WithEncoderHost sets the encoder service host URL.
func WithEncoderHost(host string) ConfigOption {
	return func(c *Config) {
		c.EncoderHost = host
	}
}

// WithEncoderModel sets the encoder model identifier.
func WithEncoderModel(model string) ConfigOption {
	return func(c *Config) {
		c.EncoderModel = model
	}
}

// WithEncoderToken sets the encoder API token.
func WithEncoderToken(token string) ConfigOption {
	return func(c *Config) {
		c.EncoderToken = token
	}
}

// WithDimensions sets the expected encoder width.
func WithDimensions(dim int) ConfigOption {
	return func(c *Config) {
		c.Dimensions = dim
	}
}

// WithMaxTokens sets the encoder's maximum sequence length.
func WithMaxTokens(n int) ConfigOption {
	return func(c *Config) {
		c.MaxTokens = n
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// DefaultConfig returns a Config pointing at Groq for generation and a local
// text-embeddings-inference server for encoding.
func DefaultConfig() *Config {
	return &Config{
		GeneratorHost:   "https://api.groq.com/openai/v1",
		GeneratorModel:  "llama-3.1-8b-instant",
		Temperature:     0.7,
		MaxOutputTokens: 512,
		EncoderBackend:  EncoderBackendTEI,
		EncoderHost:     "http://localhost:8080",
		EncoderModel:    "microsoft/BiomedNLP-BiomedBERT-base-uncased-abstract-fulltext",
		Dimensions:      768,
		MaxTokens:       512,
		Timeout:         60 * time.Second,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//   cfg := NewConfig(
//       WithGeneratorToken(os.Getenv("GROQ_API_KEY")),
//       WithEncoderHost("http://tei:8080"),
//   )
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// The generator host always ends with /v1. The encoder host gets the suffix
// only for the openai backend since TEI routes live at the server root.
func (c *Config) Normalize() {
	c.GeneratorHost = ensureV1(c.GeneratorHost)
	c.EncoderBackend = strings.ToLower(strings.TrimSpace(c.EncoderBackend))
	if c.EncoderBackend == EncoderBackendOpenAI {
		c.EncoderHost = ensureV1(c.EncoderHost)
	} else {
		c.EncoderHost = strings.TrimSuffix(c.EncoderHost, "/")
	}
}

func ensureV1(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	// Remove trailing slash if present before adding /v1
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.GeneratorHost == "" {
		return errors.New("ai config: GeneratorHost is required")
	}
	if c.GeneratorModel == "" {
		return errors.New("ai config: GeneratorModel is required")
	}
	if !slices.Contains(EncoderBackends, c.EncoderBackend) {
		return errors.New("ai config: EncoderBackend must be one of " + strings.Join(EncoderBackends, ", "))
	}
	if c.EncoderHost == "" {
		return errors.New("ai config: EncoderHost is required")
	}
	if c.EncoderBackend == EncoderBackendOpenAI && c.EncoderModel == "" {
		return errors.New("ai config: EncoderModel is required for the openai backend")
	}
	if c.Dimensions <= 0 {
		return errors.New("ai config: Dimensions must be positive")
	}
	if c.MaxTokens <= 0 {
		return errors.New("ai config: MaxTokens must be positive")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("ai config: Temperature must be between 0 and 2")
	}
	if c.Timeout <= 0 {
		return errors.New("ai config: Timeout must be positive")
	}
	return nil
}
