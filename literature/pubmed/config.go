package pubmed

import (
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is the public E-utilities endpoint.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

// Config holds E-utilities client settings.
type Config struct {
	// BaseURL is the E-utilities root, without a trailing slash.
	BaseURL string

	// APIKey raises the rate limit from 3 to 10 requests per second.
	APIKey string

	// Tool and Email identify the caller to NCBI.
	Tool  string
	Email string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond overrides the rate derived from APIKey when positive.
	RequestsPerSecond float64

	// FetchBatchSize caps the identifiers sent in one efetch request.
	FetchBatchSize int
}

// DefaultConfig returns settings for anonymous access to the public endpoint.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Tool:           "litsearch",
		Timeout:        30 * time.Second,
		FetchBatchSize: 200,
	}
}

// Rate returns the request rate the client will use.
func (c *Config) Rate() float64 {
	if c.RequestsPerSecond > 0 {
		return c.RequestsPerSecond
	}
	if c.APIKey != "" {
		return 10
	}
	return 3
}

// Validate normalizes and checks the configuration.
func (c *Config) Validate() error {
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: Timeout must be positive", ErrInvalidConfig)
	}
	if c.FetchBatchSize <= 0 {
		return fmt.Errorf("%w: FetchBatchSize must be positive", ErrInvalidConfig)
	}
	return nil
}
