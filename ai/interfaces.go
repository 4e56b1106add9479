package ai

import "context"

// TextGenerator turns a prompt into free text.
// Implementations must be thread-safe for concurrent use.
type TextGenerator interface {
	// Generate sends prompt to the underlying model and returns its reply.
	// Returns an error on transport, quota or authentication failure.
	Generate(ctx context.Context, prompt string) (string, error)
}

// TokenStates holds the encoder output for one input text: a hidden-state
// vector per token position and the attention mask for those positions.
// Mask[i] is 1 for real tokens and 0 for padding.
type TokenStates struct {
	Hidden [][]float32
	Mask   []int
}

// Len returns the number of token positions.
func (t TokenStates) Len() int {
	return len(t.Hidden)
}

// Encoder runs a pretrained text encoder and returns per-token states.
// Implementations must be thread-safe for concurrent use.
type Encoder interface {
	// Encode returns token states for each text in the same order as the input.
	// Texts are truncated to the encoder's maximum sequence length.
	Encode(ctx context.Context, texts []string) ([]TokenStates, error)

	// Dimension returns the width of each hidden-state vector.
	Dimension() int
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages TextGenerator and Encoder instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Generator returns the text generation service.
	// The returned TextGenerator is safe for concurrent use.
	Generator() TextGenerator

	// Encoder returns the text encoder.
	// The returned Encoder is safe for concurrent use.
	Encoder() Encoder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
