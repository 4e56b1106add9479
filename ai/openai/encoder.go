package openai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/poiesic/litsearch/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Encoder implements ai.Encoder using an OpenAI-compatible embeddings API.
// The service pools internally, so each text comes back as a single token
// position with mask 1. Mean pooling over that one position is the identity.
type Encoder struct {
	embedder  embeddings.Embedder
	dimension int
	logger    *slog.Logger
}

// newEncoder is an internal constructor that returns the concrete type.
func newEncoder(config *ai.Config) (*Encoder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	token := config.EncoderToken
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.EncoderHost),
		openai.WithToken(token),
		openai.WithEmbeddingModel(config.EncoderModel),
		openai.WithHTTPClient(&http.Client{Timeout: config.Timeout}),
	)
	if err != nil {
		return nil, err
	}

	// Wrap in langchaingo embedder
	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return newEncoderWithEmbedder(embedder, config.Dimensions), nil
}

func newEncoderWithEmbedder(embedder embeddings.Embedder, dimension int) *Encoder {
	return &Encoder{
		embedder:  embedder,
		dimension: dimension,
		logger:    slog.Default().With("component", "openai-encoder"),
	}
}

// NewEncoder creates a new encoder using the provided configuration.
//
// Returns ai.Encoder interface to enforce abstraction.
func NewEncoder(config *ai.Config) (ai.Encoder, error) {
	return newEncoder(config)
}

// NewEncoderWithEmbedder wraps an existing langchaingo embedder.
func NewEncoderWithEmbedder(embedder embeddings.Embedder, dimension int) ai.Encoder {
	return newEncoderWithEmbedder(embedder, dimension)
}

// Dimension returns the configured vector width.
func (e *Encoder) Dimension() int {
	return e.dimension
}

// Encode embeds texts in one batch.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
	e.logger.Debug("encoding texts", "count", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embeddings service returned %d vectors for %d texts", len(vectors), len(texts))
	}

	states := make([]ai.TokenStates, len(vectors))
	for i, v := range vectors {
		states[i] = ai.TokenStates{
			Hidden: [][]float32{v},
			Mask:   []int{1},
		}
	}
	return states, nil
}
