package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/litsearch/ai"
	"github.com/poiesic/litsearch/core"
)

// Default article weights.
const (
	DefaultTitleWeight    = 0.7
	DefaultAbstractWeight = 0.3
	DefaultMaxTokens      = 512
)

// Engine computes fixed-length text embeddings from an ai.Encoder.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	encoder   ai.Encoder
	dimension int
	maxTokens int
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithMaxTokens sets how many token positions are pooled.
// Values below 1 fall back to DefaultMaxTokens.
func WithMaxTokens(n int) Option {
	return func(e *Engine) error {
		if n < 1 {
			n = DefaultMaxTokens
		}
		e.maxTokens = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an engine over encoder. The vector width is taken from
// encoder.Dimension().
func NewEngine(encoder ai.Encoder, opts ...Option) (*Engine, error) {
	if encoder == nil {
		return nil, ErrEncoderRequired
	}
	e := &Engine{
		encoder:   encoder,
		dimension: encoder.Dimension(),
		maxTokens: DefaultMaxTokens,
		logger:    slog.Default().With("component", "embedding"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Dimension returns the width of every vector the engine produces.
func (e *Engine) Dimension() int {
	return e.dimension
}

// Embed returns the pooled vector for text.
// Empty or whitespace-only text yields the zero vector without an encoder call.
func (e *Engine) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds texts with at most one encoder call. The result has the
// same order and length as texts.
func (e *Engine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	pending := make([]string, 0, len(texts))
	slots := make([]int, 0, len(texts))
	for i, text := range texts {
		if strings.TrimSpace(text) == "" {
			vectors[i] = Zero(e.dimension)
			continue
		}
		pending = append(pending, text)
		slots = append(slots, i)
	}
	if len(pending) == 0 {
		return vectors, nil
	}

	states, err := e.encoder.Encode(ctx, pending)
	if err != nil {
		e.logger.Error("encoder failed", "count", len(pending), "err", err)
		return nil, err
	}
	if len(states) != len(pending) {
		return nil, fmt.Errorf("%w: %d sequences for %d texts", ErrBatchMismatch, len(states), len(pending))
	}

	for k, st := range states {
		pooled, err := MeanPool(st, e.dimension, e.maxTokens)
		if err != nil {
			return nil, err
		}
		vectors[slots[k]] = pooled
	}
	return vectors, nil
}

// EmbedArticle returns titleWeight*embed(title) + abstractWeight*embed(abstract).
// Weights need not sum to one.
func (e *Engine) EmbedArticle(ctx context.Context, article core.Article, titleWeight, abstractWeight float64) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{article.Title, article.Abstract})
	if err != nil {
		return nil, err
	}
	return Add(Scale(vectors[0], float32(titleWeight)), Scale(vectors[1], float32(abstractWeight))), nil
}
