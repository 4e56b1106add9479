package query

import (
	"context"
	"log/slog"

	"github.com/poiesic/litsearch/ai"
)

// VocabularyMapper rewrites a Boolean query into controlled-vocabulary terms.
type VocabularyMapper struct {
	generator ai.TextGenerator
	logger    *slog.Logger
}

// MapperOption configures a VocabularyMapper.
type MapperOption func(*VocabularyMapper) error

// WithMapperLogger sets a custom logger.
func WithMapperLogger(logger *slog.Logger) MapperOption {
	return func(m *VocabularyMapper) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewVocabularyMapper creates a mapper backed by generator.
func NewVocabularyMapper(generator ai.TextGenerator, opts ...MapperOption) (*VocabularyMapper, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	m := &VocabularyMapper{
		generator: generator,
		logger:    slog.Default().With("component", "vocabulary-mapper"),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MapToControlledVocabulary normalizes q and returns the generator's reply
// verbatim. The reply is not inspected.
func (m *VocabularyMapper) MapToControlledVocabulary(ctx context.Context, q string) (string, error) {
	normalized := Normalize(q)
	reply, err := m.generator.Generate(ctx, buildVocabularyPrompt(normalized))
	if err != nil {
		return "", err
	}
	m.logger.Debug("mapped to controlled vocabulary", "query", normalized, "mapped", reply)
	return reply, nil
}
