package query

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/litsearch/ai"
	"github.com/poiesic/litsearch/core"
)

// ConceptExtractor asks a text generator for a Boolean search string.
type ConceptExtractor struct {
	generator ai.TextGenerator
	logger    *slog.Logger
}

// ExtractorOption configures a ConceptExtractor.
type ExtractorOption func(*ConceptExtractor) error

// WithExtractorLogger sets a custom logger.
func WithExtractorLogger(logger *slog.Logger) ExtractorOption {
	return func(e *ConceptExtractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewConceptExtractor creates an extractor backed by generator.
func NewConceptExtractor(generator ai.TextGenerator, opts ...ExtractorOption) (*ConceptExtractor, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}
	e := &ConceptExtractor{
		generator: generator,
		logger:    slog.Default().With("component", "concept-extractor"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ExtractBooleanQuery normalizes q, prompts the generator and returns the
// Boolean query found after BooleanMarker. The bool result is false when the
// reply carries no usable marker line; callers substitute their own query
// in that case. A generator failure is returned as an error.
func (e *ConceptExtractor) ExtractBooleanQuery(ctx context.Context, q string) (string, bool, error) {
	normalized := Normalize(q)
	reply, err := e.generator.Generate(ctx, buildConceptPrompt(normalized))
	if err != nil {
		return "", false, err
	}

	boolean, ok := ParseBooleanQuery(reply)
	if !ok {
		e.logger.Warn("reformulation missing marker",
			"query", normalized,
			"replyLength", len(reply),
			"err", core.ErrReformulationAmbiguous)
		return "", false, nil
	}
	e.logger.Debug("extracted boolean query", "query", normalized, "boolean", boolean)
	return boolean, true, nil
}

// ParseBooleanQuery returns the text after the last occurrence of
// BooleanMarker, matched case-insensitively. Whitespace, code ticks and bold
// markers around the result are removed. An empty remainder counts as
// absent.
func ParseBooleanQuery(reply string) (string, bool) {
	idx := lastIndexFold(reply, BooleanMarker)
	if idx < 0 {
		return "", false
	}
	rest := reply[idx+len(BooleanMarker):]
	rest = strings.TrimLeft(rest, " \t\r\n*`")
	rest = strings.TrimRight(rest, " \t\r\n`")
	// a trailing single * is truncation syntax, keep it
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "**"))
	if rest == "" {
		return "", false
	}
	return rest, true
}

// lastIndexFold is strings.LastIndex under Unicode case folding.
// Offsets stay valid for s because no lowered copy is indexed.
func lastIndexFold(s, substr string) int {
	n := len(substr)
	for i := len(s) - n; i >= 0; i-- {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}
