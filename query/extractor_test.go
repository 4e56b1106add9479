package query

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/poiesic/litsearch/ai/mock"
	"github.com/poiesic/litsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConceptExtractor(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		e, err := NewConceptExtractor(mock.NewMockGenerator())
		require.NoError(t, err)
		assert.NotNil(t, e)
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		e, err := NewConceptExtractor(mock.NewMockGenerator(), WithExtractorLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, e.logger)
	})

	t.Run("nil generator", func(t *testing.T) {
		_, err := NewConceptExtractor(nil)
		assert.Equal(t, ErrGeneratorRequired, err)
	})
}

func TestExtractBooleanQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("well-formed reply", func(t *testing.T) {
		gen := mock.NewMockGenerator("- metformin\n- gut microbiota\n\nOptimized Boolean Query: metformin AND \"gut microbiota\"")
		e, err := NewConceptExtractor(gen)
		require.NoError(t, err)

		boolean, ok, err := e.ExtractBooleanQuery(ctx, "Effects of Metformin on gut microbiota?")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `metformin AND "gut microbiota"`, boolean)

		prompts := gen.Prompts()
		require.Len(t, prompts, 1)
		assert.Contains(t, prompts[0], "effects of metformin on gut microbiota")
		assert.Contains(t, prompts[0], BooleanMarker)
	})

	t.Run("marker absent", func(t *testing.T) {
		var logs bytes.Buffer
		gen := mock.NewMockGenerator("I think you should search for metformin.")
		e, err := NewConceptExtractor(gen, WithExtractorLogger(slog.New(slog.NewTextHandler(&logs, nil))))
		require.NoError(t, err)

		boolean, ok, err := e.ExtractBooleanQuery(ctx, "metformin")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, boolean)
		assert.Contains(t, logs.String(), "reformulation missing marker")
		assert.Contains(t, logs.String(), core.ErrReformulationAmbiguous.Error())
	})

	t.Run("generator failure", func(t *testing.T) {
		gen := mock.NewMockGenerator()
		gen.GenerateFunc = func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("401 unauthorized")
		}
		e, err := NewConceptExtractor(gen)
		require.NoError(t, err)

		_, ok, err := e.ExtractBooleanQuery(ctx, "metformin")
		assert.EqualError(t, err, "401 unauthorized")
		assert.False(t, ok)
	})
}

func TestParseBooleanQuery(t *testing.T) {
	tests := []struct {
		name   string
		reply  string
		want   string
		wantOK bool
	}{
		{"plain", "Optimized Boolean Query: a AND b", "a AND b", true},
		{"last occurrence wins", "Optimized Boolean Query: draft\nOptimized Boolean Query: final", "final", true},
		{"case insensitive", "optimized boolean query: a OR b", "a OR b", true},
		{"markdown emphasis", "**Optimized Boolean Query:** `a AND b`", "a AND b", true},
		{"truncation kept", "Optimized Boolean Query: diabet* AND insulin*", "diabet* AND insulin*", true},
		{"surrounding whitespace", "Optimized Boolean Query:   a AND b  \n", "a AND b", true},
		{"missing", "Boolean: a AND b", "", false},
		{"empty remainder", "Optimized Boolean Query:   ", "", false},
		{"empty reply", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBooleanQuery(tt.reply)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
