package embedding

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/litsearch/ai"
	"github.com/poiesic/litsearch/ai/mock"
	"github.com/poiesic/litsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	t.Run("dimension from encoder", func(t *testing.T) {
		e, err := NewEngine(mock.NewMockEncoderWithDimension(768))
		require.NoError(t, err)
		assert.Equal(t, 768, e.Dimension())
		assert.Equal(t, DefaultMaxTokens, e.maxTokens)
	})

	t.Run("options", func(t *testing.T) {
		e, err := NewEngine(mock.NewMockEncoder(), WithMaxTokens(0), WithLogger(nil))
		require.NoError(t, err)
		assert.Equal(t, DefaultMaxTokens, e.maxTokens)

		e, err = NewEngine(mock.NewMockEncoder(), WithMaxTokens(64))
		require.NoError(t, err)
		assert.Equal(t, 64, e.maxTokens)
	})

	t.Run("nil encoder", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.Equal(t, ErrEncoderRequired, err)
	})
}

func TestEmbed_EmptyTextIsZeroVector(t *testing.T) {
	enc := mock.NewMockEncoderWithDimension(768)
	e, err := NewEngine(enc)
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\n\t"} {
		v, err := e.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Len(t, v, 768)
		assert.Equal(t, Zero(768), v)
	}
	assert.Equal(t, 0, enc.CallCount(), "empty text never reaches the encoder")
}

func TestEmbed_PoolsTokens(t *testing.T) {
	enc := mock.NewMockEncoderWithDimension(2)
	enc.EncodeFunc = func(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
		return []ai.TokenStates{{
			Hidden: [][]float32{{1, 0}, {0, 1}, {9, 9}},
			Mask:   []int{1, 1, 0},
		}}, nil
	}
	e, err := NewEngine(enc)
	require.NoError(t, err)

	v, err := e.Embed(context.Background(), "gut microbiota")
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.5, 0.5}, v, 1e-6)
}

func TestEmbed_Deterministic(t *testing.T) {
	e, err := NewEngine(mock.NewMockEncoder())
	require.NoError(t, err)

	a, err := e.Embed(context.Background(), "metformin gut")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "metformin gut")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, mock.DefaultDimension)
}

func TestEmbedBatch(t *testing.T) {
	enc := mock.NewMockEncoder()
	e, err := NewEngine(enc)
	require.NoError(t, err)

	vectors, err := e.EmbedBatch(context.Background(), []string{"a", "", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, Zero(mock.DefaultDimension), vectors[1])
	assert.NotEqual(t, vectors[0], vectors[2])
	assert.Equal(t, 1, enc.CallCount())
	assert.Equal(t, 2, enc.TextCount())
}

func TestEmbedBatch_Errors(t *testing.T) {
	t.Run("encoder failure", func(t *testing.T) {
		enc := mock.NewMockEncoder()
		enc.EncodeFunc = func(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
			return nil, errors.New("connection refused")
		}
		e, err := NewEngine(enc)
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), "x")
		assert.EqualError(t, err, "connection refused")
	})

	t.Run("short batch", func(t *testing.T) {
		enc := mock.NewMockEncoder()
		enc.EncodeFunc = func(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
			return nil, nil
		}
		e, err := NewEngine(enc)
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), "x")
		assert.ErrorIs(t, err, ErrBatchMismatch)
	})

	t.Run("wrong width", func(t *testing.T) {
		enc := mock.NewMockEncoderWithDimension(4).WithVector("x", []float32{1, 2})
		e, err := NewEngine(enc)
		require.NoError(t, err)

		_, err = e.Embed(context.Background(), "x")
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}

func TestEmbedArticle(t *testing.T) {
	enc := mock.NewMockEncoderWithDimension(2).
		WithVector("title", []float32{1, 0}).
		WithVector("abstract", []float32{0, 1})
	e, err := NewEngine(enc)
	require.NoError(t, err)
	ctx := context.Background()
	article := core.Article{ID: "1", Title: "title", Abstract: "abstract"}

	t.Run("default weights", func(t *testing.T) {
		v, err := e.EmbedArticle(ctx, article, DefaultTitleWeight, DefaultAbstractWeight)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{0.7, 0.3}, v, 1e-6)
	})

	t.Run("title only weight equals title embedding", func(t *testing.T) {
		v, err := e.EmbedArticle(ctx, article, 1.0, 0.0)
		require.NoError(t, err)
		title, err := e.Embed(ctx, article.Title)
		require.NoError(t, err)
		assert.Equal(t, title, v)
	})

	t.Run("weights need not sum to one", func(t *testing.T) {
		v, err := e.EmbedArticle(ctx, article, 2, 2)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{2, 2}, v, 1e-6)
	})

	t.Run("missing abstract", func(t *testing.T) {
		v, err := e.EmbedArticle(ctx, core.Article{ID: "2", Title: "title"}, 0.7, 0.3)
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float32{0.7, 0}, v, 1e-6)
	})

	t.Run("missing everything", func(t *testing.T) {
		v, err := e.EmbedArticle(ctx, core.Article{ID: "3"}, 0.7, 0.3)
		require.NoError(t, err)
		assert.Equal(t, Zero(2), v)
	})
}
