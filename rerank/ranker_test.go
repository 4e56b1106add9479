package rerank

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/poiesic/litsearch/ai"
	"github.com/poiesic/litsearch/ai/mock"
	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRanker(t *testing.T, enc ai.Encoder) *Ranker {
	t.Helper()
	engine, err := embedding.NewEngine(enc)
	require.NoError(t, err)
	r, err := NewRanker(engine, WithPoolSize(4))
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func pinnedEncoder() *mock.MockEncoder {
	return mock.NewMockEncoderWithDimension(2).
		WithVector("query", []float32{1, 0}).
		WithVector("aligned", []float32{1, 0}).
		WithVector("aligned too", []float32{1, 0}).
		WithVector("diagonal", []float32{1, 1}).
		WithVector("orthogonal", []float32{0, 1})
}

func article(id, title string) core.Article {
	return core.Article{ID: id, Title: title}
}

func ids(results []core.RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Article.ID
	}
	return out
}

func TestNewRanker(t *testing.T) {
	_, err := NewRanker(nil)
	assert.Equal(t, ErrEngineRequired, err)

	engine, err := embedding.NewEngine(mock.NewMockEncoder())
	require.NoError(t, err)
	r, err := NewRanker(engine, WithPoolSize(0), WithLogger(nil))
	require.NoError(t, err)
	defer r.Release()
	assert.Equal(t, 1, r.pool.Cap())
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 10, opts.TopK)
	assert.Equal(t, 0.75, opts.Threshold)
	assert.Equal(t, 0.7, opts.TitleWeight)
	assert.Equal(t, 0.3, opts.AbstractWeight)
}

func TestRank_SortedWithStableTies(t *testing.T) {
	r := newTestRanker(t, pinnedEncoder())
	articles := []core.Article{
		article("1", "diagonal"),
		article("2", "aligned"),
		article("3", "orthogonal"),
		article("4", "aligned too"),
	}

	opts := DefaultOptions()
	opts.Threshold = -1
	results, err := r.Rank(context.Background(), "query", articles, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(results))
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Equal(t, results[0].Score, results[1].Score)
	assert.InDelta(t, 0.7071, results[2].Score, 1e-3)
	assert.InDelta(t, 0.0, results[3].Score, 1e-6)

	assert.True(t, slices.IsSortedFunc(results, func(a, b core.RankedResult) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	}))
}

func TestRank_Threshold(t *testing.T) {
	r := newTestRanker(t, pinnedEncoder())
	articles := []core.Article{
		article("1", "diagonal"),
		article("2", "aligned"),
		article("3", "orthogonal"),
	}

	results, err := r.Rank(context.Background(), "query", articles, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(results))
	for _, res := range results {
		assert.GreaterOrEqual(t, res.Score, 0.75)
	}

	opts := DefaultOptions()
	opts.Threshold = 1.01
	results, err = r.Rank(context.Background(), "query", articles, opts)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestRank_NaNScoresNeverPass(t *testing.T) {
	nan := float32(math.NaN())
	enc := pinnedEncoder().WithVector("broken", []float32{nan, nan})
	r := newTestRanker(t, enc)
	articles := []core.Article{
		article("1", "broken"),
		article("2", "aligned"),
		article("3", "orthogonal"),
	}

	opts := DefaultOptions()
	opts.Threshold = -1
	results, err := r.Rank(context.Background(), "query", articles, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, ids(results))
	for _, res := range results {
		assert.False(t, math.IsNaN(res.Score))
	}
}

func TestOverrides_Apply(t *testing.T) {
	topK := 5
	threshold := 0.5

	opts := Overrides{TopK: &topK}.Apply(DefaultOptions())
	assert.Equal(t, 5, opts.TopK)
	assert.Equal(t, DefaultThreshold, opts.Threshold)
	assert.Equal(t, embedding.DefaultTitleWeight, opts.TitleWeight)
	assert.Equal(t, embedding.DefaultAbstractWeight, opts.AbstractWeight)

	opts = Overrides{Threshold: &threshold}.Apply(DefaultOptions())
	assert.Equal(t, DefaultTopK, opts.TopK)
	assert.Equal(t, 0.5, opts.Threshold)

	assert.Equal(t, DefaultOptions(), Overrides{}.Apply(DefaultOptions()))
}

func TestRank_TopK(t *testing.T) {
	r := newTestRanker(t, pinnedEncoder())

	var articles []core.Article
	for i := range 12 {
		articles = append(articles, article(fmt.Sprint(i+1), "aligned"))
	}

	opts := DefaultOptions()
	opts.TopK = 3
	results, err := r.Rank(context.Background(), "query", articles, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(results))

	opts.TopK = 0
	results, err = r.Rank(context.Background(), "query", articles, opts)
	require.NoError(t, err)
	assert.Len(t, results, DefaultTopK)
}

func TestRank_Weights(t *testing.T) {
	r := newTestRanker(t, pinnedEncoder())
	articles := []core.Article{{ID: "1", Title: "orthogonal", Abstract: "aligned"}}

	opts := DefaultOptions()
	opts.Threshold = -1

	opts.TitleWeight, opts.AbstractWeight = 0, 1
	results, err := r.Rank(context.Background(), "query", articles, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)

	opts.TitleWeight, opts.AbstractWeight = 1, 0
	results, err = r.Rank(context.Background(), "query", articles, opts)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 0.0, results[0].Score, 1e-6)
}

func TestRank_EmptyInput(t *testing.T) {
	enc := pinnedEncoder()
	r := newTestRanker(t, enc)

	results, err := r.Rank(context.Background(), "query", nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
	assert.Equal(t, 0, enc.CallCount())
}

func TestRank_EncoderFailure(t *testing.T) {
	boom := errors.New("encoder down")

	t.Run("query", func(t *testing.T) {
		enc := mock.NewMockEncoderWithDimension(2)
		enc.EncodeFunc = func(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
			return nil, boom
		}
		r := newTestRanker(t, enc)
		_, err := r.Rank(context.Background(), "query", []core.Article{article("1", "aligned")}, DefaultOptions())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("article", func(t *testing.T) {
		enc := mock.NewMockEncoderWithDimension(2)
		enc.EncodeFunc = func(ctx context.Context, texts []string) ([]ai.TokenStates, error) {
			if slices.Contains(texts, "broken") {
				return nil, boom
			}
			states := make([]ai.TokenStates, len(texts))
			for i := range texts {
				states[i] = ai.TokenStates{Hidden: [][]float32{{1, 0}}, Mask: []int{1}}
			}
			return states, nil
		}
		r := newTestRanker(t, enc)
		articles := []core.Article{article("1", "fine"), article("2", "broken"), article("3", "fine")}
		_, err := r.Rank(context.Background(), "query", articles, DefaultOptions())
		assert.ErrorIs(t, err, boom)
	})
}
