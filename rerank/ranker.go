package rerank

import (
	"cmp"
	"context"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/embedding"
)

// Ranker scores articles against a query with an embedding engine.
type Ranker struct {
	engine *embedding.Engine
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithPoolSize sets the number of articles embedded concurrently.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Ranker) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if r.pool != nil {
			r.pool.Release()
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker over engine. Call Release when done.
func NewRanker(engine *embedding.Engine, opts ...Option) (*Ranker, error) {
	if engine == nil {
		return nil, ErrEngineRequired
	}

	pool, err := ants.NewPool(max(runtime.NumCPU(), 1))
	if err != nil {
		return nil, err
	}

	r := &Ranker{
		engine: engine,
		pool:   pool,
		logger: slog.Default().With("component", "ranker"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}
	return r, nil
}

// Release stops the worker pool.
func (r *Ranker) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// Rank scores each article against query and returns at most opts.TopK
// results with score >= opts.Threshold, highest first. Equal scores keep
// their input order.
func (r *Ranker) Rank(ctx context.Context, query string, articles []core.Article, opts Options) ([]core.RankedResult, error) {
	if len(articles) == 0 {
		return []core.RankedResult{}, nil
	}

	queryVec, err := r.engine.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	vectors, err := r.embedArticles(ctx, articles, opts)
	if err != nil {
		return nil, err
	}

	scored := make([]core.RankedResult, len(articles))
	for i, a := range articles {
		scored[i] = core.RankedResult{Article: a, Score: embedding.Cosine(queryVec, vectors[i])}
	}
	slices.SortStableFunc(scored, func(a, b core.RankedResult) int {
		return cmp.Compare(b.Score, a.Score)
	})

	limit := opts.topK()
	results := make([]core.RankedResult, 0, min(limit, len(scored)))
	for _, s := range scored {
		// NaN scores sort last and never pass
		if !(s.Score >= opts.Threshold) {
			break
		}
		results = append(results, s)
		if len(results) == limit {
			break
		}
	}

	r.logger.Debug("ranked articles",
		"candidates", len(articles),
		"kept", len(results),
		"threshold", opts.Threshold,
		"topK", limit)
	return results, nil
}

// embedArticles computes article vectors on the pool. The first error wins
// and cancels the remaining work.
func (r *Ranker) embedArticles(ctx context.Context, articles []core.Article, opts Options) ([][]float32, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	vectors := make([][]float32, len(articles))
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := range articles {
		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				fail(ctx.Err())
				return
			}
			v, err := r.engine.EmbedArticle(ctx, articles[i], opts.TitleWeight, opts.AbstractWeight)
			if err != nil {
				fail(err)
				return
			}
			vectors[i] = v
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		r.logger.Error("article embedding failed", "err", firstErr)
		return nil, firstErr
	}
	return vectors, nil
}
