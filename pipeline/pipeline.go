package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/literature"
	"github.com/poiesic/litsearch/query"
	"github.com/poiesic/litsearch/rerank"
	"github.com/poiesic/litsearch/storage"
)

// Defaults for a Pipeline.
const (
	DefaultMaxFetch       = 80
	DefaultPersistTimeout = 10 * time.Second
	DefaultPersistRetries = 3
	DefaultRetryDelay     = 200 * time.Millisecond
)

// Request is one search.
type Request struct {
	// Query is the research question as typed.
	Query string

	// Requester is stored on the search record and never inspected.
	Requester string

	// Filter narrows every retrieval tier. The zero value filters nothing.
	Filter literature.Filter

	// Ranking overrides individual fields of the pipeline's ranking options.
	Ranking rerank.Overrides
}

// Pipeline sequences reformulation, retrieval, ranking and persistence.
// It is safe for concurrent use.
type Pipeline struct {
	extractor *query.ConceptExtractor
	mapper    *query.VocabularyMapper
	index     literature.Index
	ranker    *rerank.Ranker
	repo      storage.RecordRepository

	ranking        rerank.Options
	maxFetch       int
	persistTimeout time.Duration
	retry          retryPolicy

	persistPool *ants.Pool
	inflight    sync.WaitGroup
	closeOnce   sync.Once
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithMaxFetch sets the most identifiers requested from the index and
// fetched per run. Default is 80.
func WithMaxFetch(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			n = DefaultMaxFetch
		}
		p.maxFetch = n
		return nil
	}
}

// WithRankOptions sets the ranking options a request's overrides apply to.
// Default is rerank.DefaultOptions().
func WithRankOptions(opts rerank.Options) Option {
	return func(p *Pipeline) error {
		p.ranking = opts
		return nil
	}
}

// WithPersistTimeout bounds each background insert, retries included.
func WithPersistTimeout(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d <= 0 {
			d = DefaultPersistTimeout
		}
		p.persistTimeout = d
		return nil
	}
}

// WithPersistRetry sets how often a failed insert is attempted and the
// delay before the first retry.
func WithPersistRetry(attempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.retry = retryPolicy{attempts: attempts, baseDelay: baseDelay}
		return nil
	}
}

// WithPersistPoolSize sets the number of concurrent background inserts.
// Default is runtime.NumCPU()/2, with a minimum of 1.
func WithPersistPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.persistPool != nil {
			p.persistPool.Release()
		}
		p.persistPool = pool
		return nil
	}
}

// NewPipeline creates a pipeline. Call Close when done to wait for pending
// inserts.
func NewPipeline(
	extractor *query.ConceptExtractor,
	mapper *query.VocabularyMapper,
	index literature.Index,
	ranker *rerank.Ranker,
	repo storage.RecordRepository,
	opts ...Option,
) (*Pipeline, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if mapper == nil {
		return nil, ErrMapperRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if ranker == nil {
		return nil, ErrRankerRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		extractor:      extractor,
		mapper:         mapper,
		index:          index,
		ranker:         ranker,
		repo:           repo,
		ranking:        rerank.DefaultOptions(),
		maxFetch:       DefaultMaxFetch,
		persistTimeout: DefaultPersistTimeout,
		retry:          retryPolicy{attempts: DefaultPersistRetries, baseDelay: DefaultRetryDelay},
		persistPool:    pool,
		logger:         slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.persistPool.Release()
			return nil, err
		}
	}

	return p, nil
}

// Search runs the pipeline for req.
func (p *Pipeline) Search(ctx context.Context, req Request) core.Outcome {
	return p.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor runs the pipeline for req, reporting each stage to monitor.
func (p *Pipeline) SearchWithMonitor(ctx context.Context, req Request, monitor Monitor) core.Outcome {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	outcome := p.run(ctx, req, monitor)
	monitor.Finish(outcome)
	return outcome
}

func (p *Pipeline) run(ctx context.Context, req Request, monitor Monitor) core.Outcome {
	monitor.Start(req.Query)
	q := core.NewQuery(req.Query)
	prov := core.Provenance{Query: q}

	// 1. Normalize and reformulate
	q = q.WithNormalized(query.Normalize(req.Query))
	prov.Query = q
	monitor.AfterNormalize(q.Normalized)
	if q.Normalized == "" {
		return core.Failure(core.ErrEmptyQuery, prov)
	}
	if err := req.Filter.Validate(); err != nil {
		return core.Failure(err, prov)
	}

	boolean, found, err := p.extractor.ExtractBooleanQuery(ctx, req.Query)
	if err != nil {
		return p.fail("concept extraction", err, prov)
	}
	if !found {
		p.logger.Info("no boolean query in reply, using normalized query", "query", q.Normalized)
		boolean = q.Normalized
	}
	q = q.WithBoolean(boolean)
	prov.Query = q

	vocabulary, err := p.mapper.MapToControlledVocabulary(ctx, q.Boolean)
	if err != nil {
		return p.fail("vocabulary mapping", err, prov)
	}
	q = q.WithVocabulary(vocabulary)
	prov.Query = q
	monitor.AfterReformulation(q.Boolean, !found, q.Vocabulary)

	// 2. Retrieve identifiers, falling back tier by tier
	tier, ids, err := p.retrieve(ctx, q, req.Filter, monitor)
	if err != nil {
		return p.fail("retrieval", err, prov)
	}
	prov.Tier = tier
	prov.Candidates = len(ids)
	if len(ids) == 0 {
		p.logger.Info("no articles found at any tier", "query", q.Raw, "err", core.ErrRetrievalEmpty)
		return core.Empty(prov)
	}

	// 3. Fetch records
	fetched, err := p.index.Fetch(ctx, ids)
	if err != nil {
		return p.fail("fetch", err, prov)
	}
	articles, dropped := literature.CleanArticles(fetched)
	if dropped > 0 {
		p.logger.Warn("dropped fetched records", "count", dropped, "err", core.ErrMalformedRecord)
	}
	prov.Fetched = len(articles)
	monitor.AfterFetch(articles, dropped)

	// 4. Rank against the query as typed
	opts := req.Ranking.Apply(p.ranking)
	results, err := p.ranker.Rank(ctx, q.Raw, articles, opts)
	if err != nil {
		return p.fail("ranking", err, prov)
	}
	monitor.AfterRank(results)

	// 5. Persist in the background
	p.persist(core.NewSearchRecord(req.Requester, q, tier, slices.Clone(results), time.Now().UTC()), monitor)

	p.logger.Info("search complete",
		"tier", tier.String(),
		"candidates", prov.Candidates,
		"fetched", prov.Fetched,
		"results", len(results))
	return core.Success(results, prov)
}

// retrieve tries the vocabulary, Boolean and raw queries in order and
// returns the first non-empty identifier list, capped at the fetch ceiling.
// Any index error ends the walk.
func (p *Pipeline) retrieve(ctx context.Context, q core.Query, filter literature.Filter, monitor Monitor) (core.RetrievalTier, []string, error) {
	tiers := []struct {
		tier core.RetrievalTier
		text string
	}{
		{core.TierVocabulary, q.Vocabulary},
		{core.TierBoolean, q.Boolean},
		{core.TierOriginal, q.Raw},
	}

	for _, t := range tiers {
		if strings.TrimSpace(t.text) == "" {
			p.logger.Debug("skipping blank tier", "tier", t.tier.String())
			continue
		}

		found, err := p.index.Search(ctx, t.text, p.maxFetch, filter)
		if err != nil {
			return core.TierNone, nil, err
		}
		ids := literature.UniqueIDs(found)
		if len(ids) > p.maxFetch {
			ids = ids[:p.maxFetch]
		}
		monitor.AfterRetrieval(t.tier, t.text, ids)

		if len(ids) > 0 {
			if t.tier != core.TierVocabulary {
				p.logger.Info("fallback tier matched", "tier", t.tier.String(), "count", len(ids))
			}
			return t.tier, ids, nil
		}
		p.logger.Debug("tier returned nothing", "tier", t.tier.String())
	}
	return core.TierNone, nil, nil
}

// fail logs cause and wraps it as a collaborator failure.
func (p *Pipeline) fail(stage string, cause error, prov core.Provenance) core.Outcome {
	p.logger.Error("pipeline stage failed", "stage", stage, "err", cause)
	return core.Failure(fmt.Errorf("%w: %s: %w", core.ErrCollaboratorUnavailable, stage, cause), prov)
}

// persist hands record to the background pool. Errors are logged and
// reported to monitor, never to the caller.
func (p *Pipeline) persist(record *core.SearchRecord, monitor Monitor) {
	p.inflight.Add(1)
	err := p.persistPool.Submit(func() {
		defer p.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), p.persistTimeout)
		defer cancel()

		err := p.retry.do(ctx, p.logger, func(ctx context.Context) error {
			_, err := p.repo.AddSearchRecords(ctx, record)
			return err
		}, func(err error) bool {
			return errors.Is(err, core.ErrInvalidSearchRecord)
		})
		if err != nil {
			p.logger.Warn("failed to persist search record", "query", record.OriginalQuery, "err", err)
			monitor.AfterPersist(0, err)
			return
		}
		p.logger.Debug("search record persisted", "id", record.Id)
		monitor.AfterPersist(record.Id, nil)
	})
	if err != nil {
		p.inflight.Done()
		p.logger.Warn("failed to schedule search record", "query", record.OriginalQuery, "err", err)
		monitor.AfterPersist(0, err)
	}
}

// Close waits for pending inserts and stops the worker pool.
// The pipeline should not be used after calling Close.
func (p *Pipeline) Close() {
	p.closeOnce.Do(func() {
		p.inflight.Wait()
		p.persistPool.Release()
	})
}
