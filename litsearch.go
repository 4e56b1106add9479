// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package litsearch wires the semantic literature search pipeline to its
// collaborators: an OpenAI-compatible generator, an encoder service, PubMed
// and a BadgerDB record store.
package litsearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/litsearch/ai"
	"github.com/poiesic/litsearch/ai/openai"
	"github.com/poiesic/litsearch/config"
	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/embedding"
	"github.com/poiesic/litsearch/literature"
	"github.com/poiesic/litsearch/literature/pubmed"
	"github.com/poiesic/litsearch/pipeline"
	"github.com/poiesic/litsearch/query"
	"github.com/poiesic/litsearch/rerank"
	"github.com/poiesic/litsearch/storage"
	"github.com/poiesic/litsearch/storage/badger"
)

// Service holds every initialized collaborator. Build it once at process
// start and share it; it is safe for concurrent use.
type Service struct {
	backend  *badger.Backend
	repo     storage.RecordRepository
	provider ai.AIProvider
	ranker   *rerank.Ranker
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	config   *config.AppConfig
	provider ai.AIProvider
	index    literature.Index
	inMemory bool
	logger   *slog.Logger
}

// WithConfig sets the application configuration.
// Default is config.Default().
func WithConfig(cfg *config.AppConfig) ServiceOption {
	return func(o *serviceOptions) {
		o.config = cfg
	}
}

// WithProvider replaces the configured AI provider.
func WithProvider(provider ai.AIProvider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithIndex replaces the PubMed client.
func WithIndex(index literature.Index) ServiceOption {
	return func(o *serviceOptions) {
		o.index = index
	}
}

// WithInMemoryStorage keeps search records in memory only.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// NewService opens the record store at filePath and builds the pipeline.
// An empty filePath falls back to the configured storage path.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}
	cfg := options.config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}
	if filePath == "" {
		filePath = cfg.Storage.Path
	}

	s := &Service{logger: logger}
	ok := false
	defer func() {
		if !ok {
			s.Close()
		}
	}()

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory || cfg.Storage.InMemory,
		badger.WithBackendLogger(logger.With("component", "badger")),
		badger.WithSyncWrites(cfg.Storage.SyncWrites))
	if err != nil {
		return nil, err
	}
	s.backend = backend

	repo, err := badger.NewRecordRepository(backend)
	if err != nil {
		return nil, err
	}
	s.repo = repo

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(cfg.AIConfig())
		if err != nil {
			return nil, err
		}
	}
	s.provider = provider

	index := options.index
	if index == nil {
		pmConfig := cfg.PubMedConfig()
		if err := pmConfig.Validate(); err != nil {
			return nil, err
		}
		index, err = pubmed.NewClient(pmConfig, pubmed.WithLogger(logger.With("component", "pubmed")))
		if err != nil {
			return nil, err
		}
	}

	extractor, err := query.NewConceptExtractor(provider.Generator(),
		query.WithExtractorLogger(logger.With("component", "concept-extractor")))
	if err != nil {
		return nil, err
	}
	mapper, err := query.NewVocabularyMapper(provider.Generator(),
		query.WithMapperLogger(logger.With("component", "vocabulary-mapper")))
	if err != nil {
		return nil, err
	}

	engine, err := embedding.NewEngine(provider.Encoder(),
		embedding.WithMaxTokens(cfg.Encoder.MaxTokens),
		embedding.WithLogger(logger.With("component", "embedding")))
	if err != nil {
		return nil, err
	}

	rankerOpts := []rerank.Option{rerank.WithLogger(logger.With("component", "ranker"))}
	if cfg.Ranking.PoolSize > 0 {
		rankerOpts = append(rankerOpts, rerank.WithPoolSize(cfg.Ranking.PoolSize))
	}
	ranker, err := rerank.NewRanker(engine, rankerOpts...)
	if err != nil {
		return nil, err
	}
	s.ranker = ranker

	p, err := pipeline.NewPipeline(extractor, mapper, index, ranker, repo,
		pipeline.WithLogger(logger.With("component", "pipeline")),
		pipeline.WithMaxFetch(cfg.Pipeline.MaxFetch),
		pipeline.WithRankOptions(cfg.RankOptions()),
		pipeline.WithPersistTimeout(cfg.PersistTimeout()),
		pipeline.WithPersistRetry(max(cfg.Pipeline.PersistRetries, 1), pipeline.DefaultRetryDelay),
	)
	if err != nil {
		return nil, err
	}
	s.pipeline = p

	ok = true
	return s, nil
}

// Close waits for pending record inserts and releases every resource.
func (s *Service) Close() error {
	if s.pipeline != nil {
		s.pipeline.Close()
	}
	if s.ranker != nil {
		s.ranker.Release()
	}

	// Close AI provider first
	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			s.logger.Error("error closing AI provider", "err", err)
		}
	}

	if s.repo != nil {
		if err := s.repo.Close(); err != nil {
			s.logger.Error("error closing record repository", "err", err)
			return err
		}
	}

	// Close backend
	if s.backend != nil {
		if err := s.backend.Close(); err != nil {
			s.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// Search runs one semantic search.
func (s *Service) Search(ctx context.Context, req pipeline.Request) core.Outcome {
	return s.pipeline.Search(ctx, req)
}

// SearchWithMonitor runs one semantic search, reporting each stage to monitor.
func (s *Service) SearchWithMonitor(ctx context.Context, req pipeline.Request, monitor pipeline.Monitor) core.Outcome {
	return s.pipeline.SearchWithMonitor(ctx, req, monitor)
}

// History returns up to limit searches made by requester, newest first.
func (s *Service) History(ctx context.Context, requester string, limit int) ([]*core.SearchRecord, error) {
	return s.repo.ListSearchRecords(ctx, requester, limit)
}

// Recent returns up to limit searches by anyone, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]*core.SearchRecord, error) {
	return s.repo.GetRecentSearchRecords(ctx, limit)
}

// Record returns a stored search by ID.
func (s *Service) Record(ctx context.Context, id core.ID) (*core.SearchRecord, error) {
	return s.repo.GetSearchRecord(ctx, id)
}

// RecordRepository exposes the underlying store.
func (s *Service) RecordRepository() storage.RecordRepository {
	return s.repo
}
