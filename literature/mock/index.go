// Package mock provides a scripted literature.Index for tests.
package mock

import (
	"context"
	"sync"

	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/literature"
)

// MockIndex is a test double for literature.Index.
// Search results are looked up by exact query string and fetch results by
// identifier. Function fields override the lookups.
type MockIndex struct {
	SearchFunc func(ctx context.Context, query string, maxResults int, filter literature.Filter) ([]string, error)
	FetchFunc  func(ctx context.Context, ids []string) ([]core.Article, error)

	mu       sync.Mutex
	results  map[string][]string
	articles map[string]core.Article
	queries  []string
	filters  []literature.Filter
	fetched  [][]string
}

var _ literature.Index = (*MockIndex)(nil)

// NewMockIndex creates an index with no matches.
func NewMockIndex() *MockIndex {
	return &MockIndex{
		results:  map[string][]string{},
		articles: map[string]core.Article{},
	}
}

// WithResults makes Search return ids for query.
func (m *MockIndex) WithResults(query string, ids ...string) *MockIndex {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[query] = ids
	return m
}

// WithArticles makes Fetch return these articles by identifier.
func (m *MockIndex) WithArticles(articles ...core.Article) *MockIndex {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range articles {
		m.articles[a.ID] = a
	}
	return m
}

// Search returns the scripted ids for query, truncated to maxResults.
// The filter is recorded but not applied.
func (m *MockIndex) Search(ctx context.Context, query string, maxResults int, filter literature.Filter) ([]string, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.filters = append(m.filters, filter)
	fn := m.SearchFunc
	ids := m.results[query]
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query, maxResults, filter)
	}
	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	return append([]string{}, ids...), nil
}

// Fetch returns the scripted articles for ids in request order.
// Unknown identifiers are skipped.
func (m *MockIndex) Fetch(ctx context.Context, ids []string) ([]core.Article, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, append([]string{}, ids...))
	fn := m.FetchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, ids)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Article, 0, len(ids))
	for _, id := range ids {
		if a, ok := m.articles[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// Queries returns every query passed to Search, in call order.
func (m *MockIndex) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.queries...)
}

// Filters returns the filter passed with each Search, in call order.
func (m *MockIndex) Filters() []literature.Filter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]literature.Filter{}, m.filters...)
}

// Fetched returns the id lists passed to Fetch, in call order.
func (m *MockIndex) Fetched() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string{}, m.fetched...)
}
