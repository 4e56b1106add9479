package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/storage"
)

// recordingMonitor captures stage names in call order.
type recordingMonitor struct {
	mu          sync.Mutex
	events      []string
	substituted bool
	dropped     int
	persistedID core.ID
	persistErr  error
}

var _ Monitor = (*recordingMonitor)(nil)

func newRecordingMonitor() *recordingMonitor {
	return &recordingMonitor{}
}

func (m *recordingMonitor) add(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *recordingMonitor) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.events...)
}

func (m *recordingMonitor) Start(_ string)          { m.add("start") }
func (m *recordingMonitor) AfterNormalize(_ string) { m.add("normalize") }
func (m *recordingMonitor) AfterReformulation(_ string, substituted bool, _ string) {
	m.mu.Lock()
	m.substituted = substituted
	m.mu.Unlock()
	m.add("reformulation")
}
func (m *recordingMonitor) AfterRetrieval(tier core.RetrievalTier, _ string, _ []string) {
	m.add("retrieval:" + tier.String())
}
func (m *recordingMonitor) AfterFetch(_ []core.Article, dropped int) {
	m.mu.Lock()
	m.dropped = dropped
	m.mu.Unlock()
	m.add("fetch")
}
func (m *recordingMonitor) AfterRank(_ []core.RankedResult) { m.add("rank") }
func (m *recordingMonitor) AfterPersist(id core.ID, err error) {
	m.mu.Lock()
	m.persistedID = id
	m.persistErr = err
	m.mu.Unlock()
	m.add("persist")
}
func (m *recordingMonitor) Finish(_ core.Outcome) { m.add("finish") }

// failingRepository rejects every insert with err. A non-zero staleID is
// written to the records first, as a store that fails mid-insert might.
type failingRepository struct {
	err     error
	staleID core.ID
	mu      sync.Mutex
	calls   int
}

var _ storage.RecordRepository = (*failingRepository)(nil)

func (r *failingRepository) attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *failingRepository) AddSearchRecords(ctx context.Context, records ...*core.SearchRecord) ([]*core.SearchRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.staleID != 0 {
		for _, rec := range records {
			rec.Id = r.staleID
		}
	}
	return nil, r.err
}

func (r *failingRepository) GetSearchRecord(ctx context.Context, id core.ID) (*core.SearchRecord, error) {
	return nil, storage.ErrNotFound
}

func (r *failingRepository) GetSearchRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.SearchRecord, error) {
	return nil, nil
}

func (r *failingRepository) GetRecentSearchRecords(ctx context.Context, limit int) ([]*core.SearchRecord, error) {
	return nil, nil
}

func (r *failingRepository) ListSearchRecords(ctx context.Context, requester string, limit int) ([]*core.SearchRecord, error) {
	return nil, nil
}

func (r *failingRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *failingRepository) Close() error { return nil }
