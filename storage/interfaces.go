package storage

import (
	"context"
	"time"

	"github.com/poiesic/litsearch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// RecordRepository stores search records. Records are append-only: there is
// no update or delete path.
type RecordRepository interface {
	Repository

	// AddSearchRecords validates and inserts one or more records.
	// Every record gets a new ID from the sequence and an InsertedAt timestamp.
	// Returns the records with those fields populated.
	AddSearchRecords(ctx context.Context, records ...*core.SearchRecord) ([]*core.SearchRecord, error)

	// GetSearchRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetSearchRecord(ctx context.Context, id core.ID) (*core.SearchRecord, error)

	// GetSearchRecordsByDateRange retrieves records where start <= Timestamp < end,
	// ordered by timestamp.
	GetSearchRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.SearchRecord, error)

	// GetRecentSearchRecords retrieves up to limit records, most recent first.
	GetRecentSearchRecords(ctx context.Context, limit int) ([]*core.SearchRecord, error)

	// ListSearchRecords retrieves up to limit records made by requester,
	// most recent first.
	ListSearchRecords(ctx context.Context, requester string, limit int) ([]*core.SearchRecord, error)
}
