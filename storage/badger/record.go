package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/litsearch/core"
	"github.com/poiesic/litsearch/storage"
)

// RecordRepository implements storage.RecordRepository for BadgerDB.
type RecordRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(backend *Backend) (*RecordRepository, error) {
	idSeq, err := backend.GetSequence(searchRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &RecordRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RecordRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *RecordRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSearchRecords validates and inserts search records, assigning each an
// ID. Nothing is written if any record is invalid. Timestamps are stored with
// microsecond precision and the records are truncated to match.
// Called inside WithTransaction, the inserts join that transaction.
func (r *RecordRepository) AddSearchRecords(ctx context.Context, records ...*core.SearchRecord) ([]*core.SearchRecord, error) {
	for _, record := range records {
		if err := core.ValidateSearchRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTransaction(ctx, func(ctx context.Context) error {
		tx, _ := txFromContext(ctx)
		for _, record := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.insert(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, record := range records {
			record.Id = 0
		}
		if errors.Is(err, storage.ErrStorageClosed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
	}

	r.backend.logger.Debug("search records added", "count", len(records))
	return records, nil
}

func (r *RecordRepository) insert(tx *badger.Txn, record *core.SearchRecord) error {
	nextID, err := r.idSeq.Next()
	if err != nil {
		return err
	}
	// Sequences start at 0, which is reserved for "no record".
	if nextID == 0 {
		if nextID, err = r.idSeq.Next(); err != nil {
			return err
		}
	}
	record.Id = core.ID(nextID)
	record.Timestamp = record.Timestamp.UTC().Truncate(time.Microsecond)
	record.InsertedAt = time.Now().UTC().Truncate(time.Microsecond)

	if err := tx.Set(makeSearchRecordKey(record.Id), storage.MarshalSearchRecord(record)); err != nil {
		return err
	}
	id := storage.MarshalID(record.Id)
	if err := tx.Set(makeSearchDateKey(record.Timestamp, record.Id), id); err != nil {
		return err
	}
	return tx.Set(makeRequesterKey(record.Requester, record.Timestamp, record.Id), id)
}

// GetSearchRecord retrieves a single search record by ID.
func (r *RecordRepository) GetSearchRecord(ctx context.Context, id core.ID) (*core.SearchRecord, error) {
	var result *core.SearchRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readSearchRecord(tx, makeSearchRecordKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetSearchRecordsByDateRange retrieves search records within a time range.
func (r *RecordRepository) GetSearchRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.SearchRecord, error) {
	if end.Before(start) {
		return nil, storage.ErrInvalidQuery
	}
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.SearchRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialSearchDateKey(start)
		endKey := makePartialSearchDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) >= 0 {
				break
			}

			record, err := r.followIndex(tx, iter.Item())
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentSearchRecords retrieves the N most recent search records, newest first.
func (r *RecordRepository) GetRecentSearchRecords(ctx context.Context, limit int) ([]*core.SearchRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}
	prefix := []byte(searchRecordDatePrefix + ":")
	return r.scanNewestFirst(prefix, makePartialSearchDateKey(latestTime), limit, func(*core.SearchRecord) bool {
		return true
	})
}

// ListSearchRecords retrieves the N most recent search records made by
// requester, newest first.
func (r *RecordRepository) ListSearchRecords(ctx context.Context, requester string, limit int) ([]*core.SearchRecord, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}
	// The index is keyed by a hash of the requester, so confirm each hit.
	return r.scanNewestFirst(makeRequesterPrefix(requester), makeLatestRequesterKey(requester), limit, func(rec *core.SearchRecord) bool {
		return rec.Requester == requester
	})
}

// Helper methods

// scanNewestFirst walks an index in reverse from seek while keys share prefix,
// collecting up to limit records accepted by keep.
func (r *RecordRepository) scanNewestFirst(prefix, seek []byte, limit int, keep func(*core.SearchRecord) bool) ([]*core.SearchRecord, error) {
	var results []*core.SearchRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(seek); iter.Valid() && len(results) < limit; iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}

			record, err := r.followIndex(tx, iter.Item())
			if err != nil {
				return err
			}
			if record != nil && keep(record) {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// followIndex reads the record ID stored in an index entry and loads the record.
func (r *RecordRepository) followIndex(tx *badger.Txn, item *badger.Item) (*core.SearchRecord, error) {
	var recordID core.ID
	if err := item.Value(func(val []byte) error {
		var err error
		recordID, err = storage.UnmarshalID(val)
		return err
	}); err != nil {
		return nil, err
	}
	return r.readSearchRecord(tx, makeSearchRecordKey(recordID))
}

// readSearchRecord reads a search record from the transaction.
func (r *RecordRepository) readSearchRecord(tx *badger.Txn, key []byte) (*core.SearchRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.SearchRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalSearchRecord(val)
		return unmarshalErr
	})
	return record, err
}
