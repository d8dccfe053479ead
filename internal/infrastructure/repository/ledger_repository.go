package repository

import (
	"context"
	"iter"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jkarimi/dukapos/internal/domain/entity"
	"github.com/jkarimi/dukapos/internal/domain/repository"
	"github.com/jkarimi/dukapos/internal/infrastructure/store"
)

type ledgerRepository struct {
	mu      sync.RWMutex
	records []entity.SaleRecord
	path    string
	log     *zap.Logger
}

// NewLedgerRepository loads the sales history snapshot from path. The file
// holds a JSON array in insertion order, which under normal use is also
// chronological order.
func NewLedgerRepository(path string, log *zap.Logger) (repository.LedgerRepository, error) {
	records, err := store.Load(path, []entity.SaleRecord{})
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ledgerRepository{records: records, path: path, log: log}, nil
}

func (r *ledgerRepository) Append(ctx context.Context, record *entity.SaleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, *record)
	if err := store.Save(r.path, r.records); err != nil {
		// Keep the in-memory history and the file consistent.
		r.records = r.records[:len(r.records)-1]
		return err
	}
	return nil
}

func (r *ledgerRepository) All(ctx context.Context) ([]entity.SaleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]entity.SaleRecord, len(r.records))
	copy(records, r.records)
	return records, nil
}

func (r *ledgerRepository) InRange(ctx context.Context, start, end time.Time) iter.Seq[entity.SaleRecord] {
	return func(yield func(entity.SaleRecord) bool) {
		r.mu.RLock()
		records := make([]entity.SaleRecord, len(r.records))
		copy(records, r.records)
		r.mu.RUnlock()

		for _, record := range records {
			t, err := record.Time()
			if err != nil {
				// Unparsable timestamps are skipped, never fatal.
				r.log.Warn("skipping sale record with malformed timestamp",
					zap.String("datetime", record.Datetime))
				continue
			}
			if t.Before(start) || !t.Before(end) {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}
}
