package repository

import (
	"context"
	"iter"
	"time"

	"github.com/jkarimi/dukapos/internal/domain/entity"
)

// LedgerRepository defines the interface for the append-only sales history.
// Records are never mutated or deleted after creation.
type LedgerRepository interface {
	// Append adds a record to the end of the history and persists the
	// collection immediately.
	Append(ctx context.Context, record *entity.SaleRecord) error
	// All returns the full history in insertion order.
	All(ctx context.Context) ([]entity.SaleRecord, error)
	// InRange yields records whose timestamp falls in [start, end), in
	// insertion order. Records with unparsable timestamps are skipped. The
	// sequence is restartable and reflects the history at iteration time.
	InRange(ctx context.Context, start, end time.Time) iter.Seq[entity.SaleRecord]
}
