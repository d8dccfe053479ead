package repository

import (
	"context"
	"iter"

	"github.com/jkarimi/dukapos/internal/domain/entity"
)

// CatalogRepository defines the interface for catalog data operations. The
// catalog exclusively owns item state; every successful mutation persists a
// full snapshot of the collection.
type CatalogRepository interface {
	// Create inserts a new item; fails if the ID is already taken.
	Create(ctx context.Context, item *entity.Item) error
	// GetByID returns nil without error when the item is absent.
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// List returns all items ordered by ID.
	List(ctx context.Context) ([]entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	// Search yields items whose ID or name contains the query,
	// case-insensitively. The sequence is restartable: each iteration
	// recomputes matches from the current catalog state.
	Search(ctx context.Context, query string) iter.Seq[entity.Item]
	// AdjustQuantity adds delta (positive or negative) to the item's stock.
	// A negative delta that would take the quantity below zero fails with
	// an insufficient stock error and leaves the item unchanged.
	AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Item, error)
	// AtomicDecrementBatch decrements stock for every listed item or for
	// none. Returns the IDs whose stock was insufficient; when any are
	// returned, no quantity has been touched.
	AtomicDecrementBatch(ctx context.Context, decrements map[string]int) (failedIDs []string, err error)
	// AtomicIncrementBatch restores stock for multiple items (used to roll
	// back a failed sale).
	AtomicIncrementBatch(ctx context.Context, increments map[string]int) error
	// GetLowStock returns items with quantity below the threshold, ordered
	// by ID.
	GetLowStock(ctx context.Context, threshold int) ([]entity.Item, error)
}
