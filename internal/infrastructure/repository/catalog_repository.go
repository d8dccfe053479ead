package repository

import (
	"context"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/jkarimi/dukapos/internal/domain/entity"
	"github.com/jkarimi/dukapos/internal/domain/repository"
	"github.com/jkarimi/dukapos/internal/infrastructure/store"
	"github.com/jkarimi/dukapos/pkg/apperror"
)

// itemRecord is the on-disk shape of a catalog entry. The catalog file is a
// JSON object keyed by item ID, so the ID stays outside the record.
type itemRecord struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type catalogRepository struct {
	mu    sync.RWMutex
	items map[string]itemRecord
	path  string
}

// NewCatalogRepository loads the catalog snapshot from path and returns a
// repository mirroring every mutation back to it.
func NewCatalogRepository(path string) (repository.CatalogRepository, error) {
	items, err := store.Load(path, map[string]itemRecord{})
	if err != nil {
		return nil, err
	}
	return &catalogRepository{items: items, path: path}, nil
}

// persist writes the full catalog snapshot. Callers must hold mu.
func (r *catalogRepository) persist() error {
	return store.Save(r.path, r.items)
}

func toItem(id string, rec itemRecord) entity.Item {
	return entity.Item{
		ID:       id,
		Name:     rec.Name,
		Quantity: rec.Quantity,
		Price:    rec.Price,
	}
}

// sortedIDs returns the catalog keys in order. Callers must hold mu.
func (r *catalogRepository) sortedIDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (r *catalogRepository) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return apperror.NewDuplicateIDError(item.ID)
	}

	r.items[item.ID] = itemRecord{
		Name:     item.Name,
		Quantity: item.Quantity,
		Price:    item.Price,
	}
	if err := r.persist(); err != nil {
		// Keep the in-memory catalog and the file consistent.
		delete(r.items, item.ID)
		return err
	}
	return nil
}

func (r *catalogRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.items[id]
	if !exists {
		return nil, nil
	}
	item := toItem(id, rec)
	return &item, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]entity.Item, 0, len(r.items))
	for _, id := range r.sortedIDs() {
		items = append(items, toItem(id, r.items[id]))
	}
	return items, nil
}

func (r *catalogRepository) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.items[item.ID]
	if !exists {
		return apperror.NewNotFoundError("Item " + item.ID)
	}

	r.items[item.ID] = itemRecord{
		Name:     item.Name,
		Quantity: item.Quantity,
		Price:    item.Price,
	}
	if err := r.persist(); err != nil {
		r.items[item.ID] = prev
		return err
	}
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.items[id]
	if !exists {
		return apperror.NewNotFoundError("Item " + id)
	}

	delete(r.items, id)
	if err := r.persist(); err != nil {
		r.items[id] = prev
		return err
	}
	return nil
}

func (r *catalogRepository) Search(ctx context.Context, query string) iter.Seq[entity.Item] {
	q := strings.ToLower(query)
	return func(yield func(entity.Item) bool) {
		// Snapshot under the read lock so iteration never holds it.
		r.mu.RLock()
		items := make([]entity.Item, 0, len(r.items))
		for _, id := range r.sortedIDs() {
			items = append(items, toItem(id, r.items[id]))
		}
		r.mu.RUnlock()

		for _, item := range items {
			if !strings.Contains(strings.ToLower(item.ID), q) &&
				!strings.Contains(strings.ToLower(item.Name), q) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

func (r *catalogRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.items[id]
	if !exists {
		return nil, apperror.NewNotFoundError("Item " + id)
	}

	next := rec.Quantity + delta
	if next < 0 {
		return nil, apperror.NewInsufficientStockError(id, -delta, rec.Quantity)
	}

	prev := rec
	rec.Quantity = next
	r.items[id] = rec
	if err := r.persist(); err != nil {
		r.items[id] = prev
		return nil, err
	}

	item := toItem(id, rec)
	return &item, nil
}

func (r *catalogRepository) AtomicDecrementBatch(ctx context.Context, decrements map[string]int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate every line before touching any quantity.
	var failedIDs []string
	for id, qty := range decrements {
		rec, exists := r.items[id]
		if !exists || rec.Quantity < qty {
			failedIDs = append(failedIDs, id)
		}
	}
	if len(failedIDs) > 0 {
		slices.Sort(failedIDs)
		return failedIDs, nil
	}

	for id, qty := range decrements {
		rec := r.items[id]
		rec.Quantity -= qty
		r.items[id] = rec
	}
	if err := r.persist(); err != nil {
		for id, qty := range decrements {
			rec := r.items[id]
			rec.Quantity += qty
			r.items[id] = rec
		}
		return nil, err
	}
	return nil, nil
}

func (r *catalogRepository) AtomicIncrementBatch(ctx context.Context, increments map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied := make(map[string]int, len(increments))
	for id, qty := range increments {
		rec, exists := r.items[id]
		if !exists {
			continue
		}
		rec.Quantity += qty
		r.items[id] = rec
		applied[id] = qty
	}
	if err := r.persist(); err != nil {
		for id, qty := range applied {
			rec := r.items[id]
			rec.Quantity -= qty
			r.items[id] = rec
		}
		return err
	}
	return nil
}

func (r *catalogRepository) GetLowStock(ctx context.Context, threshold int) ([]entity.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []entity.Item
	for _, id := range r.sortedIDs() {
		item := toItem(id, r.items[id])
		if item.LowStock(threshold) {
			items = append(items, item)
		}
	}
	return items, nil
}
