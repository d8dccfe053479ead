package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jkarimi/dukapos/internal/domain/entity"
	"github.com/jkarimi/dukapos/internal/domain/repository"
	"github.com/jkarimi/dukapos/pkg/apperror"
)

// CatalogService handles item catalog operations
type CatalogService struct {
	catalogRepo repository.CatalogRepository
	log         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{catalogRepo: catalogRepo, log: log}
}

// ItemInput represents the mutable fields of an item
type ItemInput struct {
	Name     string
	Quantity int
	Price    float64
}

func validateItemInput(input *ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperror.NewInvalidInputError("Item name must not be empty")
	}
	if input.Quantity < 0 {
		return apperror.NewInvalidInputError("Quantity must not be negative")
	}
	if input.Price < 0 {
		return apperror.NewInvalidInputError("Price must not be negative")
	}
	return nil
}

// AddItem inserts a new catalog item under the given user-assigned ID.
func (s *CatalogService) AddItem(ctx context.Context, id string, input *ItemInput) (*entity.Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.NewInvalidInputError("Item ID must not be empty")
	}
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := &entity.Item{
		ID:       id,
		Name:     input.Name,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.log.Info("item added", zap.String("item_id", id), zap.Int("quantity", input.Quantity))
	return item, nil
}

// UpdateItem replaces the three mutable fields of an existing item.
func (s *CatalogService) UpdateItem(ctx context.Context, id string, input *ItemInput) (*entity.Item, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := &entity.Item{
		ID:       id,
		Name:     input.Name,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.log.Info("item updated", zap.String("item_id", id))
	return item, nil
}

// RemoveItem deletes an item. Historical sales keep their own copy of item
// IDs and quantities, so no cascading effects apply.
func (s *CatalogService) RemoveItem(ctx context.Context, id string) error {
	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("item removed", zap.String("item_id", id))
	return nil
}

// GetItem retrieves a single item by ID.
func (s *CatalogService) GetItem(ctx context.Context, id string) (*entity.Item, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item " + id)
	}
	return item, nil
}

// ListItems returns the full catalog ordered by item ID.
func (s *CatalogService) ListItems(ctx context.Context) ([]entity.Item, error) {
	return s.catalogRepo.List(ctx)
}

// SearchItems returns items whose ID or name contains the query,
// case-insensitively.
func (s *CatalogService) SearchItems(ctx context.Context, query string) ([]entity.Item, error) {
	items := make([]entity.Item, 0)
	for item := range s.catalogRepo.Search(ctx, query) {
		items = append(items, item)
	}
	return items, nil
}

// IncomingStock records delivered stock for an item.
func (s *CatalogService) IncomingStock(ctx context.Context, id string, qty int) (*entity.Item, error) {
	if qty <= 0 {
		return nil, apperror.NewInvalidQuantityError(qty)
	}

	item, err := s.catalogRepo.AdjustQuantity(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	s.log.Info("incoming stock", zap.String("item_id", id), zap.Int("quantity", qty))
	return item, nil
}

// OutgoingStock records stock leaving outside of a sale (damage, transfer).
// Fails when the item's quantity would go negative.
func (s *CatalogService) OutgoingStock(ctx context.Context, id string, qty int) (*entity.Item, error) {
	if qty <= 0 {
		return nil, apperror.NewInvalidQuantityError(qty)
	}

	item, err := s.catalogRepo.AdjustQuantity(ctx, id, -qty)
	if err != nil {
		return nil, err
	}

	s.log.Info("outgoing stock", zap.String("item_id", id), zap.Int("quantity", qty))
	return item, nil
}
