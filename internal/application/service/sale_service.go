package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jkarimi/dukapos/internal/domain/entity"
	"github.com/jkarimi/dukapos/internal/domain/repository"
	"github.com/jkarimi/dukapos/pkg/apperror"
)

// SaleService owns every in-progress sale session. Carts are keyed by
// cashier, live only in memory, and are discarded once a sale completes.
type SaleService struct {
	catalogRepo repository.CatalogRepository
	ledgerRepo  repository.LedgerRepository
	log         *zap.Logger

	// checkoutMu serializes Complete so the decrement-all, append, persist
	// unit never interleaves with another completion.
	checkoutMu sync.Mutex

	mu       sync.Mutex
	carts    map[string]*entity.Cart
	receipts map[string]*entity.Receipt // last completed receipt per cashier

	now func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(catalogRepo repository.CatalogRepository, ledgerRepo repository.LedgerRepository, log *zap.Logger) *SaleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SaleService{
		catalogRepo: catalogRepo,
		ledgerRepo:  ledgerRepo,
		log:         log,
		carts:       make(map[string]*entity.Cart),
		receipts:    make(map[string]*entity.Receipt),
		now:         time.Now,
	}
}

func (s *SaleService) cart(cashier string) *entity.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[cashier]
	if !exists {
		cart = entity.NewCart()
		s.carts[cashier] = cart
	}
	return cart
}

// AddLine adds qty of an item to the cashier's cart. The quantity is checked
// against the item's current catalog stock, not against stock already
// reserved by the cart.
func (s *SaleService) AddLine(ctx context.Context, cashier, itemID string, qty int) (*entity.Item, error) {
	if qty <= 0 {
		return nil, apperror.NewInvalidQuantityError(qty)
	}

	item, err := s.catalogRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item " + itemID)
	}
	if qty > item.Quantity {
		return nil, apperror.NewInsufficientStockError(itemID, qty, item.Quantity)
	}

	s.cart(cashier).Add(itemID, qty)
	s.log.Info("line added to sale",
		zap.String("cashier", cashier),
		zap.String("item_id", itemID),
		zap.Int("quantity", qty))
	return item, nil
}

// CartLines returns the cashier's current cart contents.
func (s *SaleService) CartLines(ctx context.Context, cashier string) map[string]int {
	return s.cart(cashier).Lines()
}

// Abandon clears the cashier's cart without completing a sale.
func (s *SaleService) Abandon(ctx context.Context, cashier string) {
	s.cart(cashier).Clear()
	s.log.Info("sale abandoned", zap.String("cashier", cashier))
}

// Complete finalizes the cashier's cart into an immutable sale record:
// stock is decremented for every line or for none, the record is appended to
// the ledger, both collections are persisted, and a receipt is produced.
func (s *SaleService) Complete(ctx context.Context, cashier string, discountPercent, amountPaid float64) (*entity.Receipt, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return nil, apperror.NewInvalidInputError("Discount must be between 0 and 100")
	}
	if amountPaid < 0 {
		return nil, apperror.NewInvalidInputError("Amount paid must not be negative")
	}

	s.checkoutMu.Lock()
	defer s.checkoutMu.Unlock()

	cart := s.cart(cashier)
	if cart.IsEmpty() {
		return nil, apperror.ErrEmptySale
	}
	lines := cart.Lines()

	// Price every line from the current catalog.
	ids := make([]string, 0, len(lines))
	for id := range lines {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	subtotal := 0.0
	receiptItems := make([]entity.ReceiptItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.catalogRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, apperror.NewNotFoundError("Item " + id)
		}

		qty := lines[id]
		lineTotal := item.Price * float64(qty)
		subtotal += lineTotal
		receiptItems = append(receiptItems, entity.ReceiptItem{
			ItemID:    id,
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: item.Price,
			Total:     lineTotal,
		})
	}

	discountAmount := subtotal * discountPercent / 100
	totalDue := subtotal - discountAmount
	if amountPaid < totalDue {
		return nil, apperror.NewInsufficientPaymentError(amountPaid, totalDue)
	}
	change := amountPaid - totalDue

	// Decrement stock for all lines or none.
	failedIDs, err := s.catalogRepo.AtomicDecrementBatch(ctx, lines)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		id := failedIDs[0]
		available := 0
		if item, err := s.catalogRepo.GetByID(ctx, id); err == nil && item != nil {
			available = item.Quantity
		}
		return nil, apperror.NewInsufficientStockError(id, lines[id], available)
	}

	totalItems := 0
	for _, qty := range lines {
		totalItems += qty
	}

	completedAt := s.now()
	record := &entity.SaleRecord{
		Datetime:   completedAt.Format(entity.DatetimeLayout),
		Items:      lines,
		Total:      totalDue,
		MoneyGiven: amountPaid,
		ChangeDue:  change,
		Discount:   discountPercent,
		TotalItems: totalItems,
	}
	if err := s.ledgerRepo.Append(ctx, record); err != nil {
		// Stock was already decremented; restore it.
		_ = s.catalogRepo.AtomicIncrementBatch(ctx, lines)
		return nil, err
	}

	receipt := &entity.Receipt{
		Date:            record.Datetime,
		Items:           receiptItems,
		SubTotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		Total:           totalDue,
		Paid:            amountPaid,
		Change:          change,
	}

	s.mu.Lock()
	s.receipts[cashier] = receipt
	s.mu.Unlock()
	cart.Clear()

	s.log.Info("sale completed",
		zap.String("cashier", cashier),
		zap.Int("total_items", record.TotalItems),
		zap.Float64("total", record.Total))
	return receipt, nil
}

// LastReceipt returns the cashier's most recent receipt.
func (s *SaleService) LastReceipt(ctx context.Context, cashier string) (*entity.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	receipt, exists := s.receipts[cashier]
	if !exists {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}
