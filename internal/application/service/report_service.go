package service

import (
	"context"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/jkarimi/dukapos/internal/domain/repository"
)

// ReportService derives low-stock alerts from catalog state and summary
// statistics from slices of the sales ledger.
type ReportService struct {
	catalogRepo repository.CatalogRepository
	ledgerRepo  repository.LedgerRepository
	threshold   int
	log         *zap.Logger
}

// NewReportService creates a new report service. threshold is the configured
// low-stock quantity.
func NewReportService(catalogRepo repository.CatalogRepository, ledgerRepo repository.LedgerRepository, threshold int, log *zap.Logger) *ReportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportService{
		catalogRepo: catalogRepo,
		ledgerRepo:  ledgerRepo,
		threshold:   threshold,
		log:         log,
	}
}

// LowStockItem is one (name, quantity) alert entry.
type LowStockItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// LowStockAlert returns the items below the configured threshold, ordered by
// ID. An empty list means nothing to surface.
func (s *ReportService) LowStockAlert(ctx context.Context) ([]LowStockItem, error) {
	items, err := s.catalogRepo.GetLowStock(ctx, s.threshold)
	if err != nil {
		return nil, err
	}

	alerts := make([]LowStockItem, 0, len(items))
	for _, item := range items {
		alerts = append(alerts, LowStockItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}
	return alerts, nil
}

// ReportLine is one sold item within a reported sale, with the name resolved
// against the live catalog.
type ReportLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ReportSale is one sale inside a range report.
type ReportSale struct {
	Datetime string       `json:"datetime"`
	Items    []ReportLine `json:"items"`
	Total    float64      `json:"total"`
}

// SalesReport aggregates the ledger over a date range.
type SalesReport struct {
	Found            bool         `json:"found"`
	Sales            []ReportSale `json:"sales"`
	TotalSales       float64      `json:"total_sales"`
	TotalItemsSold   int          `json:"total_items_sold"`
	MostSoldItemID   string       `json:"most_sold_item_id,omitempty"`
	MostSoldItemName string       `json:"most_sold_item_name,omitempty"`
}

// resolveName returns the item's current catalog name, falling back to the
// ID when the item has since been removed.
func (s *ReportService) resolveName(ctx context.Context, itemID string) string {
	item, err := s.catalogRepo.GetByID(ctx, itemID)
	if err != nil || item == nil {
		return itemID
	}
	return item.Name
}

// RangeReport aggregates all sales with timestamps in [start, end):
// total revenue, total items sold, and the most sold item. Ties on the
// summed quantity go to the item encountered first in iteration order.
func (s *ReportService) RangeReport(ctx context.Context, start, end time.Time) (*SalesReport, error) {
	report := &SalesReport{Sales: make([]ReportSale, 0)}

	counts := make(map[string]int)
	var order []string // item IDs in first-seen order

	for record := range s.ledgerRepo.InRange(ctx, start, end) {
		report.Found = true
		report.TotalSales += record.Total
		report.TotalItemsSold += record.TotalItems

		ids := make([]string, 0, len(record.Items))
		for id := range record.Items {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		sale := ReportSale{
			Datetime: record.Datetime,
			Total:    record.Total,
			Items:    make([]ReportLine, 0, len(ids)),
		}
		for _, id := range ids {
			if _, seen := counts[id]; !seen {
				order = append(order, id)
			}
			counts[id] += record.Items[id]
			sale.Items = append(sale.Items, ReportLine{
				ItemID:   id,
				Name:     s.resolveName(ctx, id),
				Quantity: record.Items[id],
			})
		}
		report.Sales = append(report.Sales, sale)
	}

	if !report.Found {
		return report, nil
	}

	best := ""
	for _, id := range order {
		if best == "" || counts[id] > counts[best] {
			best = id
		}
	}
	report.MostSoldItemID = best
	report.MostSoldItemName = s.resolveName(ctx, best)

	return report, nil
}

// HistorySale is one entry of the full sales history view.
type HistorySale struct {
	Datetime   string       `json:"datetime"`
	Items      []ReportLine `json:"items"`
	Total      float64      `json:"total"`
	MoneyGiven float64      `json:"money_given"`
	ChangeDue  float64      `json:"change_due"`
	Discount   float64      `json:"discount"`
	TotalItems int          `json:"total_items"`
}

// SalesHistory returns the full ledger in insertion order with item names
// resolved against the live catalog.
func (s *ReportService) SalesHistory(ctx context.Context) ([]HistorySale, error) {
	records, err := s.ledgerRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]HistorySale, 0, len(records))
	for _, record := range records {
		ids := make([]string, 0, len(record.Items))
		for id := range record.Items {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		sale := HistorySale{
			Datetime:   record.Datetime,
			Total:      record.Total,
			MoneyGiven: record.MoneyGiven,
			ChangeDue:  record.ChangeDue,
			Discount:   record.Discount,
			TotalItems: record.TotalItems,
			Items:      make([]ReportLine, 0, len(ids)),
		}
		for _, id := range ids {
			sale.Items = append(sale.Items, ReportLine{
				ItemID:   id,
				Name:     s.resolveName(ctx, id),
				Quantity: record.Items[id],
			})
		}
		history = append(history, sale)
	}
	return history, nil
}
