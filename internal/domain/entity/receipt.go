package entity

import (
	"fmt"
	"strings"
)

// ReceiptItem represents a single line item on a receipt, priced from the
// catalog at completion time.
type ReceiptItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// Receipt is a value object representing one completed sale as presented to
// the customer. It is NOT persisted — it is derived from the cart and the
// catalog when a sale completes.
type Receipt struct {
	Date            string        `json:"date"`
	Items           []ReceiptItem `json:"items"`
	SubTotal        float64       `json:"sub_total"`
	DiscountPercent float64       `json:"discount_percent"`
	DiscountAmount  float64       `json:"discount_amount"`
	Total           float64       `json:"total"`
	Paid            float64       `json:"paid"`
	Change          float64       `json:"change"`
}

// Text renders the receipt as plain text for display or export.
func (r *Receipt) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Receipt - %s\n", r.Date)
	for _, item := range r.Items {
		fmt.Fprintf(&b, "%s x%d @ %.2f = %.2f\n", item.Name, item.Quantity, item.UnitPrice, item.Total)
	}
	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", r.SubTotal)
	fmt.Fprintf(&b, "Discount: %.2f\n", r.DiscountAmount)
	fmt.Fprintf(&b, "Total: %.2f\n", r.Total)
	fmt.Fprintf(&b, "Paid: %.2f\n", r.Paid)
	fmt.Fprintf(&b, "Change: %.2f", r.Change)

	return b.String()
}
