package entity

import (
	"fmt"
	"time"
)

// DatetimeLayout is the timestamp format written to the sales history file.
const DatetimeLayout = "2006-01-02 15:04:05"

// saleTimeLayouts are the formats accepted when reading history back.
// Records written by older exports used RFC 3339 or a bare date.
var saleTimeLayouts = []string{
	DatetimeLayout,
	time.RFC3339,
	"2006-01-02",
}

// SaleRecord is one completed transaction, appended to the sales ledger and
// never mutated afterwards. Items maps item ID to quantity sold; unit prices
// are not stored per line, so receipt and report views resolve names and
// prices against the live catalog.
type SaleRecord struct {
	Datetime   string         `json:"datetime"`
	Items      map[string]int `json:"items"`
	Total      float64        `json:"total"`
	MoneyGiven float64        `json:"money_given"`
	ChangeDue  float64        `json:"change_due"`
	Discount   float64        `json:"discount"`
	TotalItems int            `json:"total_items"`
}

// Time parses the record's timestamp, accepting any of the known layouts.
func (r *SaleRecord) Time() (time.Time, error) {
	for _, layout := range saleTimeLayouts {
		if t, err := time.Parse(layout, r.Datetime); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("malformed sale timestamp %q", r.Datetime)
}
