package entity

// Item represents one stocked entry in the catalog, keyed by a user-assigned
// unique ID. Quantity never goes negative; it is mutated only through
// catalog operations.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// LowStock reports whether the item's quantity has fallen below the alert
// threshold.
func (i *Item) LowStock(threshold int) bool {
	return i.Quantity < threshold
}
