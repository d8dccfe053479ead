package entity

import "sync"

// Cart accumulates line items for one in-progress sale. It is scoped to a
// single cashier, lives only in memory, and is cleared when the sale
// completes or the cashier starts over. A cart guards its own lines, so
// concurrent requests carrying the same cashier's token are safe.
type Cart struct {
	mu    sync.Mutex
	lines map[string]int
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make(map[string]int)}
}

// Add accumulates qty for the given item; repeated adds of the same item
// stack up.
func (c *Cart) Add(itemID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines[itemID] += qty
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// TotalItems returns the sum of all requested quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, qty := range c.lines {
		total += qty
	}
	return total
}

// Lines returns a copy of the cart contents, safe for the caller to keep
// after the cart is cleared.
func (c *Cart) Lines() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make(map[string]int, len(c.lines))
	for id, qty := range c.lines {
		lines[id] = qty
	}
	return lines
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[string]int)
}
