package request

// CreateItemRequest represents an item creation request
type CreateItemRequest struct {
	ID       string  `json:"id" binding:"required,min=1,max=100"`
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Quantity int     `json:"quantity" binding:"min=0"`
	Price    float64 `json:"price" binding:"min=0"`
}

// UpdateItemRequest represents an item update request; all three mutable
// fields are replaced.
type UpdateItemRequest struct {
	Name     string  `json:"name" binding:"required,min=1,max=255"`
	Quantity int     `json:"quantity" binding:"min=0"`
	Price    float64 `json:"price" binding:"min=0"`
}

// AdjustStockRequest represents an incoming or outgoing stock adjustment
type AdjustStockRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}
