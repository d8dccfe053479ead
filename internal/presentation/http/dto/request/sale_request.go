package request

// AddLineRequest represents adding one item to the current sale
type AddLineRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// CompleteSaleRequest represents finalizing the current sale
type CompleteSaleRequest struct {
	Discount   float64  `json:"discount" binding:"gte=0,lte=100"`
	MoneyGiven *float64 `json:"money_given" binding:"required,gte=0"`
}
