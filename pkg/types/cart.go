package types

import "github.com/shopspring/decimal"

// CartItem is a product snapshot with its quantity. Quantity is always at least 1.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity.
func (c CartItem) Subtotal() decimal.Decimal {
	return c.Product.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Cart is the read model returned to callers.
type Cart struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// AddCartItemRequest adds one unit of a product to the cart.
type AddCartItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// SetQuantityRequest sets an absolute quantity. Zero or less removes the item.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
