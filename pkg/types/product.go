package types

import (
	"github.com/shopspring/decimal"
)

// Product mirrors a catalog entry as returned by the remote catalog API.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      *Rating         `json:"rating,omitempty"`
}

// Rating is the optional average/count pair attached to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// ProductDraft is the payload for a new listing. Price is validated as a float so the
// validator's numeric tags apply to decimals.
type ProductDraft struct {
	Title       string          `json:"title" validate:"required,min=3"`
	Description string          `json:"description" validate:"required,min=10"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Category    string          `json:"category" validate:"required"`
	Image       string          `json:"image" validate:"required,url"`
}
