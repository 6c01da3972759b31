package types

import "github.com/shopspring/decimal"

// The remote catalog speaks JSON numbers for prices, and persisted carts follow suit.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
