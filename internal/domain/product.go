package domain

import "github.com/shopspring/decimal"

// NoStockLimit marks a product whose purchasable quantity is not bounded
// by reported stock. Any negative ceiling is treated as unbounded.
const NoStockLimit = -1

type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	// Stock is nil when the API does not report stock for this product.
	Stock *int `json:"stock"`
}
