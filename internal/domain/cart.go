package domain

// CartLine is one product's desired quantity in the active cart.
// A product appears at most once in a cart; quantity is always >= 1
// (a line reaching zero is removed, not retained).
type CartLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
