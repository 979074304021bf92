package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew            OrderStatus = "NEW"
	OrderStatusWaitingPayment OrderStatus = "WAITING_PAYMENT"
	OrderStatusPreparing      OrderStatus = "PREPARING"
	OrderStatusDelivering     OrderStatus = "DELIVERING"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCancelled      OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further transitions can happen for this
// status. Terminal orders are excluded from active tracking.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderSnapshot is a read-only projection of one server-side order, held
// locally for display and change detection. All state transitions happen
// server-side and are only observed here.
type OrderSnapshot struct {
	ID          int64           `json:"id"`
	Status      OrderStatus     `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemsCount  int             `json:"itemsCount"`
	Items       []OrderItem     `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SnapshotsEqual compares two snapshot lists positionally over id, status,
// totalAmount, itemsCount and item list length. The comparison is shallow:
// a change inside an item that leaves all compared fields intact goes
// undetected. Callers rely on the server returning orders in a stable
// order for the positional comparison to be meaningful.
func SnapshotsEqual(a, b []OrderSnapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].Status != b[i].Status ||
			!a[i].TotalAmount.Equal(b[i].TotalAmount) ||
			a[i].ItemsCount != b[i].ItemsCount ||
			len(a[i].Items) != len(b[i].Items) {
			return false
		}
	}
	return true
}
