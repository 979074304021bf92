package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func makeSnapshot(id int64, status OrderStatus, total string, itemCount int) OrderSnapshot {
	items := make([]OrderItem, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		items = append(items, OrderItem{
			ID:        int64(i + 1),
			ProductID: int64(100 + i),
			Quantity:  1,
			Price:     decimal.NewFromInt(10),
		})
	}
	return OrderSnapshot{
		ID:          id,
		Status:      status,
		TotalAmount: decimal.RequireFromString(total),
		ItemsCount:  itemCount,
		Items:       items,
		CreatedAt:   time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSnapshotsEqual_Identical(t *testing.T) {
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	assert.True(t, SnapshotsEqual(a, b))
}

func TestSnapshotsEqual_EmptyAndNil(t *testing.T) {
	assert.True(t, SnapshotsEqual(nil, []OrderSnapshot{}))
	assert.True(t, SnapshotsEqual(nil, nil))
}

func TestSnapshotsEqual_DifferentLength(t *testing.T) {
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{
		makeSnapshot(1, OrderStatusNew, "100", 2),
		makeSnapshot(2, OrderStatusNew, "50", 1),
	}
	assert.False(t, SnapshotsEqual(a, b))
}

func TestSnapshotsEqual_DifferentStatus(t *testing.T) {
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{makeSnapshot(1, OrderStatusPreparing, "100", 2)}
	assert.False(t, SnapshotsEqual(a, b))
}

func TestSnapshotsEqual_DifferentTotal(t *testing.T) {
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100.50", 2)}
	assert.False(t, SnapshotsEqual(a, b))
}

func TestSnapshotsEqual_TotalScaleDoesNotMatter(t *testing.T) {
	// 100 and 100.00 are the same amount
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100.00", 2)}
	assert.True(t, SnapshotsEqual(a, b))
}

func TestSnapshotsEqual_DifferentItemsCount(t *testing.T) {
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b[0].ItemsCount = 3
	assert.False(t, SnapshotsEqual(a, b))
}

func TestSnapshotsEqual_DifferentItemListLength(t *testing.T) {
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b[0].Items = b[0].Items[:1]
	assert.False(t, SnapshotsEqual(a, b))
}

func TestSnapshotsEqual_PositionalComparison(t *testing.T) {
	first := makeSnapshot(1, OrderStatusNew, "100", 2)
	second := makeSnapshot(2, OrderStatusPreparing, "50", 1)

	a := []OrderSnapshot{first, second}
	b := []OrderSnapshot{second, first}
	assert.False(t, SnapshotsEqual(a, b), "same set in a different order is not equal")
}

func TestSnapshotsEqual_IgnoresNestedItemFields(t *testing.T) {
	// The comparison is shallow: a per-item price change with no count or
	// total change goes undetected.
	a := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b := []OrderSnapshot{makeSnapshot(1, OrderStatusNew, "100", 2)}
	b[0].Items[0].Price = decimal.NewFromInt(999)
	assert.True(t, SnapshotsEqual(a, b))
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusNew.IsTerminal())
	assert.False(t, OrderStatusWaitingPayment.IsTerminal())
	assert.False(t, OrderStatusPreparing.IsTerminal())
	assert.False(t, OrderStatusDelivering.IsTerminal())
}
