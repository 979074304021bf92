package checkout

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/cart"
	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

type memPersister struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

func (m *memPersister) Load(context.Context) ([]domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lines, nil
}

func (m *memPersister) Save(_ context.Context, lines []domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append([]domain.CartLine(nil), lines...)
	return nil
}

type mockOrdersAPI struct {
	mu     sync.Mutex
	err    error
	nextID int64
	drafts []domain.OrderDraft
}

func (m *mockOrdersAPI) CreateOrder(_ context.Context, draft domain.OrderDraft) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts = append(m.drafts, draft)
	if m.err != nil {
		return 0, m.err
	}
	return m.nextID, nil
}

func (m *mockOrdersAPI) draftCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.drafts)
}

type mockRefresher struct {
	mu    sync.Mutex
	calls int
}

func (m *mockRefresher) Refresh(context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

func newFilledCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore(&memPersister{}, zerolog.Nop())
	store.Replace(context.Background(), []domain.CartLine{
		{ProductID: 5, Quantity: 2},
		{ProductID: 9, Quantity: 1},
	})
	return store
}

func asapRequest() Request {
	return Request{AddressID: 3, DeliveryType: domain.DeliveryASAP}
}

func TestSubmit_EmptyCartMakesNoCall(t *testing.T) {
	store := cart.NewStore(&memPersister{}, zerolog.Nop())
	api := &mockOrdersAPI{nextID: 42}
	sut := NewService(store, api, nil, zerolog.Nop())

	_, err := sut.Submit(context.Background(), asapRequest())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, api.draftCount())
}

func TestSubmit_NoAddress(t *testing.T) {
	api := &mockOrdersAPI{nextID: 42}
	sut := NewService(newFilledCart(t), api, nil, zerolog.Nop())

	_, err := sut.Submit(context.Background(), Request{DeliveryType: domain.DeliveryASAP})
	assert.ErrorIs(t, err, ErrNoAddress)
	assert.Equal(t, 0, api.draftCount())
}

func TestValidate_UnknownDeliveryType(t *testing.T) {
	sut := NewService(newFilledCart(t), &mockOrdersAPI{}, nil, zerolog.Nop())

	err := sut.Validate(Request{AddressID: 3, DeliveryType: "DRONE"})
	assert.ErrorIs(t, err, ErrDeliveryType)
}

func TestSubmit_ScheduledRequiresDateAndTime(t *testing.T) {
	api := &mockOrdersAPI{nextID: 42}
	sut := NewService(newFilledCart(t), api, nil, zerolog.Nop())

	req := Request{
		AddressID:     3,
		DeliveryType:  domain.DeliveryScheduled,
		ScheduledDate: "2026-09-02",
	}
	_, err := sut.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleIncomplete)
	assert.Equal(t, 0, api.draftCount())

	// Filling the time enables submission.
	req.ScheduledTime = "14:30"
	orderID, err := sut.Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	require.Equal(t, 1, api.draftCount())
	assert.Equal(t, "2026-09-02", api.drafts[0].ScheduledDate)
	assert.Equal(t, "14:30", api.drafts[0].ScheduledTime)
}

func TestSubmit_Success(t *testing.T) {
	store := newFilledCart(t)
	api := &mockOrdersAPI{nextID: 42}
	refresher := &mockRefresher{}
	sut := NewService(store, api, refresher, zerolog.Nop())

	orderID, err := sut.Submit(context.Background(), asapRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)

	// Cart cleared atomically on success, persistence write included.
	assert.True(t, store.IsEmpty())
	assert.Equal(t, 1, refresher.calls, "a fresh poll cycle should be triggered")

	require.Len(t, api.drafts, 1)
	draft := api.drafts[0]
	assert.Equal(t, []domain.CartLine{
		{ProductID: 5, Quantity: 2},
		{ProductID: 9, Quantity: 1},
	}, draft.Lines)
	assert.Equal(t, int64(3), draft.AddressID)
	assert.Equal(t, domain.DeliveryASAP, draft.DeliveryType)
	assert.NotEmpty(t, draft.IdempotencyKey)
}

func TestSubmit_FailureLeavesCartUntouched(t *testing.T) {
	store := newFilledCart(t)
	linesBefore := store.Lines()
	api := &mockOrdersAPI{err: fmt.Errorf("network error")}
	refresher := &mockRefresher{}
	sut := NewService(store, api, refresher, zerolog.Nop())

	_, err := sut.Submit(context.Background(), asapRequest())
	require.ErrorContains(t, err, "network error")
	assert.Equal(t, linesBefore, store.Lines())
	assert.Equal(t, 0, refresher.calls)

	// Retrying after the cause is fixed succeeds without re-adding items.
	api.mu.Lock()
	api.err = nil
	api.nextID = 43
	api.mu.Unlock()

	orderID, err := sut.Submit(context.Background(), asapRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(43), orderID)
	assert.Equal(t, linesBefore, api.drafts[1].Lines)
	assert.True(t, store.IsEmpty())
}

func TestSubmit_IdempotencyKeysDiffer(t *testing.T) {
	store := newFilledCart(t)
	api := &mockOrdersAPI{nextID: 1}
	sut := NewService(store, api, nil, zerolog.Nop())

	_, err := sut.Submit(context.Background(), asapRequest())
	require.NoError(t, err)

	store.Replace(context.Background(), []domain.CartLine{{ProductID: 5, Quantity: 1}})
	_, err = sut.Submit(context.Background(), asapRequest())
	require.NoError(t, err)

	require.Len(t, api.drafts, 2)
	assert.NotEqual(t, api.drafts[0].IdempotencyKey, api.drafts[1].IdempotencyKey)
}
