package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/cart"
	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

// Validation errors returned by Validate and Submit. While any of these
// holds, submission stays unavailable and no create-order call is made.
var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrNoAddress          = errors.New("no address selected")
	ErrDeliveryType       = errors.New("unknown delivery type")
	ErrScheduleIncomplete = errors.New("scheduled delivery needs date and time")
)

// OrdersAPI creates the order server-side.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (int64, error)
}

// Refresher is poked after a successful submission so the active-order list
// picks up the new order without waiting for the next tick.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Request carries the user's checkout choices.
type Request struct {
	AddressID     int64
	DeliveryType  domain.DeliveryType
	ScheduledDate string
	ScheduledTime string
	Comment       string
}

// Service turns the current cart plus checkout choices into one order
// creation call and clears the cart once the server accepts it. On failure
// the cart is left untouched so the user can retry without re-entering
// items.
type Service struct {
	cart      *cart.Store
	orders    OrdersAPI
	refresher Refresher
	logger    zerolog.Logger
}

// NewService wires the checkout. refresher may be nil.
func NewService(cartStore *cart.Store, orders OrdersAPI, refresher Refresher, logger zerolog.Logger) *Service {
	return &Service{
		cart:      cartStore,
		orders:    orders,
		refresher: refresher,
		logger:    logger,
	}
}

// Validate reports why submission is currently unavailable, nil when it can
// proceed.
func (s *Service) Validate(req Request) error {
	if s.cart.IsEmpty() {
		return ErrEmptyCart
	}
	if req.AddressID == 0 {
		return ErrNoAddress
	}
	switch req.DeliveryType {
	case domain.DeliveryASAP:
	case domain.DeliveryScheduled:
		if strings.TrimSpace(req.ScheduledDate) == "" || strings.TrimSpace(req.ScheduledTime) == "" {
			return ErrScheduleIncomplete
		}
	default:
		return ErrDeliveryType
	}
	return nil
}

// Submit creates the order and returns its id. On success the cart is
// replaced with an empty list, which also rewrites the persistent slot.
func (s *Service) Submit(ctx context.Context, req Request) (int64, error) {
	if err := s.Validate(req); err != nil {
		return 0, err
	}

	draft := domain.OrderDraft{
		Lines:          s.cart.Lines(),
		AddressID:      req.AddressID,
		DeliveryType:   req.DeliveryType,
		ScheduledDate:  req.ScheduledDate,
		ScheduledTime:  req.ScheduledTime,
		Comment:        req.Comment,
		IdempotencyKey: uuid.NewString(),
	}

	orderID, err := s.orders.CreateOrder(ctx, draft)
	if err != nil {
		s.logger.Error().Err(err).Msg("order submission failed")
		return 0, fmt.Errorf("create order: %w", err)
	}

	s.cart.Replace(ctx, nil)
	if s.refresher != nil {
		s.refresher.Refresh(ctx)
	}

	s.logger.Info().Int64("order_id", orderID).Msg("order submitted")
	return orderID, nil
}
