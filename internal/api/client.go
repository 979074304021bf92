package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

const maxResponseBodySize = 1 << 20 // 1MB

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client talks to the storefront REST API. Every request carries the
// Telegram user id, and every response is normalized to one canonical shape
// before it reaches the core packages.
type Client struct {
	baseURL    string
	telegramID string
	hc         *http.Client
	logger     zerolog.Logger
}

func NewClient(baseURL, telegramID string, timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		telegramID: telegramID,
		hc: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

type orderItemDTO struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderDTO struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ItemsCount  int             `json:"itemsCount"`
	Items       []orderItemDTO  `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListOrders fetches the current user's orders. All statuses are returned;
// filtering to active orders is the poller's concern.
func (c *Client) ListOrders(ctx context.Context) ([]domain.OrderSnapshot, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/orders/my", nil)
	if err != nil {
		return nil, err
	}

	var dtos []orderDTO
	if err := unmarshalList(data, []string{"orders"}, &dtos); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.OrderSnapshot, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, convertOrder(dto))
	}
	return orders, nil
}

func convertOrder(dto orderDTO) domain.OrderSnapshot {
	items := make([]domain.OrderItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, domain.OrderItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	itemsCount := dto.ItemsCount
	if itemsCount == 0 {
		itemsCount = len(items)
	}

	return domain.OrderSnapshot{
		ID:          dto.ID,
		Status:      domain.OrderStatus(dto.Status),
		TotalAmount: dto.TotalAmount,
		ItemsCount:  itemsCount,
		Items:       items,
		CreatedAt:   dto.CreatedAt,
	}
}

type createOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type createOrderRequest struct {
	Items          []createOrderItem `json:"items"`
	AddressID      int64             `json:"addressId"`
	DeliveryType   string            `json:"deliveryType"`
	ScheduledDate  string            `json:"scheduledDate,omitempty"`
	ScheduledTime  string            `json:"scheduledTime,omitempty"`
	Comment        string            `json:"comment,omitempty"`
	IdempotencyKey string            `json:"idempotencyKey,omitempty"`
}

// CreateOrder submits the draft and returns the created order id.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (int64, error) {
	items := make([]createOrderItem, 0, len(draft.Lines))
	for _, line := range draft.Lines {
		items = append(items, createOrderItem{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	body := createOrderRequest{
		Items:          items,
		AddressID:      draft.AddressID,
		DeliveryType:   string(draft.DeliveryType),
		ScheduledDate:  draft.ScheduledDate,
		ScheduledTime:  draft.ScheduledTime,
		Comment:        draft.Comment,
		IdempotencyKey: draft.IdempotencyKey,
	}

	data, err := c.do(ctx, http.MethodPost, "/api/orders", body)
	if err != nil {
		return 0, err
	}

	var created struct {
		ID int64 `json:"id"`
	}
	if err := unmarshalObject(data, &created); err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	if created.ID == 0 {
		return 0, fmt.Errorf("create order: %w: missing order id", ErrMalformedResponse)
	}
	return created.ID, nil
}

// ListAddresses fetches the current user's saved delivery addresses.
func (c *Client) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/addresses/my", nil)
	if err != nil {
		return nil, err
	}

	var addresses []domain.Address
	if err := unmarshalList(data, []string{"addresses"}, &addresses); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress appends a new delivery address for the current user.
func (c *Client) CreateAddress(ctx context.Context, address string) (*domain.Address, error) {
	body := map[string]string{"address": address}

	data, err := c.do(ctx, http.MethodPost, "/api/addresses", body)
	if err != nil {
		return nil, err
	}

	var created domain.Address
	if err := unmarshalObject(data, &created); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &created, nil
}

// GetProduct fetches one product with its price and reported stock.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", productID), nil)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := unmarshalObject(data, &product); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &product, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Telegram-ID", c.telegramID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api request failed")
		return nil, fmt.Errorf("%s %s: %w: %d", method, path, ErrUnexpectedStatus, resp.StatusCode)
	}
	return data, nil
}
