package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

// ProductAPI is the collaborator that owns price and stock data.
type ProductAPI interface {
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)
}

// StockProvider answers how many units of a product may still be added to
// the cart. Concurrent lookups for the same product collapse into one
// request, and repeated upstream failures trip a circuit breaker.
type StockProvider struct {
	products ProductAPI
	sfg      singleflight.Group
	cb       *gobreaker.CircuitBreaker[*domain.Product]
}

func NewStockProvider(products ProductAPI) *StockProvider {
	return &StockProvider{
		products: products,
		cb: gobreaker.NewCircuitBreaker[*domain.Product](gobreaker.Settings{
			Name: "product-api",
		}),
	}
}

// Ceiling returns the stock ceiling for a product, or domain.NoStockLimit
// when the API does not report stock for it. A lookup failure is transient:
// callers keep whatever ceiling they last knew.
func (p *StockProvider) Ceiling(ctx context.Context, productID int64) (int, error) {
	product, err := p.lookup(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("stock lookup for product %d: %w", productID, err)
	}
	if product.Stock == nil {
		return domain.NoStockLimit, nil
	}
	return *product.Stock, nil
}

// Product returns the full product record, price included, through the
// same dedup and breaker path as Ceiling.
func (p *StockProvider) Product(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := p.lookup(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product lookup for %d: %w", productID, err)
	}
	return product, nil
}

func (p *StockProvider) lookup(ctx context.Context, productID int64) (*domain.Product, error) {
	v, err, _ := p.sfg.Do(strconv.FormatInt(productID, 10), func() (interface{}, error) {
		return p.cb.Execute(func() (*domain.Product, error) {
			return p.products.GetProduct(ctx, productID)
		})
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}
