package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

// RedisPersister keeps the cart slot in Redis, keyed by the Telegram user
// id, so the same cart is visible from any device. Concurrent writers are
// last-write-wins, same as the file slot.
type RedisPersister struct {
	client *redis.Client
	userID string
}

func NewRedisPersister(client *redis.Client, userID string) *RedisPersister {
	return &RedisPersister{client: client, userID: userID}
}

func (r *RedisPersister) Load(ctx context.Context) ([]domain.CartLine, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return decodeLines(data)
}

func (r *RedisPersister) Save(ctx context.Context, lines []domain.CartLine) error {
	data, err := encodeLines(lines)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisPersister) key() string {
	return fmt.Sprintf("cart:%s", r.userID)
}
