package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

// Persister stores the serialized cart line list in a single well-known
// slot. Load returns (nil, nil) when the slot is absent or empty.
type Persister interface {
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
}

// persistedLine is the wire form of one cart line: {"id": ..., "qty": ...}.
// The slot format carries no version; an unparseable value is treated as an
// empty cart by the store.
type persistedLine struct {
	ID  int64 `json:"id"`
	Qty int   `json:"qty"`
}

func encodeLines(lines []domain.CartLine) ([]byte, error) {
	out := make([]persistedLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, persistedLine{ID: line.ProductID, Qty: line.Quantity})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode cart slot: %w", err)
	}
	return data, nil
}

func decodeLines(data []byte) ([]domain.CartLine, error) {
	var raw []persistedLine
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode cart slot: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, domain.CartLine{ProductID: line.ID, Quantity: line.Qty})
	}
	return lines, nil
}
