package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

// Store holds what the user intends to order, independent of any screen.
// It is the only writer of the persistent cart slot and serializes the full
// line list there after every mutation, so an abrupt termination right
// after a mutation loses at most the in-flight call.
//
// Boundary conditions (ceiling reached, product absent, zero ceiling) are
// no-ops, not errors: the server re-validates stock at submission time.
type Store struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	persister Persister
	logger    zerolog.Logger
}

func NewStore(persister Persister, logger zerolog.Logger) *Store {
	return &Store{persister: persister, logger: logger}
}

// Restore loads the persisted line list. An absent or unparseable slot
// yields an empty cart, not an error.
func (s *Store) Restore(ctx context.Context) {
	loaded, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("cart slot unreadable, starting empty")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = normalizeLines(loaded)
}

// AddOrIncrement puts one more unit of a product into the cart. ceiling is
// the stock ceiling; a negative value means unbounded. Reports whether the
// cart changed: a line already at its ceiling, or a ceiling of zero, leaves
// the cart as it was.
func (s *Store) AddOrIncrement(ctx context.Context, productID int64, ceiling int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ceiling == 0 {
		return false
	}

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if ceiling > 0 && s.lines[i].Quantity >= ceiling {
			return false
		}
		s.lines[i].Quantity++
		s.persistLocked(ctx)
		return true
	}

	s.lines = append(s.lines, domain.CartLine{ProductID: productID, Quantity: 1})
	s.persistLocked(ctx)
	return true
}

// DecrementOrRemove takes one unit of a product out of the cart, removing
// the line entirely when its quantity reaches zero. Absent products are a
// no-op.
func (s *Store) DecrementOrRemove(ctx context.Context, productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if s.lines[i].Quantity > 1 {
			s.lines[i].Quantity--
		} else {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		s.persistLocked(ctx)
		return true
	}
	return false
}

// Replace swaps in a whole new line list — an empty one after a successful
// order submission, or an externally validated cart state.
func (s *Store) Replace(ctx context.Context, lines []domain.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = normalizeLines(lines)
	s.persistLocked(ctx)
}

// Lines returns a copy of the current line list.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the current quantity for a product, zero when absent.
func (s *Store) Quantity(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range s.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// Total sums quantity × price over the lines. Prices are owned by the
// product catalog, so the caller supplies the lookup.
func (s *Store) Total(price func(productID int64) decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(price(line.ProductID).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// persistLocked writes the full line list to the slot. Failures are logged,
// not surfaced: the in-memory cart stays authoritative for this session.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.persister.Save(ctx, s.lines); err != nil {
		s.logger.Error().Err(err).Msg("persist cart failed")
	}
}

// normalizeLines enforces the cart invariants on externally supplied line
// lists: each product at most once, every quantity >= 1. First occurrence
// wins for duplicates.
func normalizeLines(lines []domain.CartLine) []domain.CartLine {
	seen := make(map[int64]struct{}, len(lines))
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if _, dup := seen[line.ProductID]; dup {
			continue
		}
		seen[line.ProductID] = struct{}{}
		out = append(out, line)
	}
	return out
}
