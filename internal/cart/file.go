package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/breadwithmeth/ecobazar-frontend-sub000/internal/domain"
)

// FilePersister keeps the cart slot in one JSON file on disk. This is the
// per-device slot: whatever was in the cart survives a restart on the same
// machine.
type FilePersister struct {
	path string
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

func (f *FilePersister) Load(_ context.Context) ([]domain.CartLine, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart slot: %w", err)
	}
	return decodeLines(data)
}

func (f *FilePersister) Save(_ context.Context, lines []domain.CartLine) error {
	data, err := encodeLines(lines)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}
