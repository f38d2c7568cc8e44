package wrongbank

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// Remove deletes one entry. Removing an unknown id is a no-op and reports false.
func (b *Bank) Remove(ctx context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.index[id]
	if !ok {
		return false, nil
	}

	next := slices.Delete(b.cloneEntries(), i, i+1)
	if err := b.commit(ctx, next); err != nil {
		return false, fmt.Errorf("wrongbank: remove: %w", err)
	}

	b.log.InfoContext(ctx, "entry removed", slog.String("id", id))
	return true, nil
}

// Clear deletes every entry. It refuses to run unless confirmed is true.
func (b *Bank) Clear(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	removed := len(b.entries)
	if err := b.commit(ctx, []domain.BankEntry{}); err != nil {
		return fmt.Errorf("wrongbank: clear: %w", err)
	}

	b.log.InfoContext(ctx, "bank cleared", slog.Int("removed", removed))
	return nil
}
