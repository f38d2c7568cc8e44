package wrongbank

import (
	"context"
	"fmt"
	"log/slog"
)

// Load replaces the in-memory bank with the persisted snapshot.
// A missing key yields an empty bank. A corrupt snapshot also yields an empty
// bank, is logged at WARN and is reported by Recovered. Only store failures
// are returned.
func (b *Bank) Load(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	blob, ok, err := b.store.Get(ctx, b.cfg.Key)
	if err != nil {
		return fmt.Errorf("wrongbank: load: %w", err)
	}

	b.recovered = false
	if !ok || len(blob) == 0 {
		b.entries = nil
		b.index = make(map[string]int)
		b.log.InfoContext(ctx, "bank empty", slog.String("key", b.cfg.Key))
		return nil
	}

	entries, err := decodeSnapshot(blob)
	if err != nil {
		b.recovered = true
		b.entries = nil
		b.index = make(map[string]int)
		b.log.WarnContext(ctx, "bank snapshot unreadable, starting empty",
			slog.String("key", b.cfg.Key),
			slog.Int("bytes", len(blob)),
			slog.String("error", err.Error()),
		)
		return nil
	}

	b.entries = entries
	b.index = buildIndex(entries)
	b.log.InfoContext(ctx, "bank loaded",
		slog.String("key", b.cfg.Key),
		slog.Int("entries", len(entries)),
	)
	return nil
}
