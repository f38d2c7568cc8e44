// Package wrongbank keeps the durable, deduplicated set of missed words.
// Every mutation writes the full snapshot through to a key-value store
// before it becomes visible.
package wrongbank

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/daydrill/internal/domain"
)

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, blob []byte) error
}

type tabularCodec interface {
	Decode(name string, data []byte) ([]domain.Row, error)
	Encode(format domain.ExportFormat, header []string, records [][]string) ([]byte, error)
}

// Config holds bank settings.
type Config struct {
	Key          string
	ExportZone   *time.Location
	ExportPrefix string
}

// Bank is the wrong-answer bank. It is safe for concurrent use.
type Bank struct {
	log   *slog.Logger
	store kvStore
	codec tabularCodec
	cfg   Config
	now   func() time.Time

	mu        sync.Mutex
	entries   []domain.BankEntry
	index     map[string]int
	recovered bool
}

// NewBank creates an empty bank. Call Load to read the persisted snapshot.
func NewBank(log *slog.Logger, store kvStore, codec tabularCodec, cfg Config) *Bank {
	if cfg.Key == "" {
		cfg.Key = "wrongBank"
	}
	if cfg.ExportZone == nil {
		cfg.ExportZone = ParseExportZone(DefaultExportZone)
	}
	if cfg.ExportPrefix == "" {
		cfg.ExportPrefix = "오답노트"
	}
	return &Bank{
		log:   log.With("service", "wrongbank"),
		store: store,
		codec: codec,
		cfg:   cfg,
		now:   time.Now,
		index: make(map[string]int),
	}
}

// Entries returns a copy of all entries in insertion order.
func (b *Bank) Entries() []domain.BankEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]domain.BankEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries.
func (b *Bank) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Get returns one entry by identity key.
func (b *Bank) Get(id string) (domain.BankEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i, ok := b.index[id]
	if !ok {
		return domain.BankEntry{}, false
	}
	return b.entries[i], true
}

// Recovered reports whether the last Load discarded an unreadable snapshot.
func (b *Bank) Recovered() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.recovered
}

// commit persists next and, only on success, makes it the current state.
// Callers hold b.mu.
func (b *Bank) commit(ctx context.Context, next []domain.BankEntry) error {
	blob, err := encodeSnapshot(next)
	if err != nil {
		return err
	}
	if err := b.store.Set(ctx, b.cfg.Key, blob); err != nil {
		return err
	}

	b.entries = next
	b.index = buildIndex(next)
	return nil
}

func buildIndex(entries []domain.BankEntry) map[string]int {
	idx := make(map[string]int, len(entries))
	for i, e := range entries {
		idx[e.ID] = i
	}
	return idx
}

func (b *Bank) cloneEntries() []domain.BankEntry {
	next := make([]domain.BankEntry, len(b.entries), len(b.entries)+1)
	copy(next, b.entries)
	return next
}
