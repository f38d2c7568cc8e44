package wrongbank

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// storedEntry is the persisted shape of one entry; addedAt is epoch millis.
type storedEntry struct {
	ID          string `json:"id"`
	Word        string `json:"word"`
	DayKey      string `json:"dayKey"`
	MeaningText string `json:"meaningText"`
	AddedAt     int64  `json:"addedAt"`
	Seen        int    `json:"seen"`
	Wrong       int    `json:"wrong"`
}

func encodeSnapshot(entries []domain.BankEntry) ([]byte, error) {
	stored := make([]storedEntry, len(entries))
	for i, e := range entries {
		var added int64
		if !e.AddedAt.IsZero() {
			added = e.AddedAt.UnixMilli()
		}
		stored[i] = storedEntry{
			ID:          e.ID,
			Word:        e.Word,
			DayKey:      e.DayKey,
			MeaningText: e.MeaningText,
			AddedAt:     added,
			Seen:        e.Seen,
			Wrong:       e.Wrong,
		}
	}

	blob, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return blob, nil
}

// decodeSnapshot parses a stored blob. Entries without a word or day are
// dropped, ids are recomputed from day and word, and a repeated identity
// keeps its first occurrence. An unparseable blob returns ErrStorageCorrupt.
func decodeSnapshot(blob []byte) ([]domain.BankEntry, error) {
	var stored []storedEntry
	if err := json.Unmarshal(blob, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}

	entries := make([]domain.BankEntry, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for _, s := range stored {
		word := strings.TrimSpace(s.Word)
		day := strings.TrimSpace(s.DayKey)
		if word == "" || day == "" {
			continue
		}

		id := domain.BankIdentity(day, word)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		e := domain.BankEntry{
			ID:          id,
			Word:        word,
			DayKey:      day,
			MeaningText: s.MeaningText,
			Seen:        max(s.Seen, 0),
			Wrong:       max(s.Wrong, 1),
		}
		if s.AddedAt > 0 {
			e.AddedAt = time.UnixMilli(s.AddedAt)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
