package wrongbank

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// ImportReport summarises a MergeImportedRows call.
type ImportReport struct {
	Imported int `json:"imported"`
	Merged   int `json:"merged"`
	Skipped  int `json:"skipped"`
}

// RecordMiss merges a missed question into the bank.
func (b *Bank) RecordMiss(ctx context.Context, q domain.Question) error {
	_, err := b.MergeMiss(ctx, q)
	return err
}

// MergeMiss upserts a missed question by identity. A new entry starts at
// wrong=1, seen=0 and addedAt=now; an existing one gets wrong+1 and the
// question's current meaning text. The snapshot is persisted before the
// change becomes visible.
func (b *Bank) MergeMiss(ctx context.Context, q domain.Question) (domain.BankEntry, error) {
	row := domain.BankRow{DayKey: q.DayKey, Word: q.Word, MeaningText: q.MeaningText()}
	if !validRow(row) {
		return domain.BankEntry{}, domain.NewValidationError("question", "word and day are required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.cloneEntries()
	next, entry, _ := b.upsert(next, buildIndex(next), row)
	if err := b.commit(ctx, next); err != nil {
		return domain.BankEntry{}, fmt.Errorf("wrongbank: merge miss: %w", err)
	}

	b.log.InfoContext(ctx, "miss recorded",
		slog.String("id", entry.ID),
		slog.Int("wrong", entry.Wrong),
	)
	return entry, nil
}

// MergeImportedRows applies the miss rule once per row. Rows without a word
// or day are skipped. If no row is usable nothing changes and
// ErrImportNoRows is returned.
func (b *Bank) MergeImportedRows(ctx context.Context, rows []domain.BankRow) (ImportReport, error) {
	var report ImportReport

	usable := make([]domain.BankRow, 0, len(rows))
	for _, r := range rows {
		r = domain.BankRow{
			DayKey:      strings.TrimSpace(r.DayKey),
			Word:        strings.TrimSpace(r.Word),
			MeaningText: strings.TrimSpace(r.MeaningText),
		}
		if !validRow(r) {
			report.Skipped++
			continue
		}
		usable = append(usable, r)
	}
	if len(usable) == 0 {
		return report, domain.ErrImportNoRows
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next := b.cloneEntries()
	idx := buildIndex(next)
	for _, r := range usable {
		var added bool
		next, _, added = b.upsert(next, idx, r)
		if added {
			report.Imported++
		} else {
			report.Merged++
		}
	}

	if err := b.commit(ctx, next); err != nil {
		return ImportReport{}, fmt.Errorf("wrongbank: import: %w", err)
	}

	b.log.InfoContext(ctx, "rows imported",
		slog.Int("imported", report.Imported),
		slog.Int("merged", report.Merged),
		slog.Int("skipped", report.Skipped),
	)
	return report, nil
}

// upsert bumps the entry of next with r's identity, or appends a fresh one.
// idx maps identity to position in next and is kept current. Callers hold b.mu.
func (b *Bank) upsert(next []domain.BankEntry, idx map[string]int, r domain.BankRow) ([]domain.BankEntry, domain.BankEntry, bool) {
	id := domain.BankIdentity(r.DayKey, r.Word)
	if i, ok := idx[id]; ok {
		next[i].Wrong++
		next[i].MeaningText = r.MeaningText
		return next, next[i], false
	}

	e := domain.BankEntry{
		ID:          id,
		Word:        strings.TrimSpace(r.Word),
		DayKey:      strings.TrimSpace(r.DayKey),
		MeaningText: r.MeaningText,
		AddedAt:     b.now(),
		Seen:        0,
		Wrong:       1,
	}
	idx[id] = len(next)
	return append(next, e), e, true
}

func validRow(r domain.BankRow) bool {
	return strings.TrimSpace(r.Word) != "" && strings.TrimSpace(r.DayKey) != ""
}
