package drill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/quiz"
	"github.com/heartmarshall/daydrill/internal/service/wrongbank"
)

// ImportResult is the outcome of ImportBank.
type ImportResult struct {
	Report  wrongbank.ImportReport `json:"report"`
	Started bool                   `json:"started"`
	Session *quiz.View             `json:"session,omitempty"`
}

// BankEntries lists the wrong-answer bank in insertion order.
func (s *Service) BankEntries() []domain.BankEntry {
	return s.bank.Entries()
}

// ExportBank encodes the bank for download.
func (s *Service) ExportBank(ctx context.Context, format domain.ExportFormat) (wrongbank.ExportFile, error) {
	return s.bank.Export(ctx, format)
}

// ImportBank merges an exam sheet into the bank. With start set, a round is
// built from the imported rows right away.
func (s *Service) ImportBank(ctx context.Context, name string, data []byte, start bool) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, rows, err := s.bank.Import(ctx, name, data)
	if err != nil {
		return ImportResult{Report: report}, err
	}
	res := ImportResult{Report: report}
	if !start {
		return res, nil
	}

	questions, err := quiz.FromImported(s.catalog, rows)
	if err != nil {
		return res, fmt.Errorf("drill: import start: %w", err)
	}
	if err := s.session.Build(questions); err != nil {
		return res, fmt.Errorf("drill: import start: %w", err)
	}
	view := s.session.Snapshot()
	res.Started = true
	res.Session = &view

	s.log.InfoContext(ctx, "session started from import", slog.Int("questions", view.Total))
	return res, nil
}

// ReplayBank builds a round from every bank entry.
func (s *Service) ReplayBank(ctx context.Context) (quiz.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := quiz.FromBank(s.catalog, s.bank.Entries())
	if err != nil {
		return quiz.View{}, fmt.Errorf("drill: replay bank: %w", err)
	}
	if err := s.session.Build(questions); err != nil {
		return quiz.View{}, fmt.Errorf("drill: replay bank: %w", err)
	}
	return s.session.Snapshot(), nil
}

// RemoveEntry deletes one bank entry. Unknown ids are reported as ErrNotFound.
func (s *Service) RemoveEntry(ctx context.Context, id string) error {
	removed, err := s.bank.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("drill: bank entry %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ClearBank empties the bank. confirmed must be true.
func (s *Service) ClearBank(ctx context.Context, confirmed bool) error {
	return s.bank.Clear(ctx, confirmed)
}
