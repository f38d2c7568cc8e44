package drill

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/daydrill/internal/catalog"
	"github.com/heartmarshall/daydrill/internal/domain"
)

// Ticket orders catalog loads. Only the newest ticket may install a catalog.
type Ticket uint64

// BeginLoad issues a ticket that supersedes every earlier one.
func (s *Service) BeginLoad() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadSeq++
	return s.loadSeq
}

// LoadCatalog decodes a word list and installs it if ticket is still the
// newest. Installing clears the day selection and returns the session to Idle.
// Decoding runs outside the command lock.
func (s *Service) LoadCatalog(ctx context.Context, ticket Ticket, name string, data []byte) (catalog.Report, error) {
	rows, err := s.decoder.Decode(name, data)
	if err != nil {
		return catalog.Report{}, fmt.Errorf("drill: load catalog: %w", err)
	}
	cat, report := catalog.Build(rows)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.loadSeq {
		s.log.InfoContext(ctx, "stale catalog load discarded",
			slog.String("file", name),
			slog.Uint64("ticket", uint64(ticket)),
			slog.Uint64("latest", uint64(s.loadSeq)),
		)
		return catalog.Report{}, domain.ErrSupersededLoad
	}

	s.catalog = cat
	clear(s.selected)
	s.session.Reset()

	s.log.InfoContext(ctx, "catalog loaded",
		slog.String("file", name),
		slog.Int("rows", report.Rows),
		slog.Int("kept", report.Kept),
		slog.Int("dropped", report.Dropped),
		slog.Int("days", report.Days),
	)
	return report, nil
}
