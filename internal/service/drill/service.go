// Package drill is the host-facing command layer. It owns the catalog, the
// day selection and the quiz session, and serialises every command so that
// concurrent hosts never observe a half-applied transition.
package drill

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/daydrill/internal/catalog"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/quiz"
	"github.com/heartmarshall/daydrill/internal/service/wrongbank"
)

type wordBank interface {
	RecordMiss(ctx context.Context, q domain.Question) error
	Entries() []domain.BankEntry
	Len() int
	Recovered() bool
	Export(ctx context.Context, format domain.ExportFormat) (wrongbank.ExportFile, error)
	Import(ctx context.Context, name string, data []byte) (wrongbank.ImportReport, []domain.BankRow, error)
	Remove(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context, confirmed bool) error
}

type sheetDecoder interface {
	Decode(name string, data []byte) ([]domain.Row, error)
}

// Service runs drill commands. All methods are safe for concurrent use.
type Service struct {
	log     *slog.Logger
	bank    wordBank
	decoder sheetDecoder

	mu       sync.Mutex
	catalog  *catalog.Catalog
	selected map[string]bool
	session  *quiz.Session
	loadSeq  Ticket
}

// NewService creates a drill with an empty catalog and an idle session.
func NewService(
	log *slog.Logger,
	bank wordBank,
	decoder sheetDecoder,
	mode domain.Mode,
	shuffle quiz.Shuffler,
) *Service {
	log = log.With("service", "drill")
	return &Service{
		log:      log,
		bank:     bank,
		decoder:  decoder,
		catalog:  catalog.Empty(),
		selected: make(map[string]bool),
		session:  quiz.NewSession(log, bank, mode, shuffle),
	}
}

// selectedDays returns the selection in catalog day order. Caller holds mu.
func (s *Service) selectedDays() []string {
	var days []string
	for _, d := range s.catalog.DayKeys() {
		if s.selected[d] {
			days = append(days, d)
		}
	}
	return days
}
