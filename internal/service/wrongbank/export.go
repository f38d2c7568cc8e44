package wrongbank

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// ExportHeader is the fixed column order of an exported bank.
var ExportHeader = []string{"번호", "날짜", "단어", "뜻", "본 횟수", "오답 수", "추가일시"}

var contentTypes = map[domain.ExportFormat]string{
	domain.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	domain.FormatCSV:  "text/csv; charset=utf-8",
}

// ExportFile is an encoded bank ready to be written or downloaded.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Export encodes the bank as a spreadsheet. An empty bank is rejected with
// ErrEmptySelection.
func (b *Bank) Export(ctx context.Context, format domain.ExportFormat) (ExportFile, error) {
	ct, ok := contentTypes[format]
	if !ok {
		return ExportFile{}, domain.NewValidationError("format", "must be xlsx or csv")
	}

	entries := b.Entries()
	if len(entries) == 0 {
		return ExportFile{}, fmt.Errorf("wrongbank: export: %w", domain.ErrEmptySelection)
	}

	data, err := b.codec.Encode(format, ExportHeader, ExportRecords(entries, b.cfg.ExportZone))
	if err != nil {
		return ExportFile{}, fmt.Errorf("wrongbank: export: %w", err)
	}

	name := ExportFilename(b.cfg.ExportPrefix, format.String(), b.now(), b.cfg.ExportZone)
	b.log.InfoContext(ctx, "bank exported",
		slog.String("file", name),
		slog.Int("entries", len(entries)),
	)

	return ExportFile{Name: name, ContentType: ct, Data: data}, nil
}

// ExportRecords flattens entries into rows matching ExportHeader.
func ExportRecords(entries []domain.BankEntry, loc *time.Location) [][]string {
	records := make([][]string, len(entries))
	for i, e := range entries {
		records[i] = []string{
			strconv.Itoa(i + 1),
			e.DayKey,
			e.Word,
			e.MeaningText,
			strconv.Itoa(e.Seen),
			strconv.Itoa(e.Wrong),
			FormatAddedAt(e.AddedAt, loc),
		}
	}
	return records
}
