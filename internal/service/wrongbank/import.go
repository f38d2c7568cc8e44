package wrongbank

import (
	"context"
	"fmt"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// Header aliases of an imported exam sheet.
var (
	importDayHeaders     = []string{"날짜", "day", "일차"}
	importWordHeaders    = []string{"단어", "word"}
	importMeaningHeaders = []string{"뜻", "의미", "meaning"}
)

// ParseImportRows maps decoded rows onto bank rows. Numbering and counter
// columns of an exported bank are ignored.
func ParseImportRows(rows []domain.Row) []domain.BankRow {
	out := make([]domain.BankRow, len(rows))
	for i, r := range rows {
		out[i] = domain.BankRow{
			DayKey:      domain.FormatDayKey(r.First(importDayHeaders...)),
			Word:        r.First(importWordHeaders...),
			MeaningText: r.First(importMeaningHeaders...),
		}
	}
	return out
}

// Import decodes a spreadsheet and merges its rows into the bank. It returns
// the merge report and the usable rows, in file order.
func (b *Bank) Import(ctx context.Context, name string, data []byte) (ImportReport, []domain.BankRow, error) {
	decoded, err := b.codec.Decode(name, data)
	if err != nil {
		return ImportReport{}, nil, fmt.Errorf("wrongbank: import %s: %w", name, err)
	}

	rows := ParseImportRows(decoded)
	report, err := b.MergeImportedRows(ctx, rows)
	if err != nil {
		return report, nil, err
	}

	usable := make([]domain.BankRow, 0, len(rows))
	for _, r := range rows {
		if validRow(r) {
			usable = append(usable, r)
		}
	}
	return report, usable, nil
}
