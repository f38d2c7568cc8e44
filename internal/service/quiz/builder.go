package quiz

import (
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/wrongbank"
)

type daySelector interface {
	Select(days []string) []domain.Question
	Lookup(word, dayKey string) (domain.WordRecord, bool)
}

// FromDays returns the catalog questions of the selected days.
// No days, or days without records, yield ErrEmptySelection.
func FromDays(cat daySelector, days []string) ([]domain.Question, error) {
	if len(days) == 0 {
		return nil, domain.ErrEmptySelection
	}
	qs := cat.Select(days)
	if len(qs) == 0 {
		return nil, domain.ErrEmptySelection
	}
	return qs, nil
}

// FromBank turns a bank snapshot into questions, preferring catalog records.
func FromBank(cat daySelector, entries []domain.BankEntry) ([]domain.Question, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptySelection
	}
	return wrongbank.ToQuestionList(entries, cat), nil
}

// FromImported turns freshly imported rows into questions.
func FromImported(cat daySelector, rows []domain.BankRow) ([]domain.Question, error) {
	return FromBank(cat, wrongbank.RowsToEntries(rows))
}
