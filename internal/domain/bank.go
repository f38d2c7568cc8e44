package domain

import (
	"strings"
	"time"
)

// BankEntry is a durable, deduplicated record of a missed word.
// ID is the identity key: DayKey followed by the lower-cased word.
type BankEntry struct {
	ID          string    `json:"id"`
	Word        string    `json:"word"`
	DayKey      string    `json:"dayKey"`
	MeaningText string    `json:"meaningText"`
	AddedAt     time.Time `json:"-"`
	Seen        int       `json:"seen"`
	Wrong       int       `json:"wrong"`
}

// BankIdentity builds the dedup key shared by misses, imports and replays.
func BankIdentity(dayKey, word string) string {
	return strings.TrimSpace(dayKey) + strings.ToLower(strings.TrimSpace(word))
}

// BankRow is one externally supplied miss, e.g. a row of an imported exam sheet.
type BankRow struct {
	DayKey      string
	Word        string
	MeaningText string
}

// Row is one decoded spreadsheet record keyed by lower-cased, trimmed header.
type Row map[string]string

// First returns the first non-empty value among the given header aliases.
func (r Row) First(aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(r[a]); v != "" {
			return v
		}
	}
	return ""
}
