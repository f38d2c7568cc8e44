// Package catalog holds the word list of one loaded spreadsheet, grouped by day.
// A Catalog is immutable once built; loading another file builds a new one.
package catalog

import (
	"github.com/heartmarshall/daydrill/internal/domain"
)

// Header aliases, matched against lower-cased and trimmed headers.
var (
	dayHeaders  = []string{"날짜", "day"}
	wordHeaders = []string{"단어", "word"}
	nounHeaders = []string{"명사"}
	verbHeaders = []string{"동사"}
	adjHeaders  = []string{"형용사"}
)

// Catalog is the immutable result of one load.
type Catalog struct {
	records []domain.WordRecord
	dayKeys []string
	byDay   map[string]int
	index   map[lookupKey]int
}

type lookupKey struct {
	day  string
	word string
}

// Report summarises one Build call.
type Report struct {
	Rows    int `json:"rows"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
	Days    int `json:"days"`
}

// Build maps decoded rows onto word records. Rows with an empty word or day
// are dropped; every other row is kept exactly once, in input order.
func Build(rows []domain.Row) (*Catalog, Report) {
	c := &Catalog{
		records: make([]domain.WordRecord, 0, len(rows)),
		byDay:   make(map[string]int),
		index:   make(map[lookupKey]int, len(rows)),
	}

	for _, row := range rows {
		rec := domain.WordRecord{
			DayKey: domain.FormatDayKey(row.First(dayHeaders...)),
			Word:   row.First(wordHeaders...),
			Noun:   domain.SplitMeaningList(row.First(nounHeaders...)),
			Verb:   domain.SplitMeaningList(row.First(verbHeaders...)),
			Adj:    domain.SplitMeaningList(row.First(adjHeaders...)),
		}
		if rec.Word == "" || rec.DayKey == "" {
			continue
		}

		if _, seen := c.byDay[rec.DayKey]; !seen {
			c.dayKeys = append(c.dayKeys, rec.DayKey)
		}
		c.byDay[rec.DayKey]++

		key := lookupKey{day: rec.DayKey, word: domain.NormalizeWord(rec.Word)}
		if _, dup := c.index[key]; !dup {
			c.index[key] = len(c.records)
		}
		c.records = append(c.records, rec)
	}

	SortDayKeys(c.dayKeys)

	return c, Report{
		Rows:    len(rows),
		Kept:    len(c.records),
		Dropped: len(rows) - len(c.records),
		Days:    len(c.dayKeys),
	}
}

// Empty returns a catalog with no records.
func Empty() *Catalog {
	c, _ := Build(nil)
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.records) }

// Records returns a copy of all records in load order.
func (c *Catalog) Records() []domain.WordRecord {
	out := make([]domain.WordRecord, len(c.records))
	for i, r := range c.records {
		out[i] = r.Clone()
	}
	return out
}

// DayKeys returns the distinct day keys in display order.
func (c *Catalog) DayKeys() []string {
	out := make([]string, len(c.dayKeys))
	copy(out, c.dayKeys)
	return out
}

// HasDay reports whether any record belongs to day.
func (c *Catalog) HasDay(day string) bool {
	_, ok := c.byDay[day]
	return ok
}

// CountByDay returns the number of records of one day.
func (c *Catalog) CountByDay(day string) int {
	return c.byDay[day]
}

// Lookup finds the first record with the given day and word.
// The word is compared after NormalizeWord.
func (c *Catalog) Lookup(word, dayKey string) (domain.WordRecord, bool) {
	i, ok := c.index[lookupKey{day: dayKey, word: domain.NormalizeWord(word)}]
	if !ok {
		return domain.WordRecord{}, false
	}
	return c.records[i].Clone(), true
}

// Select returns question snapshots of every record whose day is in days,
// in catalog order.
func (c *Catalog) Select(days []string) []domain.Question {
	want := make(map[string]struct{}, len(days))
	for _, d := range days {
		want[d] = struct{}{}
	}

	var out []domain.Question
	for _, r := range c.records {
		if _, ok := want[r.DayKey]; ok {
			out = append(out, r.Clone())
		}
	}
	return out
}
