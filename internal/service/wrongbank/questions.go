package wrongbank

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/daydrill/internal/domain"
)

var posMarker = regexp.MustCompile(`\((명|동|형)\)`)

type recordLookup interface {
	Lookup(word, dayKey string) (domain.WordRecord, bool)
}

// ToQuestionList turns bank entries into questions. An entry whose word and
// day exist in the catalog reuses that record verbatim; any other entry is
// rebuilt from its meaning text (see ParseMeaningText).
func ToQuestionList(entries []domain.BankEntry, catalog recordLookup) []domain.Question {
	out := make([]domain.Question, 0, len(entries))
	for _, e := range entries {
		if catalog != nil {
			if rec, ok := catalog.Lookup(e.Word, e.DayKey); ok {
				out = append(out, rec)
				continue
			}
		}

		q := ParseMeaningText(e.MeaningText)
		q.Word = e.Word
		q.DayKey = e.DayKey
		out = append(out, q)
	}
	return out
}

// RowsToEntries wraps imported rows as transient entries for ToQuestionList.
func RowsToEntries(rows []domain.BankRow) []domain.BankEntry {
	out := make([]domain.BankEntry, len(rows))
	for i, r := range rows {
		out[i] = domain.BankEntry{
			ID:          domain.BankIdentity(r.DayKey, r.Word),
			Word:        r.Word,
			DayKey:      r.DayKey,
			MeaningText: r.MeaningText,
		}
	}
	return out
}

// ParseMeaningText recovers per-slot meanings from "(명) a / b · (동) c".
// Each marker owns the text up to the next marker; a repeated marker appends
// to the same slot. Text without any marker becomes noun meanings, so a
// foreign sheet may end up with verbs filed as nouns.
func ParseMeaningText(text string) domain.WordRecord {
	var rec domain.WordRecord

	locs := posMarker.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		if strings.TrimSpace(text) != "" {
			rec.Noun = domain.SplitMeaningList(text)
		}
		return rec
	}

	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segment := strings.Trim(text[loc[1]:end], " \t\r\n·")
		meanings := domain.SplitMeaningList(segment)

		pos, _ := domain.POSFromLabel(text[loc[2]:loc[3]])
		switch pos {
		case domain.POSNoun:
			rec.Noun = append(rec.Noun, meanings...)
		case domain.POSVerb:
			rec.Verb = append(rec.Verb, meanings...)
		case domain.POSAdj:
			rec.Adj = append(rec.Adj, meanings...)
		}
	}
	return rec
}
