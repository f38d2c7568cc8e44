package domain

import (
	"slices"
	"strings"
)

// WordRecord is one vocabulary entry of a loaded catalog.
type WordRecord struct {
	Word   string   `json:"word"`
	DayKey string   `json:"dayKey"`
	Noun   []string `json:"noun"`
	Verb   []string `json:"verb"`
	Adj    []string `json:"adj"`
}

// Question is a WordRecord adopted into a session. It is always a deep copy,
// so later catalog reloads never reach into a running round.
type Question = WordRecord

// Meanings returns the accepted meanings for one slot.
func (w WordRecord) Meanings(p POS) []string {
	switch p {
	case POSNoun:
		return w.Noun
	case POSVerb:
		return w.Verb
	case POSAdj:
		return w.Adj
	}
	return nil
}

// PresentPOS lists the slots that carry at least one meaning, in noun, verb, adj order.
func (w WordRecord) PresentPOS() []POS {
	present := make([]POS, 0, len(AllPOS))
	for _, p := range AllPOS {
		if len(w.Meanings(p)) > 0 {
			present = append(present, p)
		}
	}
	return present
}

// MeaningText renders the record as "(명) a / b · (동) c · (형) d".
func (w WordRecord) MeaningText() string {
	parts := make([]string, 0, len(AllPOS))
	for _, p := range w.PresentPOS() {
		parts = append(parts, "("+p.Label()+") "+strings.Join(w.Meanings(p), " / "))
	}
	return strings.Join(parts, " · ")
}

// Clone returns a deep copy.
func (w WordRecord) Clone() WordRecord {
	w.Noun = slices.Clone(w.Noun)
	w.Verb = slices.Clone(w.Verb)
	w.Adj = slices.Clone(w.Adj)
	return w
}

// HistoryEntry is one graded question of the current session.
type HistoryEntry struct {
	Seq         int      `json:"seq"`
	Word        string   `json:"word"`
	MeaningText string   `json:"meaningText"`
	InputText   string   `json:"inputText"`
	Correct     bool     `json:"correct"`
	Question    Question `json:"question"`
}

// Draft holds the learner's unsubmitted answer fields.
type Draft struct {
	Noun string `json:"noun"`
	Verb string `json:"verb"`
	Adj  string `json:"adj"`
	Word string `json:"word"`
}

// Field returns the draft text of one meaning slot.
func (d Draft) Field(p POS) string {
	switch p {
	case POSNoun:
		return d.Noun
	case POSVerb:
		return d.Verb
	case POSAdj:
		return d.Adj
	}
	return ""
}

// RoundResult is the score of the last completed round.
type RoundResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
