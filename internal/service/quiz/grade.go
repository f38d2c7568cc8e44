package quiz

import (
	"slices"
	"strings"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// isCorrect applies the grading rule of the active mode.
//
// word2meaning: every present slot must be non-empty after NormalizeMeaning
// and equal one of that slot's normalized meanings. A question with no
// meanings at all has nothing to fail and counts as correct.
//
// meaning2word: NormalizeWord of the draft equals NormalizeWord of the word.
func isCorrect(mode domain.Mode, q domain.Question, d domain.Draft) bool {
	if mode == domain.ModeMeaningToWord {
		return domain.NormalizeWord(d.Word) == domain.NormalizeWord(q.Word)
	}

	for _, p := range q.PresentPOS() {
		answer := domain.NormalizeMeaning(d.Field(p))
		if answer == "" {
			return false
		}
		if !slices.ContainsFunc(q.Meanings(p), func(m string) bool {
			return domain.NormalizeMeaning(m) == answer
		}) {
			return false
		}
	}
	return true
}

// renderInput formats the learner's answer for the history log:
// "명:x · 동:-" in word2meaning, the raw word (or "-") in meaning2word.
func renderInput(mode domain.Mode, q domain.Question, d domain.Draft) string {
	if mode == domain.ModeMeaningToWord {
		return orDash(d.Word)
	}

	present := q.PresentPOS()
	parts := make([]string, 0, len(present))
	for _, p := range present {
		parts = append(parts, p.Label()+":"+orDash(strings.TrimSpace(d.Field(p))))
	}
	return strings.Join(parts, " · ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
