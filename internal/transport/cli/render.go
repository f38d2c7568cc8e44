package cli

import (
	"errors"
	"strings"

	"github.com/heartmarshall/daydrill/internal/adapter/tabular"
	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/drill"
	"github.com/heartmarshall/daydrill/internal/service/quiz"
)

func (r *REPL) printDays(st drill.State) {
	if len(st.Days) == 0 {
		r.printf("no word list loaded\n")
		return
	}
	for _, d := range st.Days {
		mark := " "
		if d.Selected {
			mark = "x"
		}
		r.printf("  [%s] day %-6s %3d words\n", mark, d.Key, d.Count)
	}
}

func (r *REPL) printView(v quiz.View) {
	switch v.State {
	case domain.SessionIdle:
		r.printf("no round in progress\n")
		return
	case domain.SessionFinished:
		if v.LastResult != nil {
			r.printf("round finished: %d/%d\n", v.LastResult.Score, v.LastResult.Total)
		}
		return
	}

	r.printf("[%d/%d] day %s  score %d\n", v.Index+1, v.Total, v.DayKey, v.Score)
	if v.Mode == domain.ModeMeaningToWord {
		r.printf("  %s\n", v.Prompt)
	} else {
		labels := make([]string, len(v.PresentPOS))
		for i, p := range v.PresentPOS {
			labels[i] = p.Label()
		}
		r.printf("  %s  (%s)\n", v.Prompt, strings.Join(labels, " ; "))
	}
	if v.State == domain.SessionRevealed {
		r.printf("  answer: %s\n", v.Answer)
	}
}

func (r *REPL) printGrade(e domain.HistoryEntry, v quiz.View) {
	if e.Correct {
		r.printf("  correct  %s\n", v.Answer)
	} else {
		r.printf("  wrong    %s\n  you      %s\n", v.Answer, e.InputText)
	}
	r.printf("  (enter for next)\n")
}

func (r *REPL) printBank(entries []domain.BankEntry) {
	if len(entries) == 0 {
		r.printf("bank is empty\n")
		return
	}
	for i, e := range entries {
		r.printf("%3d. %-16s day %-4s wrong %d  %s\n", i+1, e.ID, e.DayKey, e.Wrong, e.MeaningText)
	}
}

// notice turns a command error into a one-line message for the learner.
func notice(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		return "nothing to drill: select days or build the bank first"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "not now: " + err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return "not found: " + err.Error()
	case errors.Is(err, domain.ErrImportNoRows):
		return "the file has no usable rows (need day and word columns)"
	case errors.Is(err, domain.ErrConfirmationRequired):
		return "type \"clear --yes\" to empty the bank"
	case errors.Is(err, domain.ErrSupersededLoad):
		return "a newer load replaced this one"
	case errors.Is(err, tabular.ErrUnsupportedFormat):
		return "unsupported file: use .xlsx or .csv"
	case errors.Is(err, errUsage):
		return err.Error()
	}
	return err.Error()
}
