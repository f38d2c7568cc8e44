package quiz

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// View is a read-only snapshot for hosts to render.
type View struct {
	SessionID  string                `json:"sessionId,omitempty"`
	State      domain.SessionState   `json:"state"`
	Mode       domain.Mode           `json:"mode"`
	Index      int                   `json:"index"`
	Total      int                   `json:"total"`
	Score      int                   `json:"score"`
	DayKey     string                `json:"dayKey,omitempty"`
	Prompt     string                `json:"prompt,omitempty"`
	PresentPOS []domain.POS          `json:"presentPos,omitempty"`
	Draft      domain.Draft          `json:"draft"`
	Answer     string                `json:"answer,omitempty"`
	Correct    *bool                 `json:"correct,omitempty"`
	Focus      domain.Focus          `json:"focus,omitempty"`
	LastResult *domain.RoundResult   `json:"lastResult,omitempty"`
	History    []domain.HistoryEntry `json:"history"`
}

// Snapshot captures the session for display. The answer is only filled in
// once the current question is revealed.
func (s *Session) Snapshot() View {
	v := View{
		State:   s.State(),
		Mode:    s.mode,
		Index:   s.index,
		Total:   len(s.questions),
		Score:   s.score,
		Draft:   s.draft,
		Focus:   s.FocusTarget(),
		History: s.History(),
	}
	if s.id != uuid.Nil {
		v.SessionID = s.id.String()
	}
	if r, ok := s.LastResult(); ok {
		v.LastResult = &r
	}

	q, ok := s.Current()
	if !ok {
		return v
	}

	v.DayKey = q.DayKey
	if s.mode == domain.ModeMeaningToWord {
		v.Prompt = q.MeaningText()
	} else {
		v.Prompt = q.Word
		v.PresentPOS = q.PresentPOS()
	}

	if s.revealed && len(s.history) > 0 {
		if s.mode == domain.ModeMeaningToWord {
			v.Answer = q.Word
		} else {
			v.Answer = q.MeaningText()
		}
		correct := s.history[len(s.history)-1].Correct
		v.Correct = &correct
	}

	return v
}
