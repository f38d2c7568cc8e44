package drill

import (
	"context"
	"fmt"

	"github.com/heartmarshall/daydrill/internal/domain"
	"github.com/heartmarshall/daydrill/internal/service/quiz"
)

// EnterResult tells the host which transition Enter performed.
type EnterResult struct {
	Graded bool                 `json:"graded"`
	Entry  *domain.HistoryEntry `json:"entry,omitempty"`
}

// StartSession builds a round from the selected days.
func (s *Service) StartSession(ctx context.Context) (quiz.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions, err := quiz.FromDays(s.catalog, s.selectedDays())
	if err != nil {
		return quiz.View{}, fmt.Errorf("drill: start: %w", err)
	}
	if err := s.session.Build(questions); err != nil {
		return quiz.View{}, fmt.Errorf("drill: start: %w", err)
	}
	return s.session.Snapshot(), nil
}

// SetDraft stores an unsubmitted answer.
func (s *Service) SetDraft(d domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.SetDraft(d)
}

// Submit stores d as the answer and grades it.
func (s *Service) Submit(ctx context.Context, d domain.Draft) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.submit(ctx, d)
}

func (s *Service) submit(ctx context.Context, d domain.Draft) (domain.HistoryEntry, error) {
	if err := s.session.SetDraft(d); err != nil {
		return domain.HistoryEntry{}, err
	}
	return s.session.Grade(ctx)
}

// Advance moves past a revealed question.
func (s *Service) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Advance()
}

// Enter grades when the question is open and advances when it is revealed.
func (s *Service) Enter(ctx context.Context, d domain.Draft) (EnterResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state := s.session.State(); state {
	case domain.SessionActive:
		entry, err := s.submit(ctx, d)
		if err != nil {
			return EnterResult{}, err
		}
		return EnterResult{Graded: true, Entry: &entry}, nil
	case domain.SessionRevealed:
		return EnterResult{}, s.session.Advance()
	default:
		return EnterResult{}, &domain.TransitionError{Op: "enter", State: state}
	}
}

// SetMode switches quiz direction.
func (s *Service) SetMode(m domain.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.SetMode(m)
}

// RetryWrong restarts with the questions missed in the current history.
func (s *Service) RetryWrong() (quiz.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.RetryWrong(); err != nil {
		return quiz.View{}, fmt.Errorf("drill: retry wrong: %w", err)
	}
	return s.session.Snapshot(), nil
}

// ResetRound reshuffles the last round and starts over.
func (s *Service) ResetRound() (quiz.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.session.ResetRound(); err != nil {
		return quiz.View{}, fmt.Errorf("drill: reset round: %w", err)
	}
	return s.session.Snapshot(), nil
}

// Session returns a snapshot of the quiz.
func (s *Service) Session() quiz.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.Snapshot()
}
