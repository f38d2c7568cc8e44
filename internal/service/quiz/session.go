// Package quiz implements the drill round state machine:
// Idle -> Active -> Revealed -> ... -> Finished, rebuilt back to Active.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/heartmarshall/daydrill/internal/domain"
)

// missRecorder receives every incorrectly graded question before the session
// records the grade. A failing recorder aborts the grade.
type missRecorder interface {
	RecordMiss(ctx context.Context, q domain.Question) error
}

// Shuffler permutes n elements through swap. rand.Shuffle satisfies it.
type Shuffler func(n int, swap func(i, j int))

// Session is one learner's quiz state. It is not safe for concurrent use;
// callers serialise access.
type Session struct {
	log     *slog.Logger
	misses  missRecorder
	shuffle Shuffler

	id        uuid.UUID
	mode      domain.Mode
	round     []domain.Question
	questions []domain.Question
	index     int
	revealed  bool
	finished  bool
	score     int
	draft     domain.Draft
	history   []domain.HistoryEntry
	last      *domain.RoundResult
}

// NewSession creates an idle session. A nil shuffle uses math/rand/v2.
func NewSession(log *slog.Logger, misses missRecorder, mode domain.Mode, shuffle Shuffler) *Session {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	if !mode.IsValid() {
		mode = domain.ModeWordToMeaning
	}
	return &Session{
		log:     log.With("component", "session"),
		misses:  misses,
		shuffle: shuffle,
		mode:    mode,
	}
}

// State derives the current phase.
func (s *Session) State() domain.SessionState {
	switch {
	case s.finished:
		return domain.SessionFinished
	case len(s.questions) == 0:
		return domain.SessionIdle
	case s.revealed:
		return domain.SessionRevealed
	default:
		return domain.SessionActive
	}
}

// Build starts a new round over a shuffled copy of questions.
// An empty list is rejected with ErrEmptySelection and leaves the session untouched.
func (s *Session) Build(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrEmptySelection
	}

	round := make([]domain.Question, len(questions))
	for i, q := range questions {
		round[i] = q.Clone()
	}

	shuffled := make([]domain.Question, len(round))
	copy(shuffled, round)
	s.shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	s.id = uuid.New()
	s.round = round
	s.questions = shuffled
	s.index = 0
	s.score = 0
	s.revealed = false
	s.finished = false
	s.draft = domain.Draft{}
	s.history = nil
	s.last = nil

	s.log.Debug("round built",
		slog.String("session_id", s.id.String()),
		slog.Int("questions", len(shuffled)),
		slog.String("mode", s.mode.String()),
	)

	return nil
}

// Reset clears the session back to Idle, dropping questions and history.
func (s *Session) Reset() {
	s.id = uuid.Nil
	s.round = nil
	s.questions = nil
	s.index = 0
	s.score = 0
	s.revealed = false
	s.finished = false
	s.draft = domain.Draft{}
	s.history = nil
	s.last = nil
}

// SetDraft replaces the unsubmitted answer. Only allowed while Active.
func (s *Session) SetDraft(d domain.Draft) error {
	if st := s.State(); st != domain.SessionActive {
		return &domain.TransitionError{Op: "edit", State: st}
	}
	s.draft = d
	return nil
}

// Grade scores the current draft, appends a history entry and reveals the answer.
// A miss is handed to the recorder first; if that fails the session is unchanged.
func (s *Session) Grade(ctx context.Context) (domain.HistoryEntry, error) {
	if st := s.State(); st != domain.SessionActive {
		return domain.HistoryEntry{}, &domain.TransitionError{Op: "grade", State: st}
	}

	q := s.questions[s.index]
	correct := isCorrect(s.mode, q, s.draft)

	if !correct && s.misses != nil {
		if err := s.misses.RecordMiss(ctx, q.Clone()); err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("record miss: %w", err)
		}
	}

	if correct {
		s.score++
	}

	entry := domain.HistoryEntry{
		Seq:         len(s.history) + 1,
		Word:        q.Word,
		MeaningText: q.MeaningText(),
		InputText:   renderInput(s.mode, q, s.draft),
		Correct:     correct,
		Question:    q.Clone(),
	}
	s.history = append(s.history, entry)
	s.revealed = true

	s.log.DebugContext(ctx, "graded",
		slog.String("session_id", s.id.String()),
		slog.Int("seq", entry.Seq),
		slog.String("word", q.Word),
		slog.Bool("correct", correct),
	)

	return entry, nil
}

// Advance moves past a revealed question. Advancing past the last question
// finishes the round and keeps its score as the round result.
func (s *Session) Advance() error {
	if st := s.State(); st != domain.SessionRevealed {
		return &domain.TransitionError{Op: "advance", State: st}
	}

	s.revealed = false
	s.draft = domain.Draft{}

	if s.index+1 < len(s.questions) {
		s.index++
		return nil
	}

	s.last = &domain.RoundResult{Score: s.score, Total: len(s.questions)}
	s.finished = true
	s.questions = nil
	s.index = 0

	s.log.Debug("round finished",
		slog.String("session_id", s.id.String()),
		slog.Int("score", s.last.Score),
		slog.Int("total", s.last.Total),
	)

	return nil
}

// SetMode switches direction in any state. Drafts are discarded and a
// revealed question returns to Active; the order is untouched.
func (s *Session) SetMode(m domain.Mode) error {
	if !m.IsValid() {
		return domain.NewValidationError("mode", "must be word2meaning or meaning2word")
	}
	s.mode = m
	s.draft = domain.Draft{}
	s.revealed = false
	return nil
}

// RetryWrong rebuilds the session from the questions missed in the current history.
func (s *Session) RetryWrong() error {
	var wrong []domain.Question
	for _, h := range s.history {
		if !h.Correct {
			wrong = append(wrong, h.Question)
		}
	}
	if len(wrong) == 0 {
		return domain.ErrEmptySelection
	}
	return s.Build(wrong)
}

// ResetRound reshuffles the question set of the last Build and starts over.
func (s *Session) ResetRound() error {
	if len(s.round) == 0 {
		return domain.ErrEmptySelection
	}
	return s.Build(s.round)
}

// Mode returns the current direction.
func (s *Session) Mode() domain.Mode { return s.mode }

// Score returns the number of correct grades in the current round.
func (s *Session) Score() int { return s.score }

// Draft returns the unsubmitted answer.
func (s *Session) Draft() domain.Draft { return s.draft }

// Current returns the question in view, if any.
func (s *Session) Current() (domain.Question, bool) {
	if len(s.questions) == 0 {
		return domain.Question{}, false
	}
	return s.questions[s.index].Clone(), true
}

// History returns a copy of the graded entries of the current round.
func (s *Session) History() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// LastResult returns the score of the last finished round.
func (s *Session) LastResult() (domain.RoundResult, bool) {
	if s.last == nil {
		return domain.RoundResult{}, false
	}
	return *s.last, true
}

// FocusTarget names the input that should take the next keystroke.
// It depends only on mode, the present parts of speech and whether the
// answer is revealed.
func (s *Session) FocusTarget() domain.Focus {
	switch s.State() {
	case domain.SessionRevealed:
		return domain.FocusAdvance
	case domain.SessionActive:
	default:
		return domain.FocusNone
	}

	if s.mode == domain.ModeMeaningToWord {
		return domain.FocusWord
	}
	present := s.questions[s.index].PresentPOS()
	if len(present) == 0 {
		return domain.FocusNone
	}
	return domain.Focus(present[0])
}
