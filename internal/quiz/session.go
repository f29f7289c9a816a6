// Package quiz implements one practice attempt: question selection, the session state machine
// and the end-of-session summary. It performs no I/O and is not safe for concurrent use; callers
// that share a Session between goroutines must serialise access themselves.
package quiz

import (
	"fmt"

	"driving-quiz-service/internal/domain"
)

// State is the position of a session in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateAwaitingAnswer
	StateShowingResult
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateShowingResult:
		return "showing_result"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Session is a single practice attempt over a fixed question bank.
type Session struct {
	bank  []domain.Question
	rnd   Shuffler
	count int

	started       bool
	category      domain.Category
	questions     []domain.Question
	answers       []string
	index         int
	selected      string
	showingResult bool
	correct       int
	completed     bool
}

// Option configures a Session.
type Option func(*Session)

// WithRand injects the randomness source used by Start.
func WithRand(rnd Shuffler) Option {
	return func(s *Session) { s.rnd = rnd }
}

// WithQuestionCount sets how many questions Start draws.
func WithQuestionCount(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.count = n
		}
	}
}

// NewSession creates a session in StateNotStarted. The bank is read, never modified.
func NewSession(bank []domain.Question, opts ...Option) *Session {
	s := &Session{
		bank:  bank,
		count: DefaultQuestionCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = NewRand()
	}
	return s
}

// Start draws a new question set for category (or domain.CategoryAll) and resets every counter,
// replacing whatever attempt was in progress.
func (s *Session) Start(category domain.Category) error {
	if category != domain.CategoryAll && !category.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	if len(s.bank) == 0 {
		return domain.ErrEmptyBank
	}

	questions := SelectRandomByCategory(s.rnd, s.count, category, s.bank)
	if len(questions) == 0 {
		return domain.ErrEmptyBank
	}

	s.started = true
	s.category = category
	s.questions = questions
	s.answers = make([]string, len(questions))
	s.index = 0
	s.selected = ""
	s.showingResult = false
	s.correct = 0
	s.completed = false
	return nil
}

// Answer records optionID for the current question and reveals the result. It reports whether
// the answer was correct. Only valid while awaiting an answer.
func (s *Session) Answer(optionID string) (bool, error) {
	if s.State() != StateAwaitingAnswer {
		return false, fmt.Errorf("%w: answer in state %s", domain.ErrInvalidTransition, s.State())
	}
	q := s.questions[s.index]
	if _, ok := q.Option(optionID); !ok {
		return false, fmt.Errorf("%w: %q for question %s", domain.ErrOptionNotFound, optionID, q.ID)
	}

	s.selected = optionID
	s.answers[s.index] = optionID
	correct := optionID == q.CorrectOptionID
	if correct {
		s.correct++
	}
	s.showingResult = true
	return correct, nil
}

// Advance moves past a revealed result, either to the next question or to StateCompleted.
func (s *Session) Advance() error {
	if s.State() != StateShowingResult {
		return fmt.Errorf("%w: advance in state %s", domain.ErrInvalidTransition, s.State())
	}
	if s.index+1 < len(s.questions) {
		s.index++
		s.selected = ""
		s.showingResult = false
		return nil
	}
	s.completed = true
	return nil
}

// Restart starts a fresh attempt with the category of the previous one.
func (s *Session) Restart() error {
	if !s.started {
		return fmt.Errorf("%w: restart before start", domain.ErrInvalidTransition)
	}
	return s.Start(s.category)
}

// Exit abandons the attempt and returns to StateNotStarted. Nothing is kept.
func (s *Session) Exit() {
	s.started = false
	s.category = ""
	s.questions = nil
	s.answers = nil
	s.index = 0
	s.selected = ""
	s.showingResult = false
	s.correct = 0
	s.completed = false
}

func (s *Session) State() State {
	switch {
	case !s.started:
		return StateNotStarted
	case s.completed:
		return StateCompleted
	case s.showingResult:
		return StateShowingResult
	default:
		return StateAwaitingAnswer
	}
}

// Current returns the question at the current index.
func (s *Session) Current() (domain.Question, bool) {
	if !s.started || s.index >= len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

func (s *Session) Index() int                { return s.index }
func (s *Session) Total() int                { return len(s.questions) }
func (s *Session) Correct() int              { return s.correct }
func (s *Session) Selected() string          { return s.selected }
func (s *Session) ShowingResult() bool       { return s.showingResult }
func (s *Session) Completed() bool           { return s.completed }
func (s *Session) Category() domain.Category { return s.category }

// Questions returns a copy of the drawn questions in session order.
func (s *Session) Questions() []domain.Question {
	out := make([]domain.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Snapshot is a read-only copy of the observable session state.
type Snapshot struct {
	State         State
	Category      domain.Category
	Index         int
	Total         int
	Correct       int
	Selected      string
	ShowingResult bool
	Completed     bool
	Question      *domain.Question
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		State:         s.State(),
		Category:      s.category,
		Index:         s.index,
		Total:         len(s.questions),
		Correct:       s.correct,
		Selected:      s.selected,
		ShowingResult: s.showingResult,
		Completed:     s.completed,
	}
	if q, ok := s.Current(); ok {
		snap.Question = &q
	}
	return snap
}
