package quiz

import (
	"errors"
	"testing"

	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/domain"
)

func wrongOption(q domain.Question) string {
	for _, opt := range q.Options {
		if opt.ID != q.CorrectOptionID {
			return opt.ID
		}
	}
	return ""
}

func TestSessionEndToEndClampedAllCorrect(t *testing.T) {
	s := NewSession(bank.Default(), WithRand(NewSeededRand(42)), WithQuestionCount(10))
	if err := s.Start(domain.CategoryAll); err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Total() != 5 {
		t.Fatalf("expected clamped session of 5, got %d", s.Total())
	}

	for i := 0; i < s.Total(); i++ {
		q, ok := s.Current()
		if !ok {
			t.Fatalf("no current question at %d", i)
		}
		correct, err := s.Answer(q.CorrectOptionID)
		if err != nil || !correct {
			t.Fatalf("answer %d: correct=%v err=%v", i, correct, err)
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	summary, err := Summarize(s)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Score != 100 || summary.Tier != domain.TierExcellent {
		t.Fatalf("expected 100/excellent, got %+v", summary)
	}
	review := Review(s)
	if len(review) != 5 {
		t.Fatalf("expected 5 review entries, got %d", len(review))
	}
	for _, entry := range review {
		if !entry.AnsweredCorrectly {
			t.Fatalf("expected %s marked correct", entry.Question.ID)
		}
		if entry.CorrectAnswer == "" || entry.Explanation == "" {
			t.Fatalf("review entry missing answer text or explanation: %+v", entry)
		}
	}
}

func TestSessionCorrectCountMatchesAnswers(t *testing.T) {
	b := syntheticBank(map[domain.Category]int{
		domain.CategoryTrafficRules: 4,
		domain.CategoryRoadSigns:    4,
	})
	s := NewSession(b, WithRand(NewSeededRand(3)), WithQuestionCount(8))
	if err := s.Start(domain.CategoryAll); err != nil {
		t.Fatalf("start: %v", err)
	}

	want := 0
	for i := 0; i < s.Total(); i++ {
		q, _ := s.Current()
		option := q.CorrectOptionID
		if i%3 == 0 {
			option = wrongOption(q)
		} else {
			want++
		}
		if _, err := s.Answer(option); err != nil {
			t.Fatalf("answer: %v", err)
		}
		if s.Correct() != want {
			t.Fatalf("after %d answers expected %d correct, got %d", i+1, want, s.Correct())
		}
		if err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
}

func TestSessionCompletesExactlyOnceOnFinalAdvance(t *testing.T) {
	b := syntheticBank(map[domain.Category]int{domain.CategoryFirstAid: 4})
	s := NewSession(b, WithRand(NewSeededRand(1)), WithQuestionCount(4))
	if err := s.Start(domain.CategoryAll); err != nil {
		t.Fatalf("start: %v", err)
	}

	completions := 0
	for i := 0; i < s.Total(); i++ {
		if s.Index() != i {
			t.Fatalf("expected index %d, got %d", i, s.Index())
		}
		q, _ := s.Current()
		if _, err := s.Answer(q.CorrectOptionID); err != nil {
			t.Fatalf("answer: %v", err)
		}
		wasCompleted := s.Completed()
		if err := s.Advance(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if !wasCompleted && s.Completed() {
			completions++
			if i != s.Total()-1 {
				t.Fatalf("completed early at advance %d", i+1)
			}
		}
	}
	if completions != 1 || s.State() != StateCompleted {
		t.Fatalf("expected a single completion, got %d (state %s)", completions, s.State())
	}
	if err := s.Advance(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("advance after completion must fail, got %v", err)
	}
}

func TestSessionRejectsOutOfOrderTransitions(t *testing.T) {
	s := NewSession(bank.Default(), WithRand(NewSeededRand(8)))

	if _, err := s.Answer("A"); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("answer before start: %v", err)
	}
	if err := s.Advance(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("advance before start: %v", err)
	}
	if err := s.Restart(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("restart before start: %v", err)
	}

	if err := s.Start(domain.CategoryAll); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Advance(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("advance before answer: %v", err)
	}

	q, _ := s.Current()
	if _, err := s.Answer(q.CorrectOptionID); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := s.Answer(q.CorrectOptionID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second answer must be rejected, got %v", err)
	}
	if s.Correct() != 1 {
		t.Fatalf("double answer must not double count, got %d", s.Correct())
	}
}

func TestSessionRejectsUnknownOption(t *testing.T) {
	s := NewSession(bank.Default(), WithRand(NewSeededRand(2)))
	if err := s.Start(domain.CategoryAll); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := s.Answer("Z"); !errors.Is(err, domain.ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
	if s.State() != StateAwaitingAnswer || s.Selected() != "" {
		t.Fatalf("rejected answer must leave state untouched")
	}
}

func TestSessionStartErrors(t *testing.T) {
	if err := NewSession(nil).Start(domain.CategoryAll); !errors.Is(err, domain.ErrEmptyBank) {
		t.Fatalf("expected ErrEmptyBank, got %v", err)
	}
	if err := NewSession(bank.Default()).Start("parking"); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestSessionRestartKeepsCategoryAndResets(t *testing.T) {
	b := syntheticBank(map[domain.Category]int{
		domain.CategoryRoadSigns:    6,
		domain.CategoryTrafficRules: 6,
	})
	s := NewSession(b, WithRand(NewSeededRand(4)), WithQuestionCount(6))
	if err := s.Start(domain.CategoryRoadSigns); err != nil {
		t.Fatalf("start: %v", err)
	}
	q, _ := s.Current()
	_, _ = s.Answer(q.CorrectOptionID)
	_ = s.Advance()

	if err := s.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if s.Category() != domain.CategoryRoadSigns {
		t.Fatalf("restart changed category to %s", s.Category())
	}
	if s.Index() != 0 || s.Correct() != 0 || s.ShowingResult() || s.Completed() || s.Selected() != "" {
		t.Fatalf("restart must reset state, got %+v", s.Snapshot())
	}
	for _, q := range s.Questions() {
		if q.Category != domain.CategoryRoadSigns {
			t.Fatalf("restarted session drew %s", q.Category)
		}
	}
}

func TestSessionExit(t *testing.T) {
	s := NewSession(bank.Default(), WithRand(NewSeededRand(6)))
	if err := s.Start(domain.CategoryFirstAid); err != nil {
		t.Fatalf("start: %v", err)
	}
	q, _ := s.Current()
	_, _ = s.Answer(q.CorrectOptionID)

	s.Exit()
	if s.State() != StateNotStarted || s.Total() != 0 || s.Correct() != 0 {
		t.Fatalf("exit must reset session, got %+v", s.Snapshot())
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("no current question after exit")
	}
}

func TestSnapshotTracksState(t *testing.T) {
	s := NewSession(bank.Default(), WithRand(NewSeededRand(10)))
	if snap := s.Snapshot(); snap.State != StateNotStarted || snap.Question != nil {
		t.Fatalf("unexpected snapshot before start: %+v", snap)
	}
	_ = s.Start(domain.CategoryAll)
	q, _ := s.Current()
	_, _ = s.Answer(wrongOption(q))

	snap := s.Snapshot()
	if snap.State != StateShowingResult || !snap.ShowingResult || snap.Selected == "" {
		t.Fatalf("unexpected snapshot after answer: %+v", snap)
	}
	if snap.Question == nil || snap.Question.ID != q.ID {
		t.Fatalf("snapshot question mismatch")
	}
}
