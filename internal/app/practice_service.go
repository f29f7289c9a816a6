package app

import (
	"context"
	"sync"
	"time"

	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/quiz"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRepository abstracts where active practice sessions live (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(playerID string, create func() *Practice) *Practice
	Get(playerID string) (*Practice, bool)
	Delete(playerID string)
}

// BankRepository returns the current question bank (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context) ([]domain.Question, error)
}

// HistoryStore keeps completed sessions and derives progress from them.
type HistoryStore interface {
	Record(ctx context.Context, rec domain.SessionRecord) error
	Stats(ctx context.Context, playerID string) (domain.PlayerStats, error)
	Recent(ctx context.Context, playerID string, limit int) ([]domain.SessionRecord, error)
}

// Metrics receives practice events.
type Metrics interface {
	SessionStarted(category domain.Category)
	Answered(correct bool)
	SessionCompleted(tier domain.Tier)
}

type Config struct {
	Sessions      SessionRepository
	Bank          BankRepository
	History       HistoryStore
	Metrics       Metrics
	Logger        *zap.Logger
	QuestionCount int
	Rand          quiz.Shuffler
	Clock         func() time.Time
}

// PracticeService runs one practice session per player.
type PracticeService struct {
	sessions SessionRepository
	bank     BankRepository
	history  HistoryStore
	metrics  Metrics
	log      *zap.Logger
	count    int
	rnd      quiz.Shuffler
	now      func() time.Time
}

func NewPracticeService(cfg Config) *PracticeService {
	s := &PracticeService{
		sessions: cfg.Sessions,
		bank:     cfg.Bank,
		history:  cfg.History,
		metrics:  cfg.Metrics,
		log:      cfg.Logger,
		count:    cfg.QuestionCount,
		rnd:      cfg.Rand,
		now:      cfg.Clock,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	if s.count <= 0 {
		s.count = quiz.DefaultQuestionCount
	}
	if s.rnd == nil {
		s.rnd = quiz.NewRand()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Practice is the server-side holder of one player's quiz session. All access goes through mu.
type Practice struct {
	mu        sync.Mutex
	id        string
	playerID  string
	startedAt time.Time
	session   *quiz.Session
	closed    bool // removed from the store; a new Practice must be created
}

// NewPractice is exported for infrastructure layers that need to seed sessions.
func NewPractice(playerID string) *Practice {
	return &Practice{playerID: playerID}
}

func (p *Practice) PlayerID() string { return p.playerID }

// Start draws a fresh set of questions for the player, replacing any session in progress.
func (s *PracticeService) Start(ctx context.Context, playerID string, category domain.Category) (View, error) {
	questions, err := s.bank.GetBank(ctx)
	if err != nil {
		return View{}, err
	}

	practice := s.lockOpenPractice(playerID)
	defer practice.mu.Unlock()

	session := quiz.NewSession(questions, quiz.WithRand(s.rnd), quiz.WithQuestionCount(s.count))
	if err := session.Start(category); err != nil {
		return View{}, err
	}
	practice.session = session
	practice.id = uuid.NewString()
	practice.startedAt = s.now()

	s.metrics.SessionStarted(category)
	s.log.Debug("practice started",
		zap.String("player_id", playerID),
		zap.String("practice_id", practice.id),
		zap.String("category", string(category)),
		zap.Int("questions", session.Total()))
	return practice.viewLocked(), nil
}

// Answer records the player's option for the current question.
func (s *PracticeService) Answer(ctx context.Context, playerID, optionID string) (View, error) {
	return s.withPractice(playerID, func(p *Practice) error {
		correct, err := p.session.Answer(optionID)
		if err != nil {
			return err
		}
		s.metrics.Answered(correct)
		return nil
	})
}

// Next advances past the shown result. Finishing the last question records the session.
func (s *PracticeService) Next(ctx context.Context, playerID string) (View, error) {
	return s.withPractice(playerID, func(p *Practice) error {
		if err := p.session.Advance(); err != nil {
			return err
		}
		if p.session.Completed() {
			s.complete(ctx, p)
		}
		return nil
	})
}

// Restart begins a new attempt with the category of the previous one.
func (s *PracticeService) Restart(ctx context.Context, playerID string) (View, error) {
	return s.withPractice(playerID, func(p *Practice) error {
		if err := p.session.Restart(); err != nil {
			return err
		}
		p.id = uuid.NewString()
		p.startedAt = s.now()
		s.metrics.SessionStarted(p.session.Category())
		return nil
	})
}

// Exit abandons the player's session. Nothing is recorded.
func (s *PracticeService) Exit(_ context.Context, playerID string) {
	s.exit(playerID, "")
}

// Release exits the player's session only while it is still the attempt identified by
// practiceID. Another connection that started or restarted the session since keeps it.
func (s *PracticeService) Release(_ context.Context, playerID, practiceID string) {
	if practiceID == "" {
		return
	}
	s.exit(playerID, practiceID)
}

func (s *PracticeService) exit(playerID, practiceID string) {
	practice, ok := s.sessions.Get(playerID)
	if !ok {
		return
	}
	practice.mu.Lock()
	defer practice.mu.Unlock()
	if practice.closed || (practiceID != "" && practice.id != practiceID) {
		return
	}
	if practice.session != nil {
		practice.session.Exit()
	}
	practice.closed = true
	// still holding the lock, so the stored entry is this practice
	s.sessions.Delete(playerID)
}

// lockOpenPractice returns the player's practice locked, skipping one a concurrent exit closed.
func (s *PracticeService) lockOpenPractice(playerID string) *Practice {
	for {
		practice := s.sessions.GetOrCreate(playerID, func() *Practice { return NewPractice(playerID) })
		practice.mu.Lock()
		if !practice.closed {
			return practice
		}
		practice.mu.Unlock()
	}
}

func (s *PracticeService) Current(_ context.Context, playerID string) (View, error) {
	return s.withPractice(playerID, func(*Practice) error { return nil })
}

// Review returns the summary and per-question review of a completed session.
func (s *PracticeService) Review(_ context.Context, playerID string) (Result, error) {
	practice, ok := s.sessions.Get(playerID)
	if !ok {
		return Result{}, domain.ErrSessionNotFound
	}
	practice.mu.Lock()
	defer practice.mu.Unlock()
	if practice.closed || practice.session == nil {
		return Result{}, domain.ErrSessionNotFound
	}
	summary, err := quiz.Summarize(practice.session)
	if err != nil {
		return Result{}, err
	}
	return Result{
		PracticeID: practice.id,
		Category:   practice.session.Category(),
		Summary:    summary,
		Review:     quiz.Review(practice.session),
	}, nil
}

// Categories lists every category with the number of bank questions in it.
func (s *PracticeService) Categories(ctx context.Context) ([]CategoryView, error) {
	questions, err := s.bank.GetBank(ctx)
	if err != nil {
		return nil, err
	}
	counts := bank.CountByCategory(questions)
	infos := domain.Categories()
	out := make([]CategoryView, 0, len(infos))
	for _, info := range infos {
		out = append(out, CategoryView{ID: info.ID, Color: info.Color, Questions: counts[info.ID]})
	}
	return out, nil
}

func (s *PracticeService) Stats(ctx context.Context, playerID string) (domain.PlayerStats, error) {
	return s.history.Stats(ctx, playerID)
}

func (s *PracticeService) History(ctx context.Context, playerID string, limit int) ([]domain.SessionRecord, error) {
	return s.history.Recent(ctx, playerID, limit)
}

func (s *PracticeService) withPractice(playerID string, fn func(*Practice) error) (View, error) {
	practice, ok := s.sessions.Get(playerID)
	if !ok {
		return View{}, domain.ErrSessionNotFound
	}
	practice.mu.Lock()
	defer practice.mu.Unlock()
	if practice.closed || practice.session == nil {
		return View{}, domain.ErrSessionNotFound
	}
	if err := fn(practice); err != nil {
		return View{}, err
	}
	return practice.viewLocked(), nil
}

// complete stores the finished session. A failing history store never fails the quiz itself.
func (s *PracticeService) complete(ctx context.Context, p *Practice) {
	summary, err := quiz.Summarize(p.session)
	if err != nil {
		return
	}
	s.metrics.SessionCompleted(summary.Tier)

	rec := domain.SessionRecord{
		ID:          p.id,
		PlayerID:    p.playerID,
		Category:    p.session.Category(),
		Total:       summary.Total,
		Correct:     summary.Correct,
		Score:       summary.Score,
		Tier:        summary.Tier,
		Answers:     quiz.Answers(p.session),
		CompletedAt: s.now().UTC(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		s.log.Error("record practice session failed",
			zap.String("player_id", p.playerID),
			zap.String("practice_id", p.id),
			zap.Error(err))
		return
	}
	s.log.Info("practice completed",
		zap.String("player_id", p.playerID),
		zap.String("practice_id", p.id),
		zap.Int("score", summary.Score),
		zap.String("tier", string(summary.Tier)))
}

type nopMetrics struct{}

func (nopMetrics) SessionStarted(domain.Category) {}
func (nopMetrics) Answered(bool)                  {}
func (nopMetrics) SessionCompleted(domain.Tier)   {}
