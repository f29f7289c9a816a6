package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches the question bank from a backing store (static list, YAML file, Postgres).
type BankLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

const bankKey = "bank"

// BankRepository caches the question bank with TTL to avoid repeated loads.
// A zero TTL caches forever. rnd is only touched inside the singleflight call.
type BankRepository struct {
	loader BankLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	questions []domain.Question
	expiresAt time.Time
	loaded    bool
}

func NewBankRepository(loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetBank returns a copy of the cached bank, reloading it once the entry expires.
func (r *BankRepository) GetBank(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := r.cached(r.clock()); ok {
		return bank.Clone(questions), nil
	}

	result, err, _ := r.sf.Do(bankKey, func() (interface{}, error) {
		now := r.clock()
		if questions, ok := r.cached(now); ok {
			return questions, nil
		}

		questions, err := r.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		if err := bank.Validate(questions); err != nil {
			return nil, err
		}

		var expiresAt time.Time
		if ttl := r.ttlWithJitter(); ttl > 0 {
			expiresAt = now.Add(ttl)
		}
		r.mu.Lock()
		r.questions = questions
		r.loaded = true
		r.expiresAt = expiresAt
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return bank.Clone(result.([]domain.Question)), nil
}

func (r *BankRepository) cached(now time.Time) ([]domain.Question, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.loaded {
		return nil, false
	}
	if !r.expiresAt.IsZero() && !r.expiresAt.After(now) {
		return nil, false
	}
	return r.questions, true
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
