package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// BankLoader fetches the question bank from a backing store (YAML file, Postgres).
type BankLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// BankKey holds the cached bank: HSET quiz:bank:questions {questionID} {question JSON}
const BankKey = "quiz:bank:questions"

// BankRepository caches the question bank in a Redis hash and falls back to a loader on cache miss,
// so every instance behind a load balancer draws from the same bank.
type BankRepository struct {
	client *redis.Client
	loader BankLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewBankRepository(client *redis.Client, loader BankLoader, ttl time.Duration) *BankRepository {
	return &BankRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *BankRepository) GetBank(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := r.fromCache(ctx); ok {
		return questions, nil
	}

	result, err, _ := r.sf.Do(BankKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := r.fromCache(ctx); ok {
			return questions, nil
		}

		questions, err := r.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		if err := bank.Validate(questions); err != nil {
			return nil, err
		}

		fields := make([]interface{}, 0, 2*len(questions))
		for _, q := range questions {
			raw, err := json.Marshal(q)
			if err != nil {
				return nil, fmt.Errorf("marshal question %s: %w", q.ID, err)
			}
			fields = append(fields, q.ID, raw)
		}
		pipe := r.client.TxPipeline()
		pipe.Del(ctx, BankKey)
		pipe.HSet(ctx, BankKey, fields...)
		if ttl := r.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, BankKey, ttl)
		}
		// best-effort: a failed write only costs another load
		_, _ = pipe.Exec(ctx)

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return bank.Clone(result.([]domain.Question)), nil
}

// Invalidate drops the cached bank so the next read reloads it.
func (r *BankRepository) Invalidate(ctx context.Context) error {
	return r.client.Del(ctx, BankKey).Err()
}

func (r *BankRepository) fromCache(ctx context.Context) ([]domain.Question, bool) {
	cached, err := r.client.HGetAll(ctx, BankKey).Result()
	if err != nil || len(cached) == 0 {
		return nil, false
	}
	questions := make([]domain.Question, 0, len(cached))
	for _, raw := range cached {
		var q domain.Question
		if err := json.Unmarshal([]byte(raw), &q); err != nil {
			return nil, false
		}
		questions = append(questions, q)
	}
	// hash order is unspecified; keep the bank stable for seeded selections
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID < questions[j].ID })
	return questions, true
}

func (r *BankRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}
