package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"driving-quiz-service/internal/bank"
	"driving-quiz-service/internal/domain"
)

func TestBankRepositoryCaches(t *testing.T) {
	loader := &countingLoader{BankLoader: bank.NewStaticLoader(bank.Default())}
	repo := NewBankRepository(loader, time.Minute)

	questions, err := repo.GetBank(context.Background())
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(questions))
	}
	if loader.count() != 1 {
		t.Fatalf("expected loader once, got %d", loader.count())
	}

	// Mutating the returned copy must not leak into the cache.
	questions[0].Text = "changed"
	again, err := repo.GetBank(context.Background())
	if err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.count() != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.count())
	}
	if again[0].Text == "changed" {
		t.Fatalf("expected cached bank to be isolated from callers")
	}
}

func TestBankRepositoryExpires(t *testing.T) {
	loader := &countingLoader{BankLoader: bank.NewStaticLoader(bank.Default())}
	repo := NewBankRepository(loader, time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetBank(context.Background()); err != nil {
		t.Fatalf("get bank after expiry: %v", err)
	}
	if loader.count() != 2 {
		t.Fatalf("expected reload after ttl, loader calls %d", loader.count())
	}
}

func TestBankRepositorySingleflight(t *testing.T) {
	loader := &countingLoader{BankLoader: bank.NewStaticLoader(bank.Default()), delay: 20 * time.Millisecond}
	repo := NewBankRepository(loader, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.GetBank(context.Background()); err != nil {
				t.Errorf("get bank: %v", err)
			}
		}()
	}
	wg.Wait()
	if loader.count() != 1 {
		t.Fatalf("expected a single load, got %d", loader.count())
	}
}

func TestBankRepositoryRejectsInvalidBank(t *testing.T) {
	repo := NewBankRepository(bank.NewStaticLoader(nil), time.Minute)
	if _, err := repo.GetBank(context.Background()); !errors.Is(err, domain.ErrEmptyBank) {
		t.Fatalf("expected ErrEmptyBank, got %v", err)
	}
}

type countingLoader struct {
	BankLoader
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	time.Sleep(l.delay)
	return l.BankLoader.LoadQuestions(ctx)
}

func (l *countingLoader) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
