package quiz

import (
	"math/rand"
	"sync"
	"time"
)

// Shuffler is the randomness the selector needs. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// lockedRand makes a *rand.Rand safe to share between sessions.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRand returns a goroutine-safe, time-seeded source.
func NewRand() Shuffler {
	return NewSeededRand(time.Now().UnixNano())
}

// NewSeededRand returns a goroutine-safe deterministic source for tests and replays.
func NewSeededRand(seed int64) Shuffler {
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rnd.Shuffle(n, swap)
}
