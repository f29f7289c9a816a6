package memory

import (
	"context"
	"sort"
	"sync"

	"driving-quiz-service/internal/app"
	"driving-quiz-service/internal/domain"
)

// HistoryStore keeps completed sessions in process memory; used when no Postgres URL is configured.
type HistoryStore struct {
	mu      sync.RWMutex
	records map[string][]domain.SessionRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{records: make(map[string][]domain.SessionRecord)}
}

func (s *HistoryStore) Record(_ context.Context, rec domain.SessionRecord) error {
	rec.Answers = append([]domain.AnswerRecord(nil), rec.Answers...)
	s.mu.Lock()
	s.records[rec.PlayerID] = append(s.records[rec.PlayerID], rec)
	s.mu.Unlock()
	return nil
}

func (s *HistoryStore) Stats(_ context.Context, playerID string) (domain.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.records[playerID]
	scoreSum := 0
	tallies := make(map[domain.Category]app.Tally)
	for _, rec := range records {
		scoreSum += rec.Score
		for _, a := range rec.Answers {
			t := tallies[a.Category]
			t.Answered++
			if a.Correct {
				t.Correct++
			}
			tallies[a.Category] = t
		}
	}
	return app.BuildStats(playerID, len(records), scoreSum, tallies), nil
}

// Recent returns up to limit records, newest first. A non-positive limit returns all of them.
func (s *HistoryStore) Recent(_ context.Context, playerID string, limit int) ([]domain.SessionRecord, error) {
	s.mu.RLock()
	records := append([]domain.SessionRecord(nil), s.records[playerID]...)
	s.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
