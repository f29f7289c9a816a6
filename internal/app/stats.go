package app

import (
	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/quiz"
)

// Tally counts answers within one category.
type Tally struct {
	Answered int
	Correct  int
}

// BuildStats derives player statistics from aggregate counts. Every category is listed, in
// display order, even when the player has not answered any of its questions yet.
func BuildStats(playerID string, sessions, scoreSum int, tallies map[domain.Category]Tally) domain.PlayerStats {
	stats := domain.PlayerStats{
		PlayerID:          playerID,
		SessionsCompleted: sessions,
	}
	if sessions > 0 {
		stats.AverageScore = (2*scoreSum + sessions) / (2 * sessions)
	}
	for _, info := range domain.Categories() {
		t := tallies[info.ID]
		stats.QuestionsAnswered += t.Answered
		stats.CorrectAnswers += t.Correct
		stats.Categories = append(stats.Categories, domain.CategoryStats{
			Category: info.ID,
			Answered: t.Answered,
			Correct:  t.Correct,
			Progress: quiz.Score(t.Correct, t.Answered),
		})
	}
	return stats
}
