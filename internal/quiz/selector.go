package quiz

import "driving-quiz-service/internal/domain"

const (
	// DefaultQuestionCount is the session length used when none is configured.
	DefaultQuestionCount = 10
	// MinCategoryQuestions is the smallest category selection that is not padded with other categories.
	MinCategoryQuestions = 5
)

// SelectRandom shuffles a copy of bank and returns its first min(count, len(bank)) questions.
// Each call shuffles independently and never repeats a question.
func SelectRandom(rnd Shuffler, count int, bank []domain.Question) []domain.Question {
	if count <= 0 || len(bank) == 0 {
		return []domain.Question{}
	}
	shuffled := make([]domain.Question, len(bank))
	copy(shuffled, bank)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}

// SelectRandomByCategory draws up to count questions of category. When that yields fewer than
// MinCategoryQuestions, the remainder up to count is backfilled with random questions from the
// other categories. CategoryAll selects from the whole bank.
func SelectRandomByCategory(rnd Shuffler, count int, category domain.Category, bank []domain.Question) []domain.Question {
	if category == domain.CategoryAll {
		return SelectRandom(rnd, count, bank)
	}

	var matching, others []domain.Question
	for _, q := range bank {
		if q.Category == category {
			matching = append(matching, q)
		} else {
			others = append(others, q)
		}
	}

	selected := SelectRandom(rnd, count, matching)
	if len(selected) >= MinCategoryQuestions || len(selected) >= count {
		return selected
	}
	return append(selected, SelectRandom(rnd, count-len(selected), others)...)
}
