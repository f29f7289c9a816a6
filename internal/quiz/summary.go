package quiz

import "driving-quiz-service/internal/domain"

// Summary is the derived result of a completed session.
type Summary struct {
	Score     int         `json:"score"`
	Tier      domain.Tier `json:"tier"`
	Correct   int         `json:"correct"`
	Incorrect int         `json:"incorrect"`
	Total     int         `json:"total"`
}

// Score is round(correct / total * 100) with halves rounded up. An empty session scores 0.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*correct + total) / (2 * total)
}

// TierFor maps a score to its tier; each threshold is an inclusive lower bound.
func TierFor(score int) domain.Tier {
	switch {
	case score >= 90:
		return domain.TierExcellent
	case score >= 70:
		return domain.TierGood
	case score >= 50:
		return domain.TierAverage
	default:
		return domain.TierNeedsImprovement
	}
}

// Summarize derives the score and tier of a completed session.
func Summarize(s *Session) (Summary, error) {
	if !s.Completed() {
		return Summary{}, domain.ErrSessionNotCompleted
	}
	score := Score(s.Correct(), s.Total())
	return Summary{
		Score:     score,
		Tier:      TierFor(score),
		Correct:   s.Correct(),
		Incorrect: s.Total() - s.Correct(),
		Total:     s.Total(),
	}, nil
}

// ReviewEntry describes one question of a finished session for the answer review.
type ReviewEntry struct {
	Question          domain.Question `json:"question"`
	CorrectAnswer     string          `json:"correctAnswer"`
	Explanation       string          `json:"explanation"`
	SelectedOptionID  string          `json:"selectedOptionId,omitempty"`
	AnsweredCorrectly bool            `json:"answeredCorrectly"`
}

// Review lists every drawn question with the recorded answer. A slot that was never answered
// is reported as not answered correctly.
func Review(s *Session) []ReviewEntry {
	entries := make([]ReviewEntry, 0, len(s.questions))
	for i, q := range s.questions {
		correctText := ""
		if opt, ok := q.CorrectOption(); ok {
			correctText = opt.Text
		}
		selected := s.answers[i]
		entries = append(entries, ReviewEntry{
			Question:          q,
			CorrectAnswer:     correctText,
			Explanation:       q.Explanation,
			SelectedOptionID:  selected,
			AnsweredCorrectly: selected != "" && selected == q.CorrectOptionID,
		})
	}
	return entries
}

// Answers returns the per-question answer records of the session, in session order.
func Answers(s *Session) []domain.AnswerRecord {
	records := make([]domain.AnswerRecord, 0, len(s.questions))
	for i, q := range s.questions {
		records = append(records, domain.AnswerRecord{
			QuestionID:       q.ID,
			Category:         q.Category,
			SelectedOptionID: s.answers[i],
			Correct:          s.answers[i] != "" && s.answers[i] == q.CorrectOptionID,
		})
	}
	return records
}
