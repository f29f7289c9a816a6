package app

import (
	"driving-quiz-service/internal/domain"
	"driving-quiz-service/internal/quiz"
)

// View is what transports render for a player's session.
type View struct {
	PracticeID    string          `json:"practiceId"`
	PlayerID      string          `json:"playerId"`
	State         string          `json:"state"`
	Category      domain.Category `json:"category"`
	Index         int             `json:"index"`
	Total         int             `json:"total"`
	Correct       int             `json:"correct"`
	Selected      string          `json:"selected,omitempty"`
	ShowingResult bool            `json:"showingResult"`
	Completed     bool            `json:"completed"`
	Question      *QuestionView   `json:"question,omitempty"`
	Summary       *quiz.Summary   `json:"summary,omitempty"`
}

// QuestionView hides the correct option and explanation until the result is shown.
type QuestionView struct {
	ID              string            `json:"id"`
	Text            string            `json:"text"`
	Options         []domain.Option   `json:"options"`
	Category        domain.Category   `json:"category"`
	Difficulty      domain.Difficulty `json:"difficulty"`
	CorrectOptionID string            `json:"correctOptionId,omitempty"`
	Explanation     string            `json:"explanation,omitempty"`
	AnsweredCorrect *bool             `json:"answeredCorrectly,omitempty"`
}

// Result is the end-of-session report.
type Result struct {
	PracticeID string             `json:"practiceId"`
	Category   domain.Category    `json:"category"`
	Summary    quiz.Summary       `json:"summary"`
	Review     []quiz.ReviewEntry `json:"review"`
}

type CategoryView struct {
	ID        domain.Category `json:"id"`
	Color     string          `json:"color"`
	Questions int             `json:"questions"`
}

func (p *Practice) viewLocked() View {
	snap := p.session.Snapshot()
	v := View{
		PracticeID:    p.id,
		PlayerID:      p.playerID,
		State:         snap.State.String(),
		Category:      snap.Category,
		Index:         snap.Index,
		Total:         snap.Total,
		Correct:       snap.Correct,
		Selected:      snap.Selected,
		ShowingResult: snap.ShowingResult,
		Completed:     snap.Completed,
	}
	if snap.Question != nil && !snap.Completed {
		v.Question = questionView(*snap.Question, snap.ShowingResult, snap.Selected)
	}
	if summary, err := quiz.Summarize(p.session); err == nil {
		v.Summary = &summary
	}
	return v
}

func questionView(q domain.Question, reveal bool, selected string) *QuestionView {
	options := make([]domain.Option, len(q.Options))
	copy(options, q.Options)
	qv := &QuestionView{
		ID:         q.ID,
		Text:       q.Text,
		Options:    options,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
	if reveal {
		correct := selected == q.CorrectOptionID
		qv.CorrectOptionID = q.CorrectOptionID
		qv.Explanation = q.Explanation
		qv.AnsweredCorrect = &correct
	}
	return qv
}
