package domain

import (
	"fmt"
	"time"
)

// Category tags a question with one of the fixed topic areas of the exam.
type Category string

const (
	CategoryTrafficRules       Category = "traffic_rules"
	CategoryRoadSigns          Category = "road_signs"
	CategoryFirstAid           Category = "first_aid"
	CategoryVehicleMaintenance Category = "vehicle_maintenance"

	// CategoryAll is the "no filter" selection used when starting a mixed session.
	CategoryAll Category = "all"
)

// CategoryInfo carries the display attributes of a category.
type CategoryInfo struct {
	ID    Category `json:"id"`
	Color string   `json:"color"`
}

var categories = []CategoryInfo{
	{ID: CategoryTrafficRules, Color: "#3b82f6"},
	{ID: CategoryRoadSigns, Color: "#10b981"},
	{ID: CategoryFirstAid, Color: "#ef4444"},
	{ID: CategoryVehicleMaintenance, Color: "#f59e0b"},
}

// Categories returns the fixed category list in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the fixed categories. CategoryAll is not a valid question tag.
func (c Category) Valid() bool {
	for _, info := range categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// Difficulty tags a question with its expected difficulty.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Option represents a possible answer for a question.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Question models a multiple-choice question with exactly one correct option.
type Question struct {
	ID              string     `json:"id" yaml:"id"`
	Text            string     `json:"text" yaml:"text"`
	Options         []Option   `json:"options" yaml:"options"`
	CorrectOptionID string     `json:"correctOptionId" yaml:"correct_option_id"`
	Explanation     string     `json:"explanation" yaml:"explanation"`
	Category        Category   `json:"category" yaml:"category"`
	Difficulty      Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Option looks up an option by ID.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// CorrectOption returns the option referenced by CorrectOptionID.
func (q Question) CorrectOption() (Option, bool) {
	return q.Option(q.CorrectOptionID)
}

// Validate checks the record invariants, most importantly that the correct option exists.
func (q Question) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuestion)
	}
	if q.Text == "" {
		return fmt.Errorf("%w: question %s: missing text", ErrInvalidQuestion, q.ID)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: question %s: needs at least two options", ErrInvalidQuestion, q.ID)
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if opt.ID == "" {
			return fmt.Errorf("%w: question %s: option without id", ErrInvalidQuestion, q.ID)
		}
		if _, dup := seen[opt.ID]; dup {
			return fmt.Errorf("%w: question %s: duplicate option %s", ErrInvalidQuestion, q.ID, opt.ID)
		}
		seen[opt.ID] = struct{}{}
	}
	if _, ok := seen[q.CorrectOptionID]; !ok {
		return fmt.Errorf("%w: question %s: correct option %q is not one of its options", ErrInvalidQuestion, q.ID, q.CorrectOptionID)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("%w: question %s: unknown category %q", ErrInvalidQuestion, q.ID, q.Category)
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("%w: question %s: unknown difficulty %q", ErrInvalidQuestion, q.ID, q.Difficulty)
	}
	return nil
}

// Tier is the qualitative band a session score falls into.
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierAverage          Tier = "average"
	TierNeedsImprovement Tier = "needs improvement"
)

var tierColors = map[Tier]string{
	TierExcellent:        "#16a34a",
	TierGood:             "#3b82f6",
	TierAverage:          "#f59e0b",
	TierNeedsImprovement: "#dc2626",
}

// Color is the display colour used for the tier's result message.
func (t Tier) Color() string {
	return tierColors[t]
}

// AnswerRecord is one answered question inside a completed session.
type AnswerRecord struct {
	QuestionID       string   `json:"questionId"`
	Category         Category `json:"category"`
	SelectedOptionID string   `json:"selectedOptionId"`
	Correct          bool     `json:"correct"`
}

// SessionRecord is the history entry written when a practice session completes.
type SessionRecord struct {
	ID          string         `json:"id"`
	PlayerID    string         `json:"playerId"`
	Category    Category       `json:"category"`
	Total       int            `json:"total"`
	Correct     int            `json:"correct"`
	Score       int            `json:"score"`
	Tier        Tier           `json:"tier"`
	Answers     []AnswerRecord `json:"answers,omitempty"`
	CompletedAt time.Time      `json:"completedAt"`
}

// CategoryStats summarises a player's answers within a single category.
type CategoryStats struct {
	Category Category `json:"category"`
	Answered int      `json:"answered"`
	Correct  int      `json:"correct"`
	Progress int      `json:"progress"`
}

// PlayerStats aggregates the completed sessions of a player.
type PlayerStats struct {
	PlayerID          string          `json:"playerId"`
	SessionsCompleted int             `json:"sessionsCompleted"`
	QuestionsAnswered int             `json:"questionsAnswered"`
	CorrectAnswers    int             `json:"correctAnswers"`
	AverageScore      int             `json:"averageScore"`
	Categories        []CategoryStats `json:"categories"`
}

// User is the profile held by the authentication collaborator.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Username       string `json:"username,omitempty"`
	PersonalNumber string `json:"personalNumber,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}
