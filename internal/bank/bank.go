// Package bank holds the static question bank and the loaders that produce one.
package bank

import (
	"context"
	"fmt"
	"os"

	"driving-quiz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// Default returns a fresh copy of the built-in question bank.
func Default() []domain.Question {
	return Clone(defaultQuestions)
}

// Clone deep-copies a bank so callers can never mutate shared question data.
func Clone(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.Options = append([]domain.Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Validate checks every question and the bank-wide invariants (non-empty, unique IDs).
func Validate(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrEmptyBank
	}
	seen := make(map[string]struct{}, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %s", domain.ErrInvalidQuestion, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// CountByCategory reports how many questions each category holds.
func CountByCategory(questions []domain.Question) map[domain.Category]int {
	counts := make(map[domain.Category]int)
	for _, q := range questions {
		counts[q.Category]++
	}
	return counts
}

type file struct {
	Questions []domain.Question `yaml:"questions"`
}

// LoadFile reads a YAML bank file and validates it.
func LoadFile(path string) ([]domain.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bank file %s: %w", path, err)
	}
	if err := Validate(f.Questions); err != nil {
		return nil, fmt.Errorf("bank file %s: %w", path, err)
	}
	return f.Questions, nil
}

// FileLoader loads the bank from a YAML file on every call.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

func (l *FileLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	return LoadFile(l.path)
}

// StaticLoader serves a fixed bank (the built-in one by default).
type StaticLoader struct {
	questions []domain.Question
}

func NewStaticLoader(questions []domain.Question) *StaticLoader {
	return &StaticLoader{questions: Clone(questions)}
}

func (l *StaticLoader) LoadQuestions(_ context.Context) ([]domain.Question, error) {
	if len(l.questions) == 0 {
		return nil, domain.ErrEmptyBank
	}
	return Clone(l.questions), nil
}
