package config

import (
	"fmt"
	"os"
	"time"

	"driving-quiz-service/internal/quiz"
	"driving-quiz-service/pkg/validator"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Log struct {
		Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" validate:"min=0"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		TTL                 string `yaml:"ttl"`
		QuestionsPerSession int    `yaml:"questions_per_session" validate:"min=1,max=100"`
		BankFile            string `yaml:"bank_file"`
		Language            string `yaml:"language"`
	} `yaml:"quiz"`
	Auth struct {
		TokenTTL string `yaml:"token_ttl"`
	} `yaml:"auth"`
}

// Default returns the configuration used for every key the file leaves out.
func Default() Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Log.Level = "info"
	cfg.Quiz.QuestionsPerSession = quiz.DefaultQuestionCount
	cfg.Quiz.Language = "tr"
	return cfg
}

// Load reads YAML config from path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := validator.ValidateStruct(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
