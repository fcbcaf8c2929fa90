package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

type QuizConfig struct {
	QuestionCount int
	MinQuestions  int
	MaxAttempts   int
	RetryDelay    time.Duration
}

var (
	quizConfig *QuizConfig
	quizOnce   sync.Once
)

func LoadQuizConfig() *QuizConfig {
	quizOnce.Do(func() {
		quizConfig = &QuizConfig{
			QuestionCount: intEnv("QUIZ_QUESTION_COUNT", 10),
			MinQuestions:  intEnv("QUIZ_MIN_QUESTIONS", 5),
			MaxAttempts:   intEnv("QUIZ_MAX_ATTEMPTS", 3),
			RetryDelay:    durationEnv("QUIZ_RETRY_DELAY", 2*time.Second),
		}
	})
	return quizConfig
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return n
}
