package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/dto"
	"github.com/fadilmartias/interview-quiz/internal/logger"
	"github.com/fadilmartias/interview-quiz/internal/model"
	"github.com/fadilmartias/interview-quiz/internal/service"
	"github.com/fadilmartias/interview-quiz/internal/util"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
)

var ErrGenerationInvalid = errors.New("generated quiz invalid")

type GeneratorConfig struct {
	QuestionCount int
	MinQuestions  int
	MaxAttempts   int
	RetryDelay    time.Duration
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		QuestionCount: 10,
		MinQuestions:  5,
		MaxAttempts:   3,
		RetryDelay:    2 * time.Second,
	}
}

// QuestionGenerator asks the model for a quiz tailored to a profile. It
// never fails: after MaxAttempts bad attempts it serves FallbackQuestions.
type QuestionGenerator struct {
	gemini service.GeminiServiceInterface
	log    *logger.Logger
	config GeneratorConfig
}

func NewQuestionGenerator(gemini service.GeminiServiceInterface, log *logger.Logger, cfg GeneratorConfig) *QuestionGenerator {
	def := DefaultGeneratorConfig()
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = def.QuestionCount
	}
	if cfg.MinQuestions <= 0 {
		cfg.MinQuestions = def.MinQuestions
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = def.RetryDelay
	}
	return &QuestionGenerator{
		gemini: gemini,
		log:    log.With("component", "QuestionGenerator"),
		config: cfg,
	}
}

func (g *QuestionGenerator) Generate(ctx context.Context, profile model.Profile) []dto.GeneratedQuestion {
	prompt := buildQuizPrompt(profile, g.config.QuestionCount)

	for attempt := 1; attempt <= g.config.MaxAttempts; attempt++ {
		questions, err := g.attempt(ctx, prompt)
		if err == nil {
			return questions
		}
		g.log.Warn("quiz generation attempt failed",
			"attempt", attempt,
			"max_attempts", g.config.MaxAttempts,
			"retryable", retryable(err),
			"error", err,
		)

		if attempt == g.config.MaxAttempts {
			break
		}
		if !wait(ctx, g.config.RetryDelay) {
			g.log.Warn("quiz generation cancelled", "attempt", attempt, "error", ctx.Err())
			break
		}
	}

	g.log.Error("all quiz generation attempts failed, returning fallback questions")
	return FallbackQuestions()
}

func (g *QuestionGenerator) attempt(ctx context.Context, prompt string) ([]dto.GeneratedQuestion, error) {
	text, err := g.gemini.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseQuiz(text, g.config.MinQuestions, g.config.QuestionCount)
}

// parseQuiz turns raw model text into questions. Any shape problem is
// reported as ErrGenerationInvalid.
func parseQuiz(text string, minQuestions, maxQuestions int) ([]dto.GeneratedQuestion, error) {
	cleaned := util.StripCodeFence(text)
	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrGenerationInvalid)
	}

	raw := gjson.Get(cleaned, "questions")
	if !raw.IsArray() {
		return nil, fmt.Errorf("%w: missing questions array", ErrGenerationInvalid)
	}
	entries := raw.Array()
	if n := len(entries); n < minQuestions {
		return nil, fmt.Errorf("%w: got %d questions, want at least %d", ErrGenerationInvalid, n, minQuestions)
	}
	// Entries past maxQuestions are dropped unchecked.
	if len(entries) > maxQuestions {
		entries = entries[:maxQuestions]
	}
	kept := make([]string, len(entries))
	for i, e := range entries {
		kept[i] = e.Raw
	}
	doc := `{"questions":[` + strings.Join(kept, ",") + `]}`

	schema, err := compiledQuizSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationInvalid, err)
	}
	if err := schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationInvalid, err)
	}

	var questions []dto.GeneratedQuestion
	if err := json.Unmarshal([]byte(gjson.Get(doc, "questions").Raw), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationInvalid, err)
	}
	for i, q := range questions {
		if !slices.Contains(q.Options, q.CorrectAnswer) {
			return nil, fmt.Errorf("%w: question %d correct answer is not one of its options", ErrGenerationInvalid, i+1)
		}
	}
	return questions, nil
}

// retryable reports whether the model backend considers err transient.
// Errors that carry no API status are treated as transient.
func retryable(err error) bool {
	var apiErr *service.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	return true
}

// wait blocks for d unless ctx ends first; it reports whether the full
// delay elapsed.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
