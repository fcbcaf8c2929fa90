package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/logger"
	"github.com/fadilmartias/interview-quiz/internal/model"
	"github.com/fadilmartias/interview-quiz/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func testGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		QuestionCount: 10,
		MinQuestions:  5,
		MaxAttempts:   3,
		RetryDelay:    time.Millisecond,
	}
}

func TestGenerate_SucceedsOnFirstAttempt(t *testing.T) {
	gemini := newFakeGemini(fakeResponse{text: "```json\n" + quizJSON(10) + "\n```"})
	g := NewQuestionGenerator(gemini, logger.NewNop(), testGeneratorConfig())

	questions := g.Generate(context.Background(), model.Profile{
		Industry: "Software Engineering",
		Skills:   []string{"React"},
	})

	require.Len(t, questions, 10)
	for _, q := range questions {
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}
	assert.Equal(t, 1, gemini.CallCount())
	assert.Contains(t, gemini.prompts[0], "Generate 10 technical interview questions for a Software Engineering professional with expertise in React.")
}

func TestGenerate_PromptWithoutSkills(t *testing.T) {
	gemini := newFakeGemini(fakeResponse{text: quizJSON(10)})
	g := NewQuestionGenerator(gemini, logger.NewNop(), testGeneratorConfig())

	g.Generate(context.Background(), model.Profile{Industry: "Data Science"})

	require.Equal(t, 1, gemini.CallCount())
	assert.Contains(t, gemini.prompts[0], "for a Data Science professional.\n")
	assert.NotContains(t, gemini.prompts[0], "expertise")
}

func TestGenerate_PromptJoinsSkills(t *testing.T) {
	gemini := newFakeGemini(fakeResponse{text: quizJSON(10)})
	g := NewQuestionGenerator(gemini, logger.NewNop(), testGeneratorConfig())

	g.Generate(context.Background(), model.Profile{Industry: "Web", Skills: []string{"Go", "SQL", "Kubernetes"}})

	assert.Contains(t, gemini.prompts[0], "with expertise in Go, SQL, Kubernetes.")
}

func TestGenerate_TooFewQuestionsRetried(t *testing.T) {
	gemini := newFakeGemini(
		fakeResponse{text: quizJSON(4)},
		fakeResponse{text: quizJSON(10)},
	)
	g := NewQuestionGenerator(gemini, logger.NewNop(), testGeneratorConfig())

	questions := g.Generate(context.Background(), model.Profile{Industry: "Web"})

	assert.Len(t, questions, 10)
	assert.Equal(t, 2, gemini.CallCount())
}

func TestGenerate_ParseFailureRetried(t *testing.T) {
	gemini := newFakeGemini(
		fakeResponse{text: "Sorry, I cannot help with that."},
		fakeResponse{text: `{"questions": "none"}`},
		fakeResponse{text: quizJSON(10)},
	)
	g := NewQuestionGenerator(gemini, logger.NewNop(), testGeneratorConfig())

	questions := g.Generate(context.Background(), model.Profile{Industry: "Web"})

	assert.Len(t, questions, 10)
	assert.Equal(t, 3, gemini.CallCount())
}

func TestGenerate_AcceptsMinimumAndCapsAtCount(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"minimum accepted", 5, 5},
		{"exact", 10, 10},
		{"extra dropped", 13, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gemini := newFakeGemini(fakeResponse{text: quizJSON(tt.n)})
			g := NewQuestionGenerator(gemini, logger.NewNop(), testGeneratorConfig())

			questions := g.Generate(context.Background(), model.Profile{Industry: "Web"})

			assert.Len(t, questions, tt.want)
			assert.Equal(t, 1, gemini.CallCount())
		})
	}
}

func TestGenerate_AllAttemptsFailReturnsFallback(t *testing.T) {
	transport := errors.New("connection reset by peer")
	gemini := newFakeGemini(
		fakeResponse{err: transport},
		fakeResponse{err: transport},
		fakeResponse{err: transport},
		fakeResponse{text: quizJSON(10)}, // never reached
	)
	cfg := testGeneratorConfig()
	cfg.RetryDelay = 20 * time.Millisecond
	g := NewQuestionGenerator(gemini, logger.NewNop(), cfg)

	questions := g.Generate(context.Background(), model.Profile{Industry: "Web"})

	assert.Equal(t, FallbackQuestions(), questions)
	require.Equal(t, 3, gemini.CallCount())
	for i := 1; i < len(gemini.calledAt); i++ {
		assert.GreaterOrEqual(t, gemini.calledAt[i].Sub(gemini.calledAt[i-1]), cfg.RetryDelay)
	}
}

func TestGenerate_CancelledDuringWaitReturnsFallback(t *testing.T) {
	gemini := newFakeGemini(
		fakeResponse{err: errors.New("quota exceeded")},
		fakeResponse{text: quizJSON(10)},
	)
	cfg := testGeneratorConfig()
	cfg.RetryDelay = time.Hour
	g := NewQuestionGenerator(gemini, logger.NewNop(), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	questions := g.Generate(ctx, model.Profile{Industry: "Web"})

	assert.Equal(t, FallbackQuestions(), questions)
	assert.Equal(t, 1, gemini.CallCount())
	assert.Less(t, time.Since(start), time.Minute)
}

func TestNewQuestionGenerator_Defaults(t *testing.T) {
	g := NewQuestionGenerator(newFakeGemini(), logger.NewNop(), GeneratorConfig{})
	assert.Equal(t, DefaultGeneratorConfig(), g.config)

	g = NewQuestionGenerator(newFakeGemini(), logger.NewNop(), GeneratorConfig{RetryDelay: -time.Second})
	assert.Equal(t, 2*time.Second, g.config.RetryDelay)
}

func TestGenerate_LogsWhetherFailureIsRetryable(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	gemini := newFakeGemini(
		fakeResponse{err: &service.APIError{Code: 401, Retryable: false, Err: errors.New("bad key")}},
		fakeResponse{err: &service.APIError{Code: 503, Retryable: true, Err: errors.New("unavailable")}},
		fakeResponse{text: quizJSON(10)},
	)
	g := NewQuestionGenerator(gemini, log, testGeneratorConfig())

	questions := g.Generate(context.Background(), model.Profile{Industry: "Web"})
	require.Len(t, questions, 10)

	attempts := logs.FilterMessage("quiz generation attempt failed").All()
	require.Len(t, attempts, 2)
	assert.Equal(t, false, attempts[0].ContextMap()["retryable"])
	assert.Equal(t, true, attempts[1].ContextMap()["retryable"])
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(errors.New("connection reset by peer")))
	assert.True(t, retryable(fmt.Errorf("%w: bad shape", ErrGenerationInvalid)))
	assert.True(t, retryable(&service.APIError{Code: 429, Retryable: true}))
	assert.False(t, retryable(fmt.Errorf("call: %w", &service.APIError{Code: 400})))
}

func TestParseQuiz(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantLen int
		wantErr string
	}{
		{"fenced", "```json\n" + quizJSON(6) + "\n```", 6, ""},
		{"unfenced", quizJSON(7), 7, ""},
		{"not json", "here are your questions", 0, "not valid JSON"},
		{"top-level array", `[{"question":"q"}]`, 0, "missing questions array"},
		{"questions not array", `{"questions":{}}`, 0, "missing questions array"},
		{"too few", quizJSON(2), 0, "got 2 questions"},
		{
			"three options",
			`{"questions":[` + strings.Repeat(`{"question":"q","options":["a","b","c"],"correctAnswer":"a","explanation":"e"},`, 4) +
				`{"question":"q","options":["a","b","c"],"correctAnswer":"a","explanation":"e"}]}`,
			0, "generated quiz invalid",
		},
		{
			"missing explanation",
			`{"questions":[` + strings.Repeat(`{"question":"q","options":["a","b","c","d"],"correctAnswer":"a"},`, 4) +
				`{"question":"q","options":["a","b","c","d"],"correctAnswer":"a"}]}`,
			0, "generated quiz invalid",
		},
		{
			"answer not an option",
			`{"questions":[` + strings.Repeat(`{"question":"q","options":["a","b","c","d"],"correctAnswer":"a","explanation":"e"},`, 4) +
				`{"question":"q","options":["a","b","c","d"],"correctAnswer":"z","explanation":"e"}]}`,
			0, "question 5 correct answer is not one of its options",
		},
		{
			"malformed entry past the cap is ignored",
			`{"questions":[` + strings.Repeat(`{"question":"q","options":["a","b","c","d"],"correctAnswer":"a","explanation":"e"},`, 10) +
				`{"question":"q","options":["a"],"correctAnswer":"z"}]}`,
			10, "",
		},
		{
			"malformed entry inside the cap is rejected",
			`{"questions":[` + strings.Repeat(`{"question":"q","options":["a","b","c","d"],"correctAnswer":"a","explanation":"e"},`, 9) +
				`{"question":"q","options":["a"],"correctAnswer":"z"},` +
				`{"question":"q","options":["a","b","c","d"],"correctAnswer":"a","explanation":"e"}]}`,
			0, "generated quiz invalid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuiz(tt.text, 5, 10)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrGenerationInvalid)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestFallbackQuestions(t *testing.T) {
	questions := FallbackQuestions()

	require.Len(t, questions, 10)
	assert.Equal(t, "What does AI stand for?", questions[0].Question)
	for _, q := range questions {
		assert.Len(t, q.Options, 4)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}

	// Callers get their own copy.
	questions[0].Options[0] = "mutated"
	assert.Equal(t, "Artificial Intelligence", FallbackQuestions()[0].Options[0])
}
