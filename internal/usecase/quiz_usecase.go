package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/dto"
	"github.com/fadilmartias/interview-quiz/internal/event"
	"github.com/fadilmartias/interview-quiz/internal/logger"
	"github.com/fadilmartias/interview-quiz/internal/model"
	"github.com/fadilmartias/interview-quiz/internal/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdentityGate interface {
	ResolveCurrentUser(ctx context.Context) (string, bool)
}

type ProfileStore interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	UpsertProfile(ctx context.Context, externalID, industry string, skills []string) (*model.User, error)
}

type AssessmentStore interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Assessment, error)
}

type QuizUsecase struct {
	identity    IdentityGate
	users       ProfileStore
	assessments AssessmentStore
	generator   *QuestionGenerator
	gemini      service.GeminiServiceInterface
	events      event.Publisher
	log         *logger.Logger
	now         func() time.Time
}

func NewQuizUsecase(
	identity IdentityGate,
	users ProfileStore,
	assessments AssessmentStore,
	generator *QuestionGenerator,
	gemini service.GeminiServiceInterface,
	events event.Publisher,
	log *logger.Logger,
) *QuizUsecase {
	if events == nil {
		events = event.NoopPublisher{}
	}
	return &QuizUsecase{
		identity:    identity,
		users:       users,
		assessments: assessments,
		generator:   generator,
		gemini:      gemini,
		events:      events,
		log:         log.With("usecase", "QuizUsecase"),
		now:         time.Now,
	}
}

func (uc *QuizUsecase) currentUser(ctx context.Context) (*model.User, error) {
	externalID, ok := uc.identity.ResolveCurrentUser(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	user, err := uc.users.FindByExternalID(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		uc.log.Error("error loading user", "user_id", externalID, "error", err)
		return nil, ErrLoadUser
	}
	return user, nil
}

// GenerateQuiz returns generated questions for the caller's profile, or the
// fallback set when generation fails.
func (uc *QuizUsecase) GenerateQuiz(ctx context.Context) ([]dto.GeneratedQuestion, error) {
	user, err := uc.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(ctx, user.Profile()), nil
}

func (uc *QuizUsecase) SaveQuizResult(ctx context.Context, questions []dto.GeneratedQuestion, answers []string, score float64) (*model.Assessment, error) {
	user, err := uc.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 || len(questions) != len(answers) {
		return nil, ErrInvalidSubmission
	}

	results := ScoreAnswers(questions, answers)

	var wrong []model.QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, r)
		}
	}

	var tip *string
	if len(wrong) > 0 {
		tip = uc.improvementTip(ctx, user.Industry, wrong)
	}

	assessment := &model.Assessment{
		UserID:         user.ID,
		QuizScore:      score,
		Questions:      results,
		Category:       model.CategoryTechnical,
		ImprovementTip: tip,
		CreatedAt:      uc.now(),
	}
	if err := uc.assessments.Create(ctx, assessment); err != nil {
		uc.log.Error("error saving quiz result", "user_id", user.ExternalID, "error", err)
		return nil, ErrSaveQuizResult
	}

	if err := uc.events.Publish(ctx, event.AssessmentCreated, dto.NewAssessmentDTO(assessment)); err != nil {
		uc.log.Warn("error publishing assessment event", "assessment_id", assessment.ID, "error", err)
	}
	return assessment, nil
}

// ScoreAnswers pairs each question with the answer at the same index.
// Comparison is exact and case-sensitive.
func ScoreAnswers(questions []dto.GeneratedQuestion, answers []string) []model.QuestionResult {
	results := make([]model.QuestionResult, len(questions))
	for i, q := range questions {
		var userAnswer string
		if i < len(answers) {
			userAnswer = answers[i]
		}
		results[i] = model.QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  userAnswer,
			IsCorrect:   q.CorrectAnswer == userAnswer,
			Explanation: q.Explanation,
		}
	}
	return results
}

func (uc *QuizUsecase) improvementTip(ctx context.Context, industry string, wrong []model.QuestionResult) *string {
	text, err := uc.gemini.GenerateText(ctx, buildImprovementPrompt(industry, wrong))
	if err != nil {
		uc.log.Warn("error generating improvement tip", "error", err)
		return nil
	}
	tip := strings.TrimSpace(text)
	if tip == "" {
		return nil
	}
	return &tip
}

// GetAssessments returns the caller's assessments, oldest first.
func (uc *QuizUsecase) GetAssessments(ctx context.Context) ([]model.Assessment, error) {
	user, err := uc.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	assessments, err := uc.assessments.FindByUser(ctx, user.ID)
	if err != nil {
		uc.log.Error("error fetching assessments", "user_id", user.ExternalID, "error", err)
		return nil, ErrFetchAssessments
	}
	return assessments, nil
}

// UpdateProfile sets the caller's industry and skills, creating the user
// record on first use.
func (uc *QuizUsecase) UpdateProfile(ctx context.Context, industry string, skills []string) (*model.User, error) {
	externalID, ok := uc.identity.ResolveCurrentUser(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return nil, ErrInvalidProfile
	}
	cleaned := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	user, err := uc.users.UpsertProfile(ctx, externalID, industry, cleaned)
	if err != nil {
		uc.log.Error("error updating profile", "user_id", externalID, "error", err)
		return nil, ErrUpdateProfile
	}
	return user, nil
}
