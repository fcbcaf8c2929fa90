package dto

import (
	"time"

	"github.com/fadilmartias/interview-quiz/internal/model"
	"github.com/google/uuid"
)

// GeneratedQuestion is a multiple-choice question as produced by the model
// and echoed back by the client on submission.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type GenerateQuizResponse struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type SaveQuizResultRequest struct {
	Questions []GeneratedQuestion `json:"questions"`
	Answers   []string            `json:"answers"`
	Score     float64             `json:"score"`
}

type UpdateProfileRequest struct {
	Industry string   `json:"industry"`
	Skills   []string `json:"skills"`
}

type AssessmentDTO struct {
	ID             uuid.UUID              `json:"id"`
	QuizScore      float64                `json:"quiz_score"`
	Questions      []model.QuestionResult `json:"questions"`
	Category       string                 `json:"category"`
	ImprovementTip *string                `json:"improvement_tip"`
	CreatedAt      time.Time              `json:"created_at"`
}

func NewAssessmentDTO(a *model.Assessment) AssessmentDTO {
	return AssessmentDTO{
		ID:             a.ID,
		QuizScore:      a.QuizScore,
		Questions:      a.Questions,
		Category:       a.Category,
		ImprovementTip: a.ImprovementTip,
		CreatedAt:      a.CreatedAt,
	}
}
