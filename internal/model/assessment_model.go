package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const CategoryTechnical = "Technical"

type Assessment struct {
	ID             uuid.UUID                           `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                           `gorm:"type:uuid;index;not null" json:"user_id"`
	QuizScore      float64                             `gorm:"type:float" json:"quiz_score"`
	Questions      datatypes.JSONSlice[QuestionResult] `json:"questions"`
	Category       string                              `gorm:"type:varchar(50)" json:"category"`
	ImprovementTip *string                             `gorm:"type:text" json:"improvement_tip"`
	CreatedAt      time.Time                           `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time                           `json:"updated_at"`
}

func (a *Assessment) TableName() string {
	return "assessments"
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// QuestionResult is one scored question inside an Assessment.
type QuestionResult struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	UserAnswer  string `json:"userAnswer"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}
