package repository

import (
	"context"

	"github.com/fadilmartias/interview-quiz/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db}
}

func (r *AssessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return r.db.WithContext(ctx).Create(assessment).Error
}

// FindByUser returns every assessment owned by userID, oldest first.
func (r *AssessmentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&assessments).Error
	return assessments, err
}
