package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/interview-quiz/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}

// FindByExternalID returns gorm.ErrRecordNotFound when no user is linked to
// the identity-provider id.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "external_id = ?", externalID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertProfile(ctx context.Context, externalID, industry string, skills []string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&user, "external_id = ?", externalID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = model.User{ExternalID: externalID}
		case err != nil:
			return err
		}
		user.Industry = industry
		user.Skills = datatypes.NewJSONSlice(skills)
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
