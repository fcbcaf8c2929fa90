package repository

import (
	"github.com/fadilmartias/interview-quiz/internal/model"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Assessment{})
}
