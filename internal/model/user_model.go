package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the local record of an identity-provider account. ExternalID is
// the id the identity provider issues.
type User struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID string                      `gorm:"type:varchar(255);uniqueIndex;not null" json:"external_id"`
	Industry   string                      `gorm:"type:varchar(255)" json:"industry"`
	Skills     datatypes.JSONSlice[string] `json:"skills"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) Profile() Profile {
	return Profile{
		Industry: u.Industry,
		Skills:   append([]string(nil), u.Skills...),
	}
}

// Profile holds the attributes used to tailor generated questions.
type Profile struct {
	Industry string   `json:"industry"`
	Skills   []string `json:"skills"`
}
