package usecase

import "errors"

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidSubmission = errors.New("answers must match questions one to one")
	ErrInvalidProfile    = errors.New("industry is required")

	// Returned in place of store errors so storage details are never exposed.
	ErrLoadUser         = errors.New("failed to load user")
	ErrSaveQuizResult   = errors.New("failed to save quiz result")
	ErrFetchAssessments = errors.New("failed to fetch assessments")
	ErrUpdateProfile    = errors.New("failed to update profile")
)
