package handler

import (
	"errors"
	"time"

	"github.com/fadilmartias/interview-quiz/internal/dto"
	"github.com/fadilmartias/interview-quiz/internal/middleware"
	"github.com/fadilmartias/interview-quiz/internal/usecase"
	"github.com/fadilmartias/interview-quiz/internal/util"
	"github.com/gofiber/fiber/v2"
)

type QuizHandler struct {
	uc *usecase.QuizUsecase
}

func NewQuizHandler(uc *usecase.QuizUsecase) *QuizHandler {
	return &QuizHandler{uc: uc}
}

func (h *QuizHandler) RegisterRoutes(router fiber.Router) {
	// Generation calls the paid model up to three times; keep it tight.
	router.Post("/quiz", middleware.RateLimiter(5, time.Minute), h.GenerateQuiz)
	router.Post("/quiz/result", h.SaveQuizResult)
	router.Get("/assessments", h.GetAssessments)
	router.Put("/profile", h.UpdateProfile)
}

func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	questions, err := h.uc.GenerateQuiz(c.UserContext())
	if err != nil {
		return h.usecaseError(c, "failed to generate quiz", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate quiz",
		Data:    dto.GenerateQuizResponse{Questions: questions},
	})
}

func (h *QuizHandler) SaveQuizResult(c *fiber.Ctx) error {
	var req dto.SaveQuizResultRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	assessment, err := h.uc.SaveQuizResult(c.UserContext(), req.Questions, req.Answers, req.Score)
	if err != nil {
		return h.usecaseError(c, "failed to save quiz result", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success save quiz result",
		Data:    dto.NewAssessmentDTO(assessment),
	})
}

func (h *QuizHandler) GetAssessments(c *fiber.Ctx) error {
	assessments, err := h.uc.GetAssessments(c.UserContext())
	if err != nil {
		return h.usecaseError(c, "failed to fetch assessments", err)
	}
	data := make([]dto.AssessmentDTO, 0, len(assessments))
	for i := range assessments {
		data = append(data, dto.NewAssessmentDTO(&assessments[i]))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assessments",
		Data:    data,
	})
}

func (h *QuizHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}

	user, err := h.uc.UpdateProfile(c.UserContext(), req.Industry, req.Skills)
	if err != nil {
		return h.usecaseError(c, "failed to update profile", err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update profile",
		Data:    user.Profile(),
	})
}

// usecaseError maps use-case errors to status codes. Only the sentinel text
// is exposed; storage causes are logged by the use case.
func (h *QuizHandler) usecaseError(c *fiber.Ctx, fallback string, err error) error {
	code := fiber.StatusInternalServerError
	message := fallback
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		code, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, usecase.ErrUserNotFound):
		code, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, usecase.ErrInvalidSubmission), errors.Is(err, usecase.ErrInvalidProfile):
		code, message = fiber.StatusBadRequest, err.Error()
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    code,
		Message: message,
	})
}
