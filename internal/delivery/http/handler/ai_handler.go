package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AIHandler struct {
	uc usecase.AIUsecase
}

func NewAIHandler(uc usecase.AIUsecase) *AIHandler {
	return &AIHandler{uc: uc}
}

func (h *AIHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/cover-letter", h.CoverLetter)
	r.Post("/resume-analysis", h.ResumeAnalysis)
}

func (h *AIHandler) CoverLetter(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.CoverLetterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.JobID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "job_id is required", nil, nil)
	}

	text, err := h.uc.CoverLetter(c.Context(), userID, req.JobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"cover_letter": text})
}

func (h *AIHandler) ResumeAnalysis(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.ResumeAnalysisRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
	}

	out, err := h.uc.AnalyzeResume(c.Context(), userID, req.JobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
