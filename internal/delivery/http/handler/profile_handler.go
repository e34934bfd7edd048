package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)
	r.Post("/me/resume", h.UploadResume)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	usr, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, usr)
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	if req.FullName == nil && req.CoverLetter == nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, nil)
	}

	usr, err := h.uc.UpdateProfile(c.Context(), userID, usecase.ProfileInput{
		FullName:    req.FullName,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, usr)
}

func (h *ProfileHandler) UploadResume(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("resume")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "resume file is required", nil, err)
	}
	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume upload", nil, err)
	}
	defer f.Close()

	usr, err := h.uc.UploadResume(c.Context(), userID, fh.Filename, f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "resume uploaded", usr)
}
