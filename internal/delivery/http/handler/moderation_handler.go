package handler

import (
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ModerationHandler struct {
	uc usecase.ModerationUsecase
}

func NewModerationHandler(uc usecase.ModerationUsecase) *ModerationHandler {
	return &ModerationHandler{uc: uc}
}

func (h *ModerationHandler) ListPending(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}
	items, err := h.uc.ListPending(c.Context(), limit, offset)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ModerationHandler) Approve(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.Approve(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job approved", p)
}

func (h *ModerationHandler) Reject(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Reject(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job rejected", nil)
}
