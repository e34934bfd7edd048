package handler

import (
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Patch("/:id/read", h.MarkRead)
	r.Delete("/:id", h.Delete)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.MarkRead(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *NotificationHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "notification deleted", nil)
}
