package handler

import (
	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

func (h *JobHandler) List(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 20)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.ListPublic(c.Context(), usecase.JobListParams{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
		Type:     c.Query("job_type"),
		Category: c.Query("job_category"),
		Skill:    c.Query("skill"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.uc.GetPublic(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.Create(c.Context(), recruiterID, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "job submitted for approval", p)
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.Update(c.Context(), recruiterID, id, req.ToInput())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *JobHandler) SetStatus(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.JobStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	if err := h.uc.SetStatus(c.Context(), recruiterID, id, req.Status); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"id": id, "status": req.Status})
}

func (h *JobHandler) Delete(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), recruiterID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job deleted", nil)
}

func (h *JobHandler) ListMine(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListMine(c.Context(), recruiterID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *JobHandler) Save(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Save(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job saved", nil)
}

func (h *JobHandler) Unsave(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Unsave(c.Context(), userID, id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "job removed from saved", nil)
}

func (h *JobHandler) ListSaved(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListSaved(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
