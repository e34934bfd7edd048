package handler

import (
	"strings"

	"jobboard/internal/delivery/http/dto"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Apply accepts JSON, or multipart form data with an optional "resume" file.
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	in := usecase.SubmitInput{JobID: jobID, UserID: userID}

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		in.CoverLetter = c.FormValue("cover_letter")
		in.ResumeAnalysis = c.FormValue("resume_analysis")
		if fh, ferr := c.FormFile("resume"); ferr == nil {
			f, err := fh.Open()
			if err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Invalid resume upload", nil, err)
			}
			defer f.Close()
			in.Resume = &usecase.Upload{Filename: fh.Filename, Content: f}
		}
	} else if len(c.Body()) > 0 {
		var req dto.ApplyRequest
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
		}
		in.CoverLetter = req.CoverLetter
		in.ResumeAnalysis = req.ResumeAnalysis
	}

	a, err := h.uc.Submit(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "application submitted", a)
}

func (h *ApplicationHandler) ListApplicants(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	jobID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.uc.ListApplicants(c.Context(), recruiterID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *ApplicationHandler) Respond(c fiber.Ctx) error {
	recruiterID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RespondRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	a, err := h.uc.Respond(c.Context(), usecase.RespondInput{
		ApplicationID: id,
		RecruiterID:   recruiterID,
		Status:        req.Status,
		Message:       req.Message,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, a)
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
