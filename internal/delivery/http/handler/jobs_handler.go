package handler

import (
	"errors"
	"strconv"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
	"jobboard/internal/pkg/response"
	"jobboard/internal/search"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes mounts the public reads on r and the writes behind requireSession.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, requireSession fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleListJobs)
	r.Get("/recent", h.HandleRecentJobs)
	r.Get("/:id", h.HandleGetJob)
	r.Post("/", requireSession, h.HandleCreateJob)
}

// HandleListJobs answers with the bare array of matching jobs, newest first.
func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	items, err := h.uc.ListJobs(c.Context(), search.Filter{
		Keyword:  c.Query("q"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
	})
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Payload(c, fiber.StatusOK, items)
}

func (h *JobsHandler) HandleRecentJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", usecase.DefaultRecentJobs)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "limit must be an integer", nil, err)
	}

	items, err := h.uc.RecentJobs(c.Context(), limit)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Payload(c, fiber.StatusOK, items)
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	j, err := h.uc.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Payload(c, fiber.StatusOK, j)
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var in usecase.CreateJobInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageInvalidBody, nil, err)
	}

	created, err := h.uc.CreateJob(c.Context(), identity, in)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Payload(c, fiber.StatusOK, created)
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func mapJobUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageValidationFailed, response.FieldErrors(verr.Fields), err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, job.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, application.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "Already applied to this job", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
