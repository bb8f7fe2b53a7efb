package handler

import (
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

func (h *ApplicationHandler) HandleApply(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	a, err := h.uc.Apply(c.Context(), identity, c.Params("id"))
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Payload(c, fiber.StatusCreated, a)
}

func (h *ApplicationHandler) HandleListMine(c fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	apps, err := h.uc.ListMine(c.Context(), identity)
	if err != nil {
		return mapJobUsecaseError(err)
	}
	return response.Payload(c, fiber.StatusOK, apps)
}
