package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/application/usecase"
)

// MaintenanceHandler handles maintenance tickets.
type MaintenanceHandler struct {
	uc *usecase.MaintenanceUseCase
}

func NewMaintenanceHandler(uc *usecase.MaintenanceUseCase) *MaintenanceHandler {
	return &MaintenanceHandler{uc: uc}
}

// Create POST /api/maintenance
func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaintenanceRequest
	if !parseBody(c, &in) {
		return nil
	}
	ticket, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

// List GET /api/maintenance
func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/maintenance/:id
func (h *MaintenanceHandler) GetByID(c *fiber.Ctx) error {
	ticket, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ticket)
}

// Update PUT /api/maintenance/:id
func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaintenanceRequest
	if !parseBody(c, &in) {
		return nil
	}
	ticket, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ticket)
}
