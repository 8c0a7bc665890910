package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/application/usecase"
)

// RentalHandler handles the rental lifecycle.
type RentalHandler struct {
	uc *usecase.RentalUseCase
}

func NewRentalHandler(uc *usecase.RentalUseCase) *RentalHandler {
	return &RentalHandler{uc: uc}
}

// Open POST /api/rentals
func (h *RentalHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenRentalRequest
	if !parseBody(c, &in) {
		return nil
	}
	rental, err := h.uc.Open(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rental)
}

// End POST /api/rentals/:id/end
func (h *RentalHandler) End(c *fiber.Ctx) error {
	rental, err := h.uc.End(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rental)
}

// List GET /api/rentals
func (h *RentalHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/rentals/:id
func (h *RentalHandler) GetByID(c *fiber.Ctx) error {
	rental, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rental)
}
