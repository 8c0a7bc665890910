package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/application/usecase"
)

// RoomHandler handles room CRUD and occupancy overrides.
type RoomHandler struct {
	uc *usecase.RoomUseCase
}

func NewRoomHandler(uc *usecase.RoomUseCase) *RoomHandler {
	return &RoomHandler{uc: uc}
}

// Create POST /api/rooms
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoomRequest
	if !parseBody(c, &in) {
		return nil
	}
	room, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}

// List GET /api/rooms
func (h *RoomHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/rooms/:id
func (h *RoomHandler) GetByID(c *fiber.Ctx) error {
	room, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

// Update PUT /api/rooms/:id
func (h *RoomHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRoomRequest
	if !parseBody(c, &in) {
		return nil
	}
	room, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(room)
}

// Delete DELETE /api/rooms/:id
func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "room deleted"})
}

// SetOccupied POST /api/rooms/:id/occupy
func (h *RoomHandler) SetOccupied(c *fiber.Ctx) error {
	if err := h.uc.SetOccupied(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "room marked occupied"})
}

// SetVacant POST /api/rooms/:id/vacate
func (h *RoomHandler) SetVacant(c *fiber.Ctx) error {
	if err := h.uc.SetVacant(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "room marked vacant"})
}
