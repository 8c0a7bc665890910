package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/application/usecase"
)

// TransactionHandler handles the financial ledger.
type TransactionHandler struct {
	uc *usecase.LedgerUseCase
}

func NewTransactionHandler(uc *usecase.LedgerUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create POST /api/transactions (manual ledger entry)
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if !parseBody(c, &in) {
		return nil
	}
	tx, err := h.uc.Append(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tx)
}

// List GET /api/transactions
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Summary GET /api/transactions/summary?month=8&year=2026
//
// Month and year default to the current period when omitted.
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	month, _ := strconv.Atoi(c.Query("month", "0"))
	year, _ := strconv.Atoi(c.Query("year", "0"))
	out, err := h.uc.Summary(c.Context(), month, year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
