package http

import (
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/kosman/kosman-api/internal/application/dto"
	"github.com/kosman/kosman-api/internal/application/usecase"
)

// 5 MB cap on payment proof uploads.
const maxProofSize = 5 << 20

// BillHandler handles bill generation, settlement, proofs and receipts.
type BillHandler struct {
	billing *usecase.BillingUseCase
	receipt *usecase.ReceiptUseCase
}

func NewBillHandler(billing *usecase.BillingUseCase, receipt *usecase.ReceiptUseCase) *BillHandler {
	return &BillHandler{billing: billing, receipt: receipt}
}

// Create POST /api/bills
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if !parseBody(c, &in) {
		return nil
	}
	bill, err := h.billing.GeneratePeriodBill(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bill)
}

// GenerateMonthly POST /api/bills/generate
//
// Creates the current-period rent bill for every active rental, skipping
// periods already billed. Safe to call repeatedly.
func (h *BillHandler) GenerateMonthly(c *fiber.Ctx) error {
	out, err := h.billing.GenerateMonthlyRentBills(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/bills?rental_id=...&status=...
func (h *BillHandler) List(c *fiber.Ctx) error {
	list, err := h.billing.List(c.Context(), c.Query("rental_id"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/bills/:id
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	bill, err := h.billing.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bill)
}

// Pay POST /api/bills/:id/pay
func (h *BillHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayBillRequest
	if !parseBody(c, &in) {
		return nil
	}
	bill, err := h.billing.MarkPaid(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bill)
}

// AttachProof POST /api/bills/:id/proof (multipart, field "proof")
func (h *BillHandler) AttachProof(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("proof")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "multipart field 'proof' required"})
	}
	if fileHeader.Size > maxProofSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proof file too large"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, err)
	}
	bill, err := h.billing.AttachProof(c.Context(), c.Params("id"), data, filepath.Ext(fileHeader.Filename))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bill)
}

// Receipt GET /api/bills/:id/receipt
func (h *BillHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.GetReceiptPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="receipt-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
