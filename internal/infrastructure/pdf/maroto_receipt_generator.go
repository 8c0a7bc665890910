// Package pdf renders payment receipts for settled bills.
//
// A5 landscape layout:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Kos name        │  Receipt no + date │
//	│  ─────────────────────────────────────────── │
//	│  TENANT: name + room                          │
//	│  ─────────────────────────────────────────── │
//	│  TABLE: Description | Period | Amount         │
//	│  ─────────────────────────────────────────── │
//	│  TOTAL PAID + payment method                  │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kosman/kosman-api/internal/application/usecase"
	"github.com/kosman/kosman-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 13, Green: 92, Blue: 66}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// rupiah groups thousands with Indonesian separators: 1500000 -> "1.500.000".
var rupiah = message.NewPrinter(language.Indonesian)

var _ usecase.ReceiptGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implements usecase.ReceiptGenerator using Maroto v2.
type MarotoReceiptGenerator struct {
	houseName string
}

// NewMarotoReceiptGenerator builds the generator. houseName is printed in
// the receipt header.
func NewMarotoReceiptGenerator(houseName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{houseName: houseName}
}

// GenerateReceiptPDF renders the receipt and returns its bytes. The bill is
// expected to be paid already.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(
	_ context.Context,
	bill *entity.Bill,
	rental *entity.Rental,
	tenant *entity.Tenant,
	room *entity.Room,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Payment Receipt", true).
		WithAuthor(g.houseName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.houseName, bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tenantRow(tenant, room))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(bill))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(bill))
	m.AddRows(footerRow(rental))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: house name (left), receipt number and payment date (right).
func headerRow(houseName string, bill *entity.Bill) core.Row {
	paidAt := "-"
	if bill.PaidAt != nil {
		paidAt = bill.PaidAt.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(houseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Payment receipt", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECEIPT", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(bill.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Paid: "+paidAt, props.Text{
				Size: 8, Align: align.Right, Top: 12,
			}),
		),
	)
}

// tenantRow: payer and room.
func tenantRow(tenant *entity.Tenant, room *entity.Room) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEIVED FROM", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Room %s   |   Phone: %s",
				room.Number,
				nonEmpty(tenant.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Period", 3, align.Center),
		h("Amount", 3, align.Right),
	)
}

func tableDetailRow(bill *entity.Bill) core.Row {
	description := "Monthly rent"
	if bill.Kind == entity.BillKindExtra {
		description = nonEmpty(bill.Note, "Additional charge")
	}
	period := fmt.Sprintf("%s %d", time.Month(bill.Month), bill.Year)

	return row.New(7).Add(
		col.New(6).Add(text.New(
			description,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			period,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			formatRupiah(bill.Amount),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

func totalRow(bill *entity.Bill) core.Row {
	method := "cash"
	if bill.PaymentMethod == entity.PaymentNonCash {
		method = "transfer"
	}
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Payment method: "+method, props.Text{
				Size: 8, Top: 4, Color: colorGray,
			}),
		),
		col.New(3).Add(
			text.New("TOTAL PAID:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 2,
			}),
		),
		col.New(3).Add(
			text.New(formatRupiah(bill.Amount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 3, Right: 1,
			}),
		),
	)
}

func footerRow(rental *entity.Rental) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Rental reference: %s. Keep this receipt as proof of payment.", rental.ID),
			props.Text{Size: 6.5, Color: colorGray, Top: 3},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatRupiah renders a whole rupiah amount: 1500000 -> "Rp 1.500.000".
func formatRupiah(amount decimal.Decimal) string {
	return rupiah.Sprintf("Rp %d", amount.IntPart())
}
