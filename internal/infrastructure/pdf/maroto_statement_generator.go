// Package pdf implementa la generación del estado de cuenta de fiado de un
// cliente usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + teléfono  │  "ESTADO DE CUENTA" + fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + teléfono + score/riesgo                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Monto | Vence | Estado | Pagado              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: total fiado / saldo pendiente                      │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreta-api/internal/application/statement"
	"github.com/jhoicas/libreta-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 57}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa statement.PDFGenerator usando Maroto v2.
type MarotoStatementGenerator struct{}

var _ statement.PDFGenerator = (*MarotoStatementGenerator)(nil)

// NewMarotoStatementGenerator construye el generador.
func NewMarotoStatementGenerator() *MarotoStatementGenerator { return &MarotoStatementGenerator{} }

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatementPDF(
	_ context.Context,
	shop *entity.Shop,
	customer *entity.Customer,
	borrowings []*entity.Borrowing,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Cuenta de Fiado", true).
		WithAuthor(shop.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(shop, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(borrowings) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(customer, borrowings))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y título + fecha de emisión (der).
func headerRow(shop *entity.Shop, generatedAt time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(shop.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tel: "+nonEmpty(shop.OwnerPhone, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA DE FIADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+generatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del cliente y su clasificación de riesgo.
func customerRow(customer *entity.Customer) core.Row {
	risk := fmt.Sprintf("Score: %d (%s)", customer.TrustScore, customer.RiskTier)
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   %s", nonEmpty(customer.Phone, "—"), risk),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de fiados.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Monto", 3, align.Right),
		h("Vence", 2, align.Center),
		h("Estado", 2, align.Center),
		h("Pagado", 3, align.Right),
	)
}

// tableDetailRows: una fila por fiado del historial.
func tableDetailRows(borrowings []*entity.Borrowing) []core.Row {
	result := make([]core.Row, 0, len(borrowings))
	for _, b := range borrowings {
		due := "—"
		if b.DueDate != nil {
			due = b.DueDate.Format("02/01/2006")
		}
		paid := "—"
		if b.PaidAt != nil {
			paid = b.PaidAt.Format("02/01/2006")
		}
		statusColor := colorGray
		if b.Status == entity.BorrowingStatusOverdue {
			statusColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				b.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				"$"+b.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				due,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				b.Status,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: statusColor},
			)),
			col.New(3).Add(text.New(
				paid,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: total histórico fiado y saldo pendiente actual.
func totalsRow(customer *entity.Customer, borrowings []*entity.Borrowing) core.Row {
	var totalBorrowed decimal.Decimal
	for _, b := range borrowings {
		totalBorrowed = totalBorrowed.Add(b.Amount)
	}
	return row.New(14).Add(
		col.New(7),
		col.New(5).Add(
			text.New("Total fiado histórico: $"+totalBorrowed.StringFixed(2), props.Text{
				Size: 9, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("SALDO PENDIENTE: $"+customer.BorrowedAmount.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
