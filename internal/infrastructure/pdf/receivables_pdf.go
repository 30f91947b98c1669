// Package pdf genera el reporte de cuentas por cobrar en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cliente | Moeda | Pedidos | Mais antigo | Chegada |  │
//	│         Total guia                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: una línea por moneda                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/comex-crm/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceivablesPDFGenerator implementa analytics.ReceivablesPDFGenerator usando Maroto v2.
type ReceivablesPDFGenerator struct {
	company string
}

// NewReceivablesPDFGenerator construye el generador; company aparece en el encabezado.
func NewReceivablesPDFGenerator(company string) *ReceivablesPDFGenerator {
	return &ReceivablesPDFGenerator{company: company}
}

// GenerateReceivablesPDF genera el PDF y devuelve sus bytes.
func (g *ReceivablesPDFGenerator) GenerateReceivablesPDF(_ context.Context, report *dto.AccountsReceivableResponse) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Contas a receber", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.company, report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(report.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(report.Totals)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, report *dto.AccountsReceivableResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("CONTAS A RECEBER", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company, "Pedidos em aberto"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Pedidos pendentes e em trânsito", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Gerado em: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
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
		h("Cliente", 4, align.Left),
		h("Moeda", 1, align.Center),
		h("Pedidos", 1, align.Center),
		h("Mais antigo", 2, align.Center),
		h("Próx. chegada", 2, align.Center),
		h("Total guia", 2, align.Right),
	)
}

func tableRows(items []dto.ReceivableDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New("Nenhum pedido em aberto.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		))}
	}
	rows := make([]core.Row, 0, len(items))
	for i, it := range items {
		next := "—"
		if it.NextArrival != nil {
			next = isoToBR(*it.NextArrival)
		}
		r := row.New(7).Add(
			col.New(4).Add(text.New(it.ClientName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(it.Moeda, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.OrderCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(isoToBR(it.OldestOrder), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(next, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.Moeda, it.TotalGuia), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func totalsRows(totals []dto.CurrencyAmountDTO) []core.Row {
	rows := make([]core.Row, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(fmt.Sprintf("Total %s (%d pedidos):", t.Moeda, t.OrderCount), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(formatMoney(t.Moeda, t.Total), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// isoToBR "2024-03-15" → "15/03/2024"; cualquier otro formato se devuelve igual.
func isoToBR(s string) string {
	p := strings.Split(s, "-")
	if len(p) != 3 {
		return s
	}
	return p[2] + "/" + p[1] + "/" + p[0]
}

var currencySymbols = map[string]string{"BRL": "R$", "USD": "US$", "EUR": "€"}

// formatMoney formato brasileño con símbolo de moneda.
// Ej: ("BRL", 1234567.5) → "R$ 1.234.567,50"
func formatMoney(moeda string, v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if v.IsNegative() {
		out = "-" + out
	}
	return nonEmpty(currencySymbols[moeda], moeda) + " " + out
}
