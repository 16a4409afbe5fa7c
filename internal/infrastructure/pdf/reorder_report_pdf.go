// Package pdf genera la hoja de compra del reporte de reposición.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  RESUMEN: SKUs a reponer / urgentes / costo estimado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Proveedor | Stock | Reorden | Sugerido |       │
//	│         Costo est. | Prioridad                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ESTIMADO                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

var _ inventory.ReorderReportRenderer = (*ReorderReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorUrgent  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ReorderReportGenerator implementa inventory.ReorderReportRenderer usando Maroto v2.
type ReorderReportGenerator struct {
	company string
}

// NewReorderReportGenerator construye el generador; company aparece como autor y en el encabezado.
func NewReorderReportGenerator(company string) *ReorderReportGenerator {
	return &ReorderReportGenerator{company: company}
}

// RenderReorderReport genera el PDF y devuelve sus bytes.
func (g *ReorderReportGenerator) RenderReorderReport(_ context.Context, report *dto.ReorderReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de reposición", true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Ningún SKU está en o bajo su punto de reorden.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(report.Summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de reposición: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReorderReportGenerator) headerRow(report *dto.ReorderReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE REPOSICIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(g.company, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(s dto.ReorderSummaryDTO) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("SKUs a reponer", strconv.Itoa(s.TotalItems)),
		cell("Urgentes (sin stock)", strconv.Itoa(s.UrgentItems)),
		cell("Costo estimado", "$"+formatMoney(s.TotalEstimatedCost)),
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
		h("SKU", 2, align.Left),
		h("Proveedor", 3, align.Left),
		h("Stock", 1, align.Right),
		h("Reorden", 1, align.Right),
		h("Sugerido", 1, align.Right),
		h("Costo est.", 2, align.Right),
		h("Prioridad", 2, align.Center),
	)
}

func tableDetailRows(items []dto.ReorderItemDTO) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		priority := props.Text{Size: 8, Align: align.Center, Top: 1}
		label := "Normal"
		if it.Priority == "urgent" {
			priority.Style = fontstyle.Bold
			priority.Color = colorUrgent
			label = "URGENTE"
		}
		num := func(n int64) core.Component {
			return text.New(strconv.FormatInt(n, 10), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(it.Supplier, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(num(it.CurrentStock)),
			col.New(1).Add(num(it.ReorderPoint)),
			col.New(1).Add(num(it.SuggestedOrderQty)),
			col.New(2).Add(text.New("$"+formatMoney(it.EstimatedCost), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(label, priority)),
		))
	}
	return result
}

func totalRow(s dto.ReorderSummaryDTO) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL ESTIMADO:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(s.TotalEstimatedCost), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// formatMoney formatea con puntos de miles y coma decimal, siempre con 2 decimales.
// Ej: 25000 → "25.000,00", 1234567.891 → "1.234.567,89"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac
}
