// Package pdf genera el reporte de existencias en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título               │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Categoría | Cant. | Mín. | P.Unit | Valor   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Registros / Bajo mínimo / VALOR TOTAL              │
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/domain/entity"
	"github.com/jhoicas/inventario-ai/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 40, Blue: 40}
)

var _ ports.StockReportRenderer = (*StockReportGenerator)(nil)

// StockReportGenerator implementa ports.StockReportRenderer usando Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator {
	return &StockReportGenerator{}
}

// RenderStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) RenderStockReport(_ context.Context, report ports.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)
	amount := moneyFunc(report.CurrencySymbol)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(report.Items) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Inventory is empty.", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range itemRows(report.Items, amount) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report, amount))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report ports.StockReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Generated: "+report.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Item", 3, align.Left),
		h("Category", 2, align.Left),
		h("Qty", 1, align.Center),
		h("Min", 1, align.Center),
		h("Unit price", 2, align.Right),
		h("Value", 3, align.Right),
	)
}

// itemRows una fila por registro; los que están bajo el mínimo van en rojo.
func itemRows(items []*entity.Item, amount func(decimal.Decimal) string) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		var c *props.Color
		if it.IsLowStock() {
			c = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: c}))
		}
		out = append(out, row.New(6).Add(
			cell(latin1(it.Name), 3, align.Left),
			cell(latin1(it.Category), 2, align.Left),
			cell(fmt.Sprint(it.Quantity), 1, align.Center),
			cell(fmt.Sprint(it.ReorderThreshold), 1, align.Center),
			cell(amount(it.UnitPrice), 2, align.Right),
			cell(amount(it.StockValue()), 3, align.Right),
		))
	}
	return out
}

func totalsRow(report ports.StockReport, amount func(decimal.Decimal) string) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Records:"),
			label("Below minimum:"),
			text.New("TOTAL VALUE:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10}),
		),
		col.New(3).Add(
			value(fmt.Sprint(len(report.Items))),
			text.New(fmt.Sprint(report.LowStockCount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(amount(report.TotalValue), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// moneyFunc las fuentes base del PDF solo cubren Latin-1; ₹ se escribe "Rs.".
func moneyFunc(symbol string) func(decimal.Decimal) string {
	switch {
	case symbol == "₹":
		symbol = "Rs."
	case latin1(symbol) != symbol:
		symbol = ""
	}
	return func(d decimal.Decimal) string {
		return money.Format(symbol, d)
	}
}

// latin1 reemplaza por '?' los caracteres que la fuente base no puede dibujar.
func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
}
