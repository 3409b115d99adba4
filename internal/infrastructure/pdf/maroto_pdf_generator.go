// Package pdf genera el reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título de la app    │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Items / Agotados / Costo / Valor / Margen          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Unidad | Stock | Costo prom. | Venta      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  STOCK POR UNIDAD                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/stock-tracker/internal/application/analytics"
	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/pkg/numfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ analytics.InventoryReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa analytics.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	nf *numfmt.Formatter
}

// NewMarotoReportGenerator construye el generador. nf define el formato de números (locale).
func NewMarotoReportGenerator(nf *numfmt.Formatter) *MarotoReportGenerator {
	if nf == nil {
		nf = numfmt.New(numfmt.DefaultLocale)
	}
	return &MarotoReportGenerator{nf: nf}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(_ context.Context, report analytics.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(report.Title+" - Reporte de inventario", true).
		WithAuthor(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.summaryRow(report.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.tableItemRows(report.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.stockByUnitRows(report.Summary.StockByUnit)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(report analytics.InventoryReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(report.Title, "Inventario"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("REPORTE DE INVENTARIO", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(report.GeneratedAt.Format("02/01/2006 15:04 MST"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: indicadores agregados del inventario.
func (g *MarotoReportGenerator) summaryRow(s dto.DashboardSummaryDTO) core.Row {
	kpi := func(label, value string, color *props.Color) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Align: align.Center, Color: color}),
		)
	}
	outColor := colorPrimary
	if s.OutOfStockCount > 0 {
		outColor = colorAlert
	}
	return row.New(14).Add(
		kpi("Items", fmt.Sprintf("%d", s.ItemCount), colorPrimary),
		kpi("Agotados", fmt.Sprintf("%d", s.OutOfStockCount), outColor),
		kpi("Costo total", "$"+g.nf.Money(s.InventoryCost), colorPrimary),
		kpi("Valor de venta", "$"+g.nf.Money(s.InventoryValue), colorPrimary),
		kpi("Margen potencial", "$"+g.nf.Money(s.PotentialMargin), colorPrimary),
		col.New(2),
	)
}

// tableHeaderRow: cabecera de la tabla de items.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Unidad", 2, align.Center),
		h("Stock", 2, align.Right),
		h("Costo prom.", 2, align.Right),
		h("Valor venta", 2, align.Right),
	)
}

// tableItemRows: una fila por item; un inventario vacío deja una fila informativa.
func (g *MarotoReportGenerator) tableItemRows(items []*entity.Item) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("No hay items registrados.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		))}
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		stockColor := &props.Color{}
		if it.StockQuantity.IsZero() {
			stockColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(it.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(unitLabel(it.UnitOfMeasure), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(
				g.nf.Quantity(it.StockQuantity, it.UnitOfMeasure.IsDiscrete()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: stockColor},
			)),
			col.New(2).Add(text.New("$"+g.nf.Money(it.AverageCost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+g.nf.Money(it.SaleValue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// stockByUnitRows: totales de stock agrupados por unidad de medida.
func (g *MarotoReportGenerator) stockByUnitRows(groups []dto.UnitStockDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("STOCK POR UNIDAD DE MEDIDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, gr := range groups {
		unit := entity.UnitOfMeasure(gr.UnitOfMeasure)
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(unitLabel(unit), props.Text{Size: 8, Left: 2, Top: 0.5})),
			col.New(4).Add(text.New(fmt.Sprintf("%d items", gr.Items), props.Text{Size: 8, Color: colorGray, Top: 0.5})),
			col.New(4).Add(text.New(
				g.nf.Quantity(gr.Quantity, unit.IsDiscrete()),
				props.Text{Size: 8, Align: align.Right, Right: 1, Top: 0.5},
			)),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

var unitLabels = map[entity.UnitOfMeasure]string{
	entity.UnitLiter:      "Litro",
	entity.UnitMeter:      "Metro",
	entity.UnitKilogram:   "Kilogramo",
	entity.UnitCubicMeter: "Metro cúbico",
	entity.UnitCount:      "Unidad",
}

func unitLabel(u entity.UnitOfMeasure) string {
	return nonEmpty(unitLabels[u], string(u))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
