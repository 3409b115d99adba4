package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/pkg/numfmt"
)

const timeLayout = "2006-01-02 15:04:05"

// render escribe v como JSON o delega en table según --format.
func render(w io.Writer, opts *RootOptions, v any, table func() error) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return table()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeItemsTable(w io.Writer, nf *numfmt.Formatter, items []dto.ItemResponse) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tPRODUCTO\tUNIDAD\tCOSTO PROM.\tVALOR VENTA\tSTOCK")
	for _, it := range items {
		discrete := entity.UnitOfMeasure(it.UnitOfMeasure).IsDiscrete()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.ProductName, it.UnitOfMeasure,
			nf.Money(it.AverageCost), nf.Money(it.SaleValue), nf.Quantity(it.StockQuantity, discrete),
		)
	}
	return tw.Flush()
}

func writeMovementsTable(w io.Writer, nf *numfmt.Formatter, movs []dto.MovementResponse) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "FECHA\tTIPO\tCANTIDAD\tSTOCK RESULTANTE")
	for _, m := range movs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			m.Timestamp.Local().Format(timeLayout), movementLabel(m.MovementType),
			nf.Quantity(m.Quantity, false), nf.Quantity(m.ResultingStock, false),
		)
	}
	return tw.Flush()
}

func writeSummary(w io.Writer, nf *numfmt.Formatter, s *dto.DashboardSummaryDTO) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Items\t%d\n", s.ItemCount)
	fmt.Fprintf(tw, "Agotados\t%d\n", s.OutOfStockCount)
	fmt.Fprintf(tw, "Costo total\t%s\n", nf.Money(s.InventoryCost))
	fmt.Fprintf(tw, "Valor de venta\t%s\n", nf.Money(s.InventoryValue))
	fmt.Fprintf(tw, "Margen potencial\t%s\n", nf.Money(s.PotentialMargin))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(s.StockByUnit) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "UNIDAD\tITEMS\tCANTIDAD")
	for _, u := range s.StockByUnit {
		discrete := entity.UnitOfMeasure(u.UnitOfMeasure).IsDiscrete()
		fmt.Fprintf(tw, "%s\t%d\t%s\n", u.UnitOfMeasure, u.Items, nf.Quantity(u.Quantity, discrete))
	}
	return tw.Flush()
}

func movementLabel(t string) string {
	switch entity.MovementType(t) {
	case entity.MovementInbound:
		return "entrada"
	case entity.MovementOutbound:
		return "salida"
	}
	return t
}
