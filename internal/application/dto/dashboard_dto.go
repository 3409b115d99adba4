package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Valores calculados sobre el stock actual de todos los items.
type DashboardSummaryDTO struct {
	ItemCount       int             `json:"item_count"`
	OutOfStockCount int             `json:"out_of_stock_count"` // items con stock 0
	InventoryCost   decimal.Decimal `json:"inventory_cost"`     // Σ stock * costo promedio
	InventoryValue  decimal.Decimal `json:"inventory_value"`    // Σ stock * valor de venta
	PotentialMargin decimal.Decimal `json:"potential_margin"`   // InventoryValue - InventoryCost

	// Por unidad de medida; las cantidades de distintas unidades no se suman entre sí.
	StockByUnit []UnitStockDTO `json:"stock_by_unit"`

	GeneratedAt time.Time `json:"generated_at"`
}

// UnitStockDTO stock total de los items de una misma unidad de medida.
type UnitStockDTO struct {
	UnitOfMeasure string          `json:"unit_of_measure"`
	Items         int             `json:"items"`
	Quantity      decimal.Decimal `json:"quantity"`
}
