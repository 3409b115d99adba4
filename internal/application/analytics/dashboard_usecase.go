// Package analytics contiene los casos de uso de lectura agregada: resumen del dashboard
// y reporte PDF del inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker/internal/application/dto"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
	"github.com/jhoicas/stock-tracker/internal/domain/repository"
)

// DashboardUseCase calcula los totales del inventario a partir del stock actual.
//
// Fuente de datos: ItemRepository (solo lectura). No consulta el historial de movimientos.
type DashboardUseCase struct {
	itemRepo repository.ItemRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(itemRepo repository.ItemRepository) *DashboardUseCase {
	return &DashboardUseCase{itemRepo: itemRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar items: %w", err)
	}
	return summarize(items, uc.now().UTC()), nil
}

func summarize(items []*entity.Item, at time.Time) *dto.DashboardSummaryDTO {
	out := &dto.DashboardSummaryDTO{
		ItemCount:      len(items),
		InventoryCost:  decimal.Zero,
		InventoryValue: decimal.Zero,
		StockByUnit:    []dto.UnitStockDTO{},
		GeneratedAt:    at,
	}

	byUnit := make(map[entity.UnitOfMeasure]*dto.UnitStockDTO)
	for _, it := range items {
		if it.StockQuantity.IsZero() {
			out.OutOfStockCount++
		}
		out.InventoryCost = out.InventoryCost.Add(it.StockQuantity.Mul(it.AverageCost))
		out.InventoryValue = out.InventoryValue.Add(it.StockQuantity.Mul(it.SaleValue))

		u, ok := byUnit[it.UnitOfMeasure]
		if !ok {
			u = &dto.UnitStockDTO{UnitOfMeasure: string(it.UnitOfMeasure), Quantity: decimal.Zero}
			byUnit[it.UnitOfMeasure] = u
		}
		u.Items++
		u.Quantity = u.Quantity.Add(it.StockQuantity)
	}
	out.PotentialMargin = out.InventoryValue.Sub(out.InventoryCost)

	// Orden fijo de presentación.
	for _, unit := range entity.UnitsOfMeasure() {
		if u, ok := byUnit[unit]; ok {
			out.StockByUnit = append(out.StockByUnit, *u)
		}
	}
	return out
}
