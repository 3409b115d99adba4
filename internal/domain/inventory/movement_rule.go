package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// DeriveMovement decide qué movimiento genera el paso de oldStock a newStock (servicio de dominio).
//
//	newStock > oldStock  -> inbound,  Quantity = newStock - oldStock
//	newStock < oldStock  -> outbound, Quantity = oldStock - newStock
//	iguales              -> nil (no se registra nada)
//
// ResultingStock es siempre newStock. En la creación de un item se invoca con oldStock = 0.
func DeriveMovement(itemID string, oldStock, newStock decimal.Decimal, at time.Time) *entity.StockMovement {
	var (
		movementType entity.MovementType
		quantity     decimal.Decimal
	)
	switch newStock.Cmp(oldStock) {
	case 1:
		movementType = entity.MovementInbound
		quantity = newStock.Sub(oldStock)
	case -1:
		movementType = entity.MovementOutbound
		quantity = oldStock.Sub(newStock)
	default:
		return nil
	}
	return &entity.StockMovement{
		ID:             uuid.New().String(),
		ItemID:         itemID,
		Type:           movementType,
		Quantity:       quantity,
		ResultingStock: newStock,
		CreatedAt:      at,
	}
}
