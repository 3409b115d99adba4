package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker/internal/domain"
)

// MovementType dirección del movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementInbound  MovementType = "inbound"  // entrada
	MovementOutbound MovementType = "outbound" // salida
)

// ParseMovementType valida s contra los tipos conocidos.
func ParseMovementType(s string) (MovementType, error) {
	switch MovementType(s) {
	case MovementInbound, MovementOutbound:
		return MovementType(s), nil
	}
	return "", domain.NewValidationError("movement_type", "tipo de movimiento inválido: "+s)
}

// StockMovement registro inmutable de un cambio de stock de un item.
// Quantity siempre es positiva; la dirección la indica Type.
type StockMovement struct {
	ID             string
	ItemID         string
	Type           MovementType
	Quantity       decimal.Decimal
	ResultingStock decimal.Decimal // stock del item inmediatamente después del movimiento
	CreatedAt      time.Time
}
