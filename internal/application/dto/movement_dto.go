package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementResponse salida de un registro del historial de movimientos.
type MovementResponse struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	MovementType   string          `json:"movement_type"` // inbound | outbound
	ItemID         string          `json:"item_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
}
