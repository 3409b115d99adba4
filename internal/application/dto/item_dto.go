package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items. Todos los campos son obligatorios.
type CreateItemRequest struct {
	ProductName   string           `json:"product_name" validate:"notblank,max=200"`
	UnitOfMeasure string           `json:"unit_of_measure" validate:"uom"`
	AverageCost   *decimal.Decimal `json:"average_cost" validate:"omitempty,dec18_4"`
	SaleValue     *decimal.Decimal `json:"sale_value" validate:"omitempty,dec18_4"`
	StockQuantity *decimal.Decimal `json:"stock_quantity" validate:"omitempty,dec18_4"`
}

// UpdateItemRequest body para PUT /api/items/{id}. Actualización parcial: nil = campo sin cambios.
type UpdateItemRequest struct {
	ProductName   *string          `json:"product_name" validate:"omitempty,notblank,max=200"`
	UnitOfMeasure *string          `json:"unit_of_measure" validate:"omitempty,uom"`
	AverageCost   *decimal.Decimal `json:"average_cost" validate:"omitempty,dec18_4"`
	SaleValue     *decimal.Decimal `json:"sale_value" validate:"omitempty,dec18_4"`
	StockQuantity *decimal.Decimal `json:"stock_quantity" validate:"omitempty,dec18_4"`
}

// IsEmpty indica que el patch no trae ningún campo.
func (r UpdateItemRequest) IsEmpty() bool {
	return r.ProductName == nil && r.UnitOfMeasure == nil && r.AverageCost == nil &&
		r.SaleValue == nil && r.StockQuantity == nil
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID            string          `json:"id"`
	ProductName   string          `json:"product_name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	SaleValue     decimal.Decimal `json:"sale_value"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
