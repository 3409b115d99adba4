package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker/internal/domain"
)

// UnitOfMeasure dimensión en la que se expresa el stock de un item.
type UnitOfMeasure string

// Unidades de medida admitidas (conjunto cerrado).
const (
	UnitLiter      UnitOfMeasure = "liter"
	UnitMeter      UnitOfMeasure = "meter"
	UnitKilogram   UnitOfMeasure = "kilogram"
	UnitCubicMeter UnitOfMeasure = "cubic_meter"
	UnitCount      UnitOfMeasure = "count"
)

var unitsOfMeasure = []UnitOfMeasure{UnitLiter, UnitMeter, UnitKilogram, UnitCubicMeter, UnitCount}

// UnitsOfMeasure devuelve las unidades válidas en orden de presentación.
func UnitsOfMeasure() []UnitOfMeasure {
	out := make([]UnitOfMeasure, len(unitsOfMeasure))
	copy(out, unitsOfMeasure)
	return out
}

// ParseUnitOfMeasure valida s contra el conjunto cerrado de unidades.
func ParseUnitOfMeasure(s string) (UnitOfMeasure, error) {
	for _, u := range unitsOfMeasure {
		if string(u) == s {
			return u, nil
		}
	}
	return "", domain.NewValidationError("unit_of_measure", "unidad de medida inválida: "+s)
}

// Límites de las columnas NUMERIC(18,4) de items y stock_movements.
const AmountScale = 4

// MaxAmount primer valor que ya no cabe en NUMERIC(18,4): 14 dígitos enteros.
var MaxAmount = decimal.New(1, 14)

// ValidateAmount verifica que d sea >= 0, tenga como máximo AmountScale decimales y sea
// menor que MaxAmount. field es el nombre JSON que se reporta en el error.
func ValidateAmount(field string, d decimal.Decimal) error {
	switch {
	case d.IsNegative():
		return domain.NewValidationError(field, "debe ser mayor o igual a 0")
	case !d.Equal(d.Truncate(AmountScale)):
		return domain.NewValidationError(field, "admite como máximo 4 decimales")
	case d.GreaterThanOrEqual(MaxAmount):
		return domain.NewValidationError(field, "debe ser menor a 100000000000000")
	}
	return nil
}

// IsDiscrete indica si la unidad se cuenta en unidades enteras.
func (u UnitOfMeasure) IsDiscrete() bool { return u == UnitCount }

// Item producto con costo, precio de venta y stock.
// StockQuantity solo cambia vía Create/Update y cada cambio genera un StockMovement.
type Item struct {
	ID            string
	ProductName   string
	UnitOfMeasure UnitOfMeasure
	AverageCost   decimal.Decimal
	SaleValue     decimal.Decimal
	StockQuantity decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate verifica los invariantes del item antes de persistirlo.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.ProductName) == "" {
		return domain.NewValidationError("product_name", "no puede estar vacío")
	}
	if _, err := ParseUnitOfMeasure(string(i.UnitOfMeasure)); err != nil {
		return err
	}
	if err := ValidateAmount("average_cost", i.AverageCost); err != nil {
		return err
	}
	if err := ValidateAmount("sale_value", i.SaleValue); err != nil {
		return err
	}
	return ValidateAmount("stock_quantity", i.StockQuantity)
}
