// Package validation centraliza la validación de DTOs de entrada con go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-tracker/internal/domain"
	"github.com/jhoicas/stock-tracker/internal/domain/entity"
)

// New construye un validador con los tags propios de la aplicación:
//   - notblank: string no vacío tras TrimSpace
//   - uom:      unidad de medida del conjunto cerrado
//   - dec18_4:  monto >= 0 que cabe en NUMERIC(18,4) (máx. 4 decimales, menor a 1e14)
//
// decimal.Decimal llega a los validadores como su representación en texto, sin pasar por float64.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	// Los nombres son fijos; RegisterValidation solo falla con nombres vacíos.
	_ = v.RegisterValidation("notblank", notBlank)
	_ = v.RegisterValidation("uom", validUnitOfMeasure)
	_ = v.RegisterValidation("dec18_4", validAmount)
	return v
}

// Struct valida s y convierte el primer error de campo en *domain.ValidationError.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return domain.NewValidationError(fe.Field(), reason(fe))
	}
	return fmt.Errorf("validar entrada: %w", err)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "notblank":
		return "no puede estar vacío"
	case "uom":
		return fmt.Sprintf("unidad de medida inválida: %v", fe.Value())
	case "dec18_4":
		return amountReason(fe)
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "max":
		return "excede la longitud máxima de " + fe.Param()
	default:
		return "valor inválido (" + fe.Tag() + ")"
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validUnitOfMeasure(fl validator.FieldLevel) bool {
	_, err := entity.ParseUnitOfMeasure(fl.Field().String())
	return err == nil
}

func validAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && entity.ValidateAmount(fl.FieldName(), d) == nil
}

func amountReason(fe validator.FieldError) string {
	d, err := decimal.NewFromString(fmt.Sprint(fe.Value()))
	if err != nil {
		return "número inválido"
	}
	var vErr *domain.ValidationError
	if errors.As(entity.ValidateAmount(fe.Field(), d), &vErr) {
		return vErr.Reason
	}
	return "valor inválido"
}
