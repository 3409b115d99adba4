// Package numfmt formatea cantidades y montos según la configuración regional (APP_LOCALE).
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale locale usado cuando el configurado no es un tag BCP 47 válido.
const DefaultLocale = "es-CO"

// Formatter imprime decimales con los separadores de miles y decimales del locale.
type Formatter struct {
	tag language.Tag
	p   *message.Printer
}

// New construye un Formatter para locale (p. ej. "es-CO", "en").
func New(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{tag: tag, p: message.NewPrinter(tag)}
}

// Locale devuelve el tag efectivo.
func (f *Formatter) Locale() string { return f.tag.String() }

// Decimal formatea d con exactamente places decimales.
func (f *Formatter) Decimal(d decimal.Decimal, places int) string {
	return f.p.Sprint(number.Decimal(
		d.Round(int32(places)).InexactFloat64(),
		number.MinFractionDigits(places),
		number.MaxFractionDigits(places),
	))
}

// Money formatea un monto con dos decimales.
func (f *Formatter) Money(d decimal.Decimal) string {
	return f.Decimal(d, 2)
}

// Quantity formatea una cantidad de stock: entera para unidades discretas, hasta 3 decimales en otro caso.
func (f *Formatter) Quantity(d decimal.Decimal, discrete bool) string {
	if discrete {
		return f.Decimal(d, 0)
	}
	return f.p.Sprint(number.Decimal(
		d.Round(3).InexactFloat64(),
		number.MaxFractionDigits(3),
	))
}
