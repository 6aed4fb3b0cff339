package service

import (
	"math"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/shopspring/decimal"
)

// CalcularTarifa computes the charge for a stay from entrada to evaluacion
// using the category's tariff. Monthly categories within their window pay the
// flat rate. Hourly categories pay the first hour as a minimum plus one
// additional-hour rate per started hour beyond the first. Pure, no mutation.
func CalcularTarifa(cat *model.Categoria, entrada, evaluacion time.Time, vencimientoMensual *time.Time) (decimal.Decimal, error) {
	if cat.EsMensual && cat.TarifaMensual != nil && vencimientoMensual != nil && !evaluacion.After(*vencimientoMensual) {
		return cat.TarifaMensual.Round(2), nil
	}

	if evaluacion.Before(entrada) {
		return decimal.Zero, apierror.Validation("la hora de salida es anterior a la hora de entrada")
	}

	horas := evaluacion.Sub(entrada).Hours()
	total := cat.PrimeraHora
	if horas > 1 {
		adicionales := int64(math.Ceil(horas - 1))
		total = total.Add(cat.HoraAdicional.Mul(decimal.NewFromInt(adicionales)))
	}
	return total.Round(2), nil
}

// Duracion splits an elapsed interval into whole hours and leftover minutes
// for display on quotes and receipts.
func Duracion(entrada, evaluacion time.Time) (horas int, minutos int) {
	if evaluacion.Before(entrada) {
		return 0, 0
	}
	d := evaluacion.Sub(entrada)
	return int(d.Hours()), int(d.Minutes()) % 60
}
