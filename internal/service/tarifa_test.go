package service

import (
	"testing"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoriaPorHoras() *model.Categoria {
	return &model.Categoria{
		Nombre:        "Moto",
		PrimeraHora:   decimal.NewFromInt(2000),
		HoraAdicional: decimal.NewFromInt(1000),
	}
}

func TestCalcularTarifaMenosDeUnaHora(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	salida := entrada.Add(45 * time.Minute)

	monto, err := CalcularTarifa(categoriaPorHoras(), entrada, salida, nil)

	require.NoError(t, err)
	assert.True(t, monto.Equal(decimal.NewFromInt(2000)), "monto = %s", monto)
}

func TestCalcularTarifaExactamenteUnaHora(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	salida := entrada.Add(time.Hour)

	monto, err := CalcularTarifa(categoriaPorHoras(), entrada, salida, nil)

	require.NoError(t, err)
	assert.True(t, monto.Equal(decimal.NewFromInt(2000)), "la hora exacta no genera adicional, monto = %s", monto)
}

func TestCalcularTarifaUnMinutoSobreLaHora(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	salida := entrada.Add(time.Hour + time.Minute)

	monto, err := CalcularTarifa(categoriaPorHoras(), entrada, salida, nil)

	require.NoError(t, err)
	assert.True(t, monto.Equal(decimal.NewFromInt(3000)), "la fracción redondea hacia arriba, monto = %s", monto)
}

func TestCalcularTarifaTresHorasYMedia(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	salida := entrada.Add(3*time.Hour + 30*time.Minute)

	monto, err := CalcularTarifa(categoriaPorHoras(), entrada, salida, nil)

	require.NoError(t, err)
	// 2000 + ceil(2.5) * 1000
	assert.True(t, monto.Equal(decimal.NewFromInt(5000)), "monto = %s", monto)
}

func TestCalcularTarifaMensualVigente(t *testing.T) {
	mensual := decimal.NewFromInt(80000)
	cat := &model.Categoria{
		Nombre:        "Carro mensual",
		PrimeraHora:   decimal.NewFromInt(3000),
		HoraAdicional: decimal.NewFromInt(2000),
		EsMensual:     true,
		TarifaMensual: &mensual,
	}
	entrada := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	venc := entrada.AddDate(0, 0, 30)
	salida := entrada.AddDate(0, 0, 15)

	monto, err := CalcularTarifa(cat, entrada, salida, &venc)

	require.NoError(t, err)
	assert.True(t, monto.Equal(mensual), "dentro de la ventana mensual rige la tarifa plana, monto = %s", monto)
}

func TestCalcularTarifaMensualVencidaCobraPorHoras(t *testing.T) {
	mensual := decimal.NewFromInt(80000)
	cat := &model.Categoria{
		Nombre:        "Carro mensual",
		PrimeraHora:   decimal.NewFromInt(3000),
		HoraAdicional: decimal.NewFromInt(2000),
		EsMensual:     true,
		TarifaMensual: &mensual,
	}
	entrada := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	venc := entrada.Add(2 * time.Hour)
	salida := entrada.Add(3 * time.Hour)

	monto, err := CalcularTarifa(cat, entrada, salida, &venc)

	require.NoError(t, err)
	// 3000 + ceil(2) * 2000
	assert.True(t, monto.Equal(decimal.NewFromInt(7000)), "monto = %s", monto)
}

func TestCalcularTarifaDuracionNegativa(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	salida := entrada.Add(-time.Minute)

	_, err := CalcularTarifa(categoriaPorHoras(), entrada, salida, nil)

	require.Error(t, err)
	assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
}

func TestDuracion(t *testing.T) {
	entrada := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	horas, minutos := Duracion(entrada, entrada.Add(3*time.Hour+25*time.Minute))
	assert.Equal(t, 3, horas)
	assert.Equal(t, 25, minutos)

	horas, minutos = Duracion(entrada, entrada.Add(-time.Hour))
	assert.Zero(t, horas)
	assert.Zero(t, minutos)
}

func TestSanitizarPlaca(t *testing.T) {
	assert.Equal(t, "ABC123", SanitizarPlaca("  abc 123 "))
	assert.Equal(t, "ABC-123", SanitizarPlaca("abc-123"))
	assert.Equal(t, "XYZ789", SanitizarPlaca("xyz_789!"))
}
