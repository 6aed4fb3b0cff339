package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type DineroInicialRequest struct {
	Fecha         string          `json:"fecha"          validate:"required,datetime=2006-01-02"`
	DineroInicial decimal.Decimal `json:"dinero_inicial"`
}

type CuadreRequest struct {
	Fecha       string          `json:"fecha"        validate:"required,datetime=2006-01-02"`
	DineroFinal decimal.Decimal `json:"dinero_final"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID            string          `json:"id"`
	Fecha         string          `json:"fecha"`
	DineroInicial decimal.Decimal `json:"dinero_inicial"`
	// MontoEfectivo is the derived cash-equivalent revenue for the date,
	// recomputed from settled tickets and paid mensualidades on every read.
	MontoEfectivo      decimal.Decimal  `json:"monto_efectivo"`
	TotalTickets       decimal.Decimal  `json:"total_tickets"`
	TotalMensualidades decimal.Decimal  `json:"total_mensualidades"`
	TotalGeneral       decimal.Decimal  `json:"total_general"`
	DineroEsperado     decimal.Decimal  `json:"dinero_esperado"`
	DineroFinal        *decimal.Decimal `json:"dinero_final,omitempty"`
	CuadreRealizado    bool             `json:"cuadre_realizado"`
	Diferencia         *decimal.Decimal `json:"diferencia,omitempty"`
}

type CuadreResponse struct {
	CajaID         string          `json:"caja_id"`
	Fecha          string          `json:"fecha"`
	DineroInicial  decimal.Decimal `json:"dinero_inicial"`
	MontoEfectivo  decimal.Decimal `json:"monto_efectivo"`
	DineroEsperado decimal.Decimal `json:"dinero_esperado"`
	DineroFinal    decimal.Decimal `json:"dinero_final"`
	// Diferencia = (dinero_final - dinero_inicial) - monto_efectivo.
	// Negative means a cash shortage; the sign is never clamped.
	Diferencia    decimal.Decimal `json:"diferencia"`
	DiferenciaAbs decimal.Decimal `json:"diferencia_abs"`
}
