package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearMensualidadRequest struct {
	ClienteID     string  `json:"cliente_id"    validate:"required,uuid"`
	CategoriaID   string  `json:"categoria_id"  validate:"required,uuid"`
	FechaInicio   string  `json:"fecha_inicio"  validate:"required,datetime=2006-01-02"`
	Observaciones *string `json:"observaciones"`
}

type PagarMensualidadRequest struct {
	MedioPagoID *string `json:"medio_pago_id" validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MensualidadResponse struct {
	ID               string          `json:"id"`
	Cliente          string          `json:"cliente"`
	ClientePlaca     string          `json:"cliente_placa"`
	Categoria        string          `json:"categoria"`
	FechaInicio      string          `json:"fecha_inicio"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	Monto            decimal.Decimal `json:"monto"`
	// Estado is the persisted status; EstadoEfectivo additionally reads a
	// PENDIENTE record past its expiry as VENCIDO without mutating it.
	Estado         string  `json:"estado"`
	EstadoEfectivo string  `json:"estado_efectivo"`
	FechaPago      *string `json:"fecha_pago,omitempty"`
	MedioPago      *string `json:"medio_pago,omitempty"`
	Observaciones  *string `json:"observaciones,omitempty"`
}

type BarridoResponse struct {
	Vencidas int64 `json:"vencidas"`
}
