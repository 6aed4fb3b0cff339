package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type IngresoRequest struct {
	CategoriaID string  `json:"categoria_id" validate:"required,uuid"`
	Placa       string  `json:"placa"        validate:"required,min=3,max=20"`
	Color       string  `json:"color"        validate:"omitempty,max=50"`
	Marca       string  `json:"marca"        validate:"omitempty,max=50"`
	Cascos      *int    `json:"cascos"       validate:"omitempty,min=0"`
	ClienteID   *string `json:"cliente_id"   validate:"omitempty,uuid"`
}

// CotizacionRequest identifies an open ticket by plate or, failing that, by
// the ticket ID printed in the barcode.
type CotizacionRequest struct {
	Identificador string `json:"identificador" validate:"required"`
}

type LiquidacionRequest struct {
	Identificador  string           `json:"identificador"  validate:"required"`
	MedioPagoID    *string          `json:"medio_pago_id"  validate:"omitempty,uuid"`
	MontoRecibido  *decimal.Decimal `json:"monto_recibido"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TicketResponse struct {
	ID                 string           `json:"id"`
	Placa              string           `json:"placa"`
	Categoria          string           `json:"categoria"`
	Color              string           `json:"color,omitempty"`
	Marca              string           `json:"marca,omitempty"`
	Cascos             *int             `json:"cascos,omitempty"`
	HoraEntrada        string           `json:"hora_entrada"`
	HoraSalida         *string          `json:"hora_salida,omitempty"`
	MontoPagado        *decimal.Decimal `json:"monto_pagado,omitempty"`
	MedioPago          *string          `json:"medio_pago,omitempty"`
	VencimientoMensual *string          `json:"vencimiento_mensual,omitempty"`
}

type DuracionResponse struct {
	Horas   int `json:"horas"`
	Minutos int `json:"minutos"`
}

type CotizacionResponse struct {
	TicketID    string           `json:"ticket_id"`
	Placa       string           `json:"placa"`
	HoraEntrada string           `json:"hora_entrada"`
	Monto       decimal.Decimal  `json:"monto"`
	Duracion    DuracionResponse `json:"duracion"`
}

type LiquidacionResponse struct {
	Ticket        TicketResponse   `json:"ticket"`
	Monto         decimal.Decimal  `json:"monto"`
	MontoRecibido *decimal.Decimal `json:"monto_recibido,omitempty"`
	Cambio        *decimal.Decimal `json:"cambio,omitempty"`
}
