package dto

import "github.com/shopspring/decimal"

// ResumenIngresosResponse aggregates revenue over a period. Cached for five
// minutes; invalidated when a ticket is settled or a mensualidad is paid.
type ResumenIngresosResponse struct {
	Desde                 string          `json:"desde"`
	Hasta                 string          `json:"hasta"`
	TotalTickets          decimal.Decimal `json:"total_tickets"`
	CantidadTickets       int64           `json:"cantidad_tickets"`
	TotalMensualidades    decimal.Decimal `json:"total_mensualidades"`
	CantidadMensualidades int64           `json:"cantidad_mensualidades"`
	Total                 decimal.Decimal `json:"total"`
}

// TotalPorMedio is one row of the per-payment-method breakdown.
type TotalPorMedio struct {
	MedioPago  string          `json:"medio_pago"`
	EsEfectivo bool            `json:"es_efectivo"`
	Total      decimal.Decimal `json:"total"`
	Cantidad   int64           `json:"cantidad"`
}

type ResumenMediosPagoResponse struct {
	Desde  string          `json:"desde"`
	Hasta  string          `json:"hasta"`
	Medios []TotalPorMedio `json:"medios"`
}
