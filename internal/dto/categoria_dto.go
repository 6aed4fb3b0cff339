package dto

import "github.com/shopspring/decimal"

type CrearCategoriaRequest struct {
	Nombre        string           `json:"nombre"         validate:"required,min=2,max=50"`
	PrimeraHora   decimal.Decimal  `json:"primera_hora"   validate:"min=0"`
	HoraAdicional decimal.Decimal  `json:"hora_adicional" validate:"min=0"`
	EsMensual     bool             `json:"es_mensual"`
	TarifaMensual *decimal.Decimal `json:"tarifa_mensual"`
}

type ActualizarCategoriaRequest struct {
	Nombre        string           `json:"nombre"         validate:"required,min=2,max=50"`
	PrimeraHora   decimal.Decimal  `json:"primera_hora"   validate:"min=0"`
	HoraAdicional decimal.Decimal  `json:"hora_adicional" validate:"min=0"`
	EsMensual     bool             `json:"es_mensual"`
	TarifaMensual *decimal.Decimal `json:"tarifa_mensual"`
}

type CategoriaResponse struct {
	ID            string           `json:"id"`
	Nombre        string           `json:"nombre"`
	PrimeraHora   decimal.Decimal  `json:"primera_hora"`
	HoraAdicional decimal.Decimal  `json:"hora_adicional"`
	EsMensual     bool             `json:"es_mensual"`
	TarifaMensual *decimal.Decimal `json:"tarifa_mensual,omitempty"`
}
