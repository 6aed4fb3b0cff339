package dto

type CrearMedioPagoRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
	EsEfectivo  bool    `json:"es_efectivo"`
	Orden       int     `json:"orden"       validate:"min=0"`
}

type ActualizarMedioPagoRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
	EsEfectivo  bool    `json:"es_efectivo"`
	Activo      bool    `json:"activo"`
	Orden       int     `json:"orden"       validate:"min=0"`
}

type MedioPagoResponse struct {
	ID          string  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion,omitempty"`
	EsEfectivo  bool    `json:"es_efectivo"`
	Activo      bool    `json:"activo"`
	Orden       int     `json:"orden"`
}
