package dto

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=3"`
	Documento string  `json:"documento" validate:"required,min=5,max=20"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
	Placa     string  `json:"placa"     validate:"required,min=3,max=20"`
}

type ActualizarClienteRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=3"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
	Placa     string  `json:"placa"     validate:"required,min=3,max=20"`
}

type ClienteResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Documento string  `json:"documento"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Placa     string  `json:"placa"`
	Activo    bool    `json:"activo"`
}
