package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a registered customer of one parqueadero, required for
// mensualidades. Documento is unique within the tenant. Clients are
// soft-deleted (Activo=false) so historical tickets keep their reference.
type Cliente struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParqueaderoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cliente_documento"`
	Nombre        string    `gorm:"not null"`
	Documento     string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_cliente_documento"`
	Telefono      *string   `gorm:"type:varchar(20)"`
	Email         *string
	Direccion     *string
	Placa         string `gorm:"type:varchar(20);not null"`
	Activo        bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Parqueadero *Parqueadero `gorm:"foreignKey:ParqueaderoID;constraint:OnDelete:CASCADE"`
}
