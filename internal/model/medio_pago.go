package model

import (
	"time"

	"github.com/google/uuid"
)

// MedioPago is a tenant-scoped payment method catalog entry. EsEfectivo marks
// the cash-equivalent method that feeds the daily register reconciliation.
type MedioPago struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParqueaderoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_medio_nombre"`
	Nombre        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_medio_nombre"`
	Descripcion   *string
	EsEfectivo    bool `gorm:"not null;default:false"`
	Activo        bool `gorm:"not null;default:true"`
	Orden         int  `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Parqueadero *Parqueadero `gorm:"foreignKey:ParqueaderoID;constraint:OnDelete:CASCADE"`
}
