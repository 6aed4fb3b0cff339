package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categoria is a vehicle class scoped to one parqueadero, carrying its tariff.
// Hourly categories charge PrimeraHora as a minimum plus HoraAdicional per
// started hour beyond the first. Monthly categories charge TarifaMensual flat
// while the ticket's monthly window is current.
type Categoria struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParqueaderoID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_categoria_nombre;index:idx_categorias_mensual"`
	Nombre        string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_categoria_nombre"`
	PrimeraHora   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	HoraAdicional decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	EsMensual     bool            `gorm:"not null;default:false;index:idx_categorias_mensual"`
	// TarifaMensual is required (and must be positive) when EsMensual is set.
	TarifaMensual *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Parqueadero *Parqueadero `gorm:"foreignKey:ParqueaderoID;constraint:OnDelete:CASCADE"`
}
