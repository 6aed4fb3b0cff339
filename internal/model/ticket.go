package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket records one vehicle stay. Open while HoraSalida is nil; settled
// exactly once, which sets exit time, amount and payment method atomically.
// At most one open ticket may exist per (parqueadero, placa), enforced by a
// partial unique index over the open subset (see infra.applySchemaPatches).
type Ticket struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParqueaderoID uuid.UUID        `gorm:"type:uuid;not null;index:idx_tickets_abiertos,priority:1"`
	CategoriaID   uuid.UUID        `gorm:"type:uuid;not null"`
	ClienteID     *uuid.UUID       `gorm:"type:uuid"`
	Placa         string           `gorm:"type:varchar(20);not null;index:idx_tickets_abiertos,priority:2"`
	Color         string           `gorm:"type:varchar(50)"`
	Marca         string           `gorm:"type:varchar(50)"`
	Cascos        *int
	HoraEntrada   time.Time        `gorm:"not null;index"`
	HoraSalida    *time.Time       `gorm:"index"`
	MontoPagado   *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MedioPagoID   *uuid.UUID       `gorm:"type:uuid;index"`
	// VencimientoMensual is set on entry for monthly categories: entrada + 30 días.
	VencimientoMensual *time.Time
	// BarcodePath points at the Code128 PNG generated asynchronously on entry.
	BarcodePath *string
	CreatedAt   time.Time

	Parqueadero *Parqueadero `gorm:"foreignKey:ParqueaderoID;constraint:OnDelete:CASCADE"`
	Categoria   *Categoria   `gorm:"foreignKey:CategoriaID;constraint:OnDelete:CASCADE"`
	Cliente     *Cliente     `gorm:"foreignKey:ClienteID;constraint:OnDelete:SET NULL"`
	MedioPago   *MedioPago   `gorm:"foreignKey:MedioPagoID;constraint:OnDelete:SET NULL"`
}

// Abierto reports whether the vehicle is still parked.
func (t *Ticket) Abierto() bool { return t.HoraSalida == nil }
