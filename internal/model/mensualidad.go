package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una mensualidad.
const (
	MensualidadPendiente = "PENDIENTE"
	MensualidadPagada    = "PAGADO"
	MensualidadVencida   = "VENCIDO"
	MensualidadCancelada = "CANCELADO"
)

// Mensualidad is a flat-rate monthly parking contract between a tenant and a
// client. Transitions: PENDIENTE a PAGADO, PENDIENTE a VENCIDO (sweep),
// PENDIENTE o PAGADO a CANCELADO. PAGADO is terminal for the period; a new
// period is a new record.
type Mensualidad struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParqueaderoID uuid.UUID `gorm:"type:uuid;not null;index:idx_mensualidades_estado,priority:1"`
	ClienteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CategoriaID   uuid.UUID `gorm:"type:uuid;not null"`

	FechaInicio      time.Time       `gorm:"type:date;not null"`
	FechaVencimiento time.Time       `gorm:"type:date;not null;index:idx_mensualidades_estado,priority:3"`
	Monto            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado           string          `gorm:"type:varchar(20);not null;default:'PENDIENTE';index:idx_mensualidades_estado,priority:2"`

	FechaPago     *time.Time `gorm:"index"`
	MedioPagoID   *uuid.UUID `gorm:"type:uuid"`
	Observaciones *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Parqueadero *Parqueadero `gorm:"foreignKey:ParqueaderoID;constraint:OnDelete:CASCADE"`
	Cliente     *Cliente     `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE"`
	Categoria   *Categoria   `gorm:"foreignKey:CategoriaID;constraint:OnDelete:CASCADE"`
	MedioPago   *MedioPago   `gorm:"foreignKey:MedioPagoID;constraint:OnDelete:SET NULL"`
}

// EstadoEfectivo computes the logical status at ref without mutating the
// record: a PENDIENTE mensualidad past its expiry date reads as VENCIDO even
// if the explicit sweep has not run yet.
func (m *Mensualidad) EstadoEfectivo(ref time.Time) string {
	if m.Estado == MensualidadPendiente && diaCalendario(m.FechaVencimiento).Before(diaCalendario(ref)) {
		return MensualidadVencida
	}
	return m.Estado
}
