package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de pago de la suscripción del parqueadero.
const (
	PagoPagado    = "PAGADO"
	PagoPendiente = "PENDIENTE"
	PagoVencido   = "VENCIDO"
)

// Parqueadero is the tenant: one independently managed parking-lot business.
// Every scoped entity hangs off it via FK with cascading delete. The owner
// user is unique per parqueadero; secondary operators are linked through
// UsuarioParqueadero.
type Parqueadero struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Empresa   string    `gorm:"not null"`
	NIT       *string   `gorm:"type:varchar(20)"`
	Telefono  string    `gorm:"type:varchar(20)"`
	Direccion string
	Activo    bool `gorm:"not null;default:true"`

	// Ventana de suscripción, administrada por el flujo de facturación externo.
	SuscripcionInicio *time.Time `gorm:"type:date"`
	SuscripcionFin    *time.Time `gorm:"type:date;index:idx_parqueaderos_suscripcion"`
	// EstadoPago: "PAGADO" | "PENDIENTE" | "VENCIDO"
	EstadoPago string `gorm:"type:varchar(20);not null;default:'PENDIENTE';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SuscripcionVigente reports whether the subscription window covers ref.
// A missing end date counts as expired.
func (p *Parqueadero) SuscripcionVigente(ref time.Time) bool {
	if p.SuscripcionFin == nil {
		return false
	}
	return !diaCalendario(ref).After(diaCalendario(*p.SuscripcionFin))
}

// DiasRestantes returns days until the subscription ends; negative when lapsed.
func (p *Parqueadero) DiasRestantes(ref time.Time) int {
	if p.SuscripcionFin == nil {
		return 0
	}
	return int(diaCalendario(*p.SuscripcionFin).Sub(diaCalendario(ref)).Hours() / 24)
}

// UsuarioParqueadero links secondary users (cajeros, operadores) to a tenant.
type UsuarioParqueadero struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usuario_parqueadero"`
	ParqueaderoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_usuario_parqueadero"`
	CreatedAt     time.Time

	Parqueadero *Parqueadero `gorm:"foreignKey:ParqueaderoID;constraint:OnDelete:CASCADE"`
}
