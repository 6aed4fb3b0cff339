package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caja is the daily cash-register reconciliation record, unique per
// (parqueadero, fecha). Monto is a derived value: the cash-equivalent revenue
// recomputed from settled tickets and paid mensualidades on every access,
// never maintained as a running counter. Once CuadreRealizado is set the
// register is closed and DineroFinal is immutable.
type Caja struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ParqueaderoID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_caja_fecha"`
	Fecha           time.Time        `gorm:"type:date;not null;uniqueIndex:idx_caja_fecha"`
	Monto           decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	Descripcion     string
	DineroInicial   decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	DineroFinal     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CuadreRealizado bool             `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Parqueadero *Parqueadero `gorm:"foreignKey:ParqueaderoID;constraint:OnDelete:CASCADE"`
}

// Diferencia returns the reconciliation variance once the cuadre is done:
// (contado - dinero inicial) - ingresos en efectivo. Positive is a surplus,
// negative a shortage; the sign is always preserved.
func (c *Caja) Diferencia() *decimal.Decimal {
	if !c.CuadreRealizado || c.DineroFinal == nil {
		return nil
	}
	d := c.DineroFinal.Sub(c.DineroInicial).Sub(c.Monto)
	return &d
}
