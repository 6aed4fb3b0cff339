package repository

import (
	"context"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MedioAgg is one row of a per-payment-method aggregation.
type MedioAgg struct {
	Nombre     string
	EsEfectivo bool
	Total      decimal.Decimal
	Cantidad   int64
}

type TicketRepository interface {
	Create(ctx context.Context, t *model.Ticket) error
	FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Ticket, error)
	FindAbiertoPorPlaca(ctx context.Context, parqueaderoID uuid.UUID, placa string) (*model.Ticket, error)
	FindAbiertoPorID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Ticket, error)
	ListAbiertos(ctx context.Context, parqueaderoID uuid.UUID) ([]model.Ticket, error)
	// FindAbiertoForUpdateTx takes an exclusive row lock scoped by
	// (id, parqueadero, open). Returns gorm.ErrRecordNotFound when the row is
	// missing, belongs to another tenant, or was already settled.
	FindAbiertoForUpdateTx(tx *gorm.DB, parqueaderoID, id uuid.UUID) (*model.Ticket, error)
	SaveTx(tx *gorm.DB, t *model.Ticket) error
	UpdateBarcodePath(ctx context.Context, id uuid.UUID, path string) error
	SumLiquidados(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) (decimal.Decimal, int64, error)
	SumLiquidadosPorMedio(ctx context.Context, parqueaderoID, medioPagoID uuid.UUID, rango Rango) (decimal.Decimal, error)
	AggPorMedio(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) ([]MedioAgg, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) DB() *gorm.DB { return r.db }

func (r *ticketRepo) Create(ctx context.Context, t *model.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ticketRepo) FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Categoria").Preload("MedioPago").
		Where("id = ? AND parqueadero_id = ?", id, parqueaderoID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) FindAbiertoPorPlaca(ctx context.Context, parqueaderoID uuid.UUID, placa string) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("parqueadero_id = ? AND UPPER(placa) = UPPER(?) AND hora_salida IS NULL", parqueaderoID, placa).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) FindAbiertoPorID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("id = ? AND parqueadero_id = ? AND hora_salida IS NULL", id, parqueaderoID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) ListAbiertos(ctx context.Context, parqueaderoID uuid.UUID) ([]model.Ticket, error) {
	var tickets []model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("parqueadero_id = ? AND hora_salida IS NULL", parqueaderoID).
		Order("hora_entrada ASC").
		Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepo) FindAbiertoForUpdateTx(tx *gorm.DB, parqueaderoID, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND parqueadero_id = ? AND hora_salida IS NULL", id, parqueaderoID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ticketRepo) SaveTx(tx *gorm.DB, t *model.Ticket) error {
	return tx.Save(t).Error
}

func (r *ticketRepo) UpdateBarcodePath(ctx context.Context, id uuid.UUID, path string) error {
	return r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("id = ?", id).
		Update("barcode_path", path).Error
}

func (r *ticketRepo) SumLiquidados(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) (decimal.Decimal, int64, error) {
	var row struct {
		Total    decimal.Decimal
		Cantidad int64
	}
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Select("COALESCE(SUM(monto_pagado), 0) AS total, COUNT(*) AS cantidad").
		Where("parqueadero_id = ? AND hora_salida >= ? AND hora_salida < ? AND monto_pagado IS NOT NULL",
			parqueaderoID, rango.Desde, rango.Hasta).
		Scan(&row).Error
	return row.Total, row.Cantidad, err
}

func (r *ticketRepo) SumLiquidadosPorMedio(ctx context.Context, parqueaderoID, medioPagoID uuid.UUID, rango Rango) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Select("COALESCE(SUM(monto_pagado), 0)").
		Where("parqueadero_id = ? AND medio_pago_id = ? AND hora_salida >= ? AND hora_salida < ? AND monto_pagado IS NOT NULL",
			parqueaderoID, medioPagoID, rango.Desde, rango.Hasta).
		Scan(&total).Error
	return total, err
}

func (r *ticketRepo) AggPorMedio(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) ([]MedioAgg, error) {
	var rows []MedioAgg
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Select("COALESCE(medios_pago.nombre, 'Sin especificar') AS nombre, COALESCE(medios_pago.es_efectivo, false) AS es_efectivo, SUM(tickets.monto_pagado) AS total, COUNT(*) AS cantidad").
		Joins("LEFT JOIN medios_pago ON medios_pago.id = tickets.medio_pago_id").
		Where("tickets.parqueadero_id = ? AND tickets.hora_salida >= ? AND tickets.hora_salida < ? AND tickets.monto_pagado IS NOT NULL",
			parqueaderoID, rango.Desde, rango.Hasta).
		Group("medios_pago.nombre, medios_pago.es_efectivo").
		Scan(&rows).Error
	return rows, err
}
