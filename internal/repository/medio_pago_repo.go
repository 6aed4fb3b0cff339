package repository

import (
	"context"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedioPagoRepository interface {
	Create(ctx context.Context, m *model.MedioPago) error
	Save(ctx context.Context, m *model.MedioPago) error
	FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.MedioPago, error)
	// FindEfectivo returns the tenant's cash method, used as the fallback
	// when a settlement omits the payment method.
	FindEfectivo(ctx context.Context, parqueaderoID uuid.UUID) (*model.MedioPago, error)
	List(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]model.MedioPago, error)
}

type medioPagoRepo struct{ db *gorm.DB }

func NewMedioPagoRepository(db *gorm.DB) MedioPagoRepository { return &medioPagoRepo{db: db} }

func (r *medioPagoRepo) Create(ctx context.Context, m *model.MedioPago) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medioPagoRepo) Save(ctx context.Context, m *model.MedioPago) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medioPagoRepo) FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.MedioPago, error) {
	var m model.MedioPago
	err := r.db.WithContext(ctx).
		Where("id = ? AND parqueadero_id = ?", id, parqueaderoID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medioPagoRepo) FindEfectivo(ctx context.Context, parqueaderoID uuid.UUID) (*model.MedioPago, error) {
	var m model.MedioPago
	err := r.db.WithContext(ctx).
		Where("parqueadero_id = ? AND es_efectivo = true AND activo = true", parqueaderoID).
		Order("orden ASC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *medioPagoRepo) List(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]model.MedioPago, error) {
	q := r.db.WithContext(ctx).Where("parqueadero_id = ?", parqueaderoID)
	if soloActivos {
		q = q.Where("activo = true")
	}
	var ms []model.MedioPago
	err := q.Order("orden ASC, nombre ASC").Find(&ms).Error
	return ms, err
}
