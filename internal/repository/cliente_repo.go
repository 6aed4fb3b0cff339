package repository

import (
	"context"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	Save(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Cliente, error)
	FindByDocumento(ctx context.Context, parqueaderoID uuid.UUID, documento string) (*model.Cliente, error)
	List(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]model.Cliente, error)
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) Save(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("id = ? AND parqueadero_id = ?", id, parqueaderoID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) FindByDocumento(ctx context.Context, parqueaderoID uuid.UUID, documento string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).
		Where("parqueadero_id = ? AND documento = ?", parqueaderoID, documento).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]model.Cliente, error) {
	q := r.db.WithContext(ctx).Where("parqueadero_id = ?", parqueaderoID)
	if soloActivos {
		q = q.Where("activo = true")
	}
	var cs []model.Cliente
	err := q.Order("nombre ASC").Find(&cs).Error
	return cs, err
}
