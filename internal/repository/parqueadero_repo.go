package repository

import (
	"context"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParqueaderoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Parqueadero, error)
	// FindByOwner resolves the parqueadero whose owner is the given user.
	FindByOwner(ctx context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error)
	// FindByAsignacion resolves through the explicit staff assignment table.
	FindByAsignacion(ctx context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error)
	Create(ctx context.Context, p *model.Parqueadero) error
	Save(ctx context.Context, p *model.Parqueadero) error
	Asignar(ctx context.Context, a *model.UsuarioParqueadero) error
}

type parqueaderoRepo struct{ db *gorm.DB }

func NewParqueaderoRepository(db *gorm.DB) ParqueaderoRepository { return &parqueaderoRepo{db: db} }

func (r *parqueaderoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Parqueadero, error) {
	var p model.Parqueadero
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *parqueaderoRepo) FindByOwner(ctx context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error) {
	var p model.Parqueadero
	if err := r.db.WithContext(ctx).First(&p, "usuario_id = ?", usuarioID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *parqueaderoRepo) FindByAsignacion(ctx context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error) {
	var p model.Parqueadero
	err := r.db.WithContext(ctx).
		Joins("JOIN usuario_parqueaderos ON usuario_parqueaderos.parqueadero_id = parqueaderos.id").
		Where("usuario_parqueaderos.usuario_id = ?", usuarioID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *parqueaderoRepo) Create(ctx context.Context, p *model.Parqueadero) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *parqueaderoRepo) Save(ctx context.Context, p *model.Parqueadero) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *parqueaderoRepo) Asignar(ctx context.Context, a *model.UsuarioParqueadero) error {
	return r.db.WithContext(ctx).Create(a).Error
}
