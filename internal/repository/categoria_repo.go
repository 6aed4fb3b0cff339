package repository

import (
	"context"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriaRepository interface {
	Create(ctx context.Context, c *model.Categoria) error
	Save(ctx context.Context, c *model.Categoria) error
	Delete(ctx context.Context, parqueaderoID, id uuid.UUID) error
	FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Categoria, error)
	List(ctx context.Context, parqueaderoID uuid.UUID) ([]model.Categoria, error)
}

type categoriaRepo struct{ db *gorm.DB }

func NewCategoriaRepository(db *gorm.DB) CategoriaRepository { return &categoriaRepo{db: db} }

func (r *categoriaRepo) Create(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoriaRepo) Save(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoriaRepo) Delete(ctx context.Context, parqueaderoID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND parqueadero_id = ?", id, parqueaderoID).
		Delete(&model.Categoria{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoriaRepo) FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).
		Where("id = ? AND parqueadero_id = ?", id, parqueaderoID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoriaRepo) List(ctx context.Context, parqueaderoID uuid.UUID) ([]model.Categoria, error) {
	var cs []model.Categoria
	err := r.db.WithContext(ctx).
		Where("parqueadero_id = ?", parqueaderoID).
		Order("nombre ASC").
		Find(&cs).Error
	return cs, err
}
