package repository

import (
	"context"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CajaRepository interface {
	FindPorFecha(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (*model.Caja, error)
	Create(ctx context.Context, c *model.Caja) error
	Save(ctx context.Context, c *model.Caja) error
	FindForUpdateTx(tx *gorm.DB, parqueaderoID uuid.UUID, fecha time.Time) (*model.Caja, error)
	SaveTx(tx *gorm.DB, c *model.Caja) error
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) FindPorFecha(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (*model.Caja, error) {
	var c model.Caja
	err := r.db.WithContext(ctx).
		Where("parqueadero_id = ? AND fecha = ?", parqueaderoID, fecha.Format("2006-01-02")).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) Create(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) Save(ctx context.Context, c *model.Caja) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cajaRepo) FindForUpdateTx(tx *gorm.DB, parqueaderoID uuid.UUID, fecha time.Time) (*model.Caja, error) {
	var c model.Caja
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("parqueadero_id = ? AND fecha = ?", parqueaderoID, fecha.Format("2006-01-02")).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cajaRepo) SaveTx(tx *gorm.DB, c *model.Caja) error {
	return tx.Save(c).Error
}
