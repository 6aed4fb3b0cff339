package repository

import (
	"context"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MensualidadRepository interface {
	Create(ctx context.Context, m *model.Mensualidad) error
	Save(ctx context.Context, m *model.Mensualidad) error
	FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Mensualidad, error)
	FindForUpdateTx(tx *gorm.DB, parqueaderoID, id uuid.UUID) (*model.Mensualidad, error)
	SaveTx(tx *gorm.DB, m *model.Mensualidad) error
	List(ctx context.Context, parqueaderoID uuid.UUID, estado string) ([]model.Mensualidad, error)
	FindActivaPorPlaca(ctx context.Context, parqueaderoID uuid.UUID, placa string, ref time.Time) (*model.Mensualidad, error)
	// MarkVencidas flips every lapsed PENDIENTE row to VENCIDO in one
	// statement and reports how many changed.
	MarkVencidas(ctx context.Context, parqueaderoID uuid.UUID, ref time.Time) (int64, error)
	SumPagadas(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) (decimal.Decimal, int64, error)
	SumPagadasPorMedio(ctx context.Context, parqueaderoID, medioPagoID uuid.UUID, rango Rango) (decimal.Decimal, error)
	AggPorMedio(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) ([]MedioAgg, error)
	DB() *gorm.DB
}

type mensualidadRepo struct{ db *gorm.DB }

func NewMensualidadRepository(db *gorm.DB) MensualidadRepository { return &mensualidadRepo{db: db} }

func (r *mensualidadRepo) DB() *gorm.DB { return r.db }

func (r *mensualidadRepo) Create(ctx context.Context, m *model.Mensualidad) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mensualidadRepo) Save(ctx context.Context, m *model.Mensualidad) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mensualidadRepo) FindByID(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Mensualidad, error) {
	var m model.Mensualidad
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Categoria").Preload("MedioPago").
		Where("id = ? AND parqueadero_id = ?", id, parqueaderoID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mensualidadRepo) FindForUpdateTx(tx *gorm.DB, parqueaderoID, id uuid.UUID) (*model.Mensualidad, error) {
	var m model.Mensualidad
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND parqueadero_id = ?", id, parqueaderoID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mensualidadRepo) SaveTx(tx *gorm.DB, m *model.Mensualidad) error {
	return tx.Save(m).Error
}

func (r *mensualidadRepo) List(ctx context.Context, parqueaderoID uuid.UUID, estado string) ([]model.Mensualidad, error) {
	q := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Categoria").
		Where("parqueadero_id = ?", parqueaderoID)
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	var ms []model.Mensualidad
	err := q.Order("fecha_vencimiento ASC").Find(&ms).Error
	return ms, err
}

func (r *mensualidadRepo) FindActivaPorPlaca(ctx context.Context, parqueaderoID uuid.UUID, placa string, ref time.Time) (*model.Mensualidad, error) {
	var m model.Mensualidad
	err := r.db.WithContext(ctx).
		Joins("JOIN clientes ON clientes.id = mensualidades.cliente_id").
		Where("mensualidades.parqueadero_id = ? AND UPPER(clientes.placa) = UPPER(?) AND mensualidades.estado = ? AND mensualidades.fecha_vencimiento >= ?",
			parqueaderoID, placa, model.MensualidadPagada, ref.Format("2006-01-02")).
		Order("mensualidades.fecha_vencimiento DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *mensualidadRepo) MarkVencidas(ctx context.Context, parqueaderoID uuid.UUID, ref time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Mensualidad{}).
		Where("parqueadero_id = ? AND estado = ? AND fecha_vencimiento < ?",
			parqueaderoID, model.MensualidadPendiente, ref.Format("2006-01-02")).
		Update("estado", model.MensualidadVencida)
	return res.RowsAffected, res.Error
}

func (r *mensualidadRepo) SumPagadas(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) (decimal.Decimal, int64, error) {
	var row struct {
		Total    decimal.Decimal
		Cantidad int64
	}
	err := r.db.WithContext(ctx).Model(&model.Mensualidad{}).
		Select("COALESCE(SUM(monto), 0) AS total, COUNT(*) AS cantidad").
		Where("parqueadero_id = ? AND estado = ? AND fecha_pago >= ? AND fecha_pago < ?",
			parqueaderoID, model.MensualidadPagada, rango.Desde, rango.Hasta).
		Scan(&row).Error
	return row.Total, row.Cantidad, err
}

func (r *mensualidadRepo) SumPagadasPorMedio(ctx context.Context, parqueaderoID, medioPagoID uuid.UUID, rango Rango) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Mensualidad{}).
		Select("COALESCE(SUM(monto), 0)").
		Where("parqueadero_id = ? AND medio_pago_id = ? AND estado = ? AND fecha_pago >= ? AND fecha_pago < ?",
			parqueaderoID, medioPagoID, model.MensualidadPagada, rango.Desde, rango.Hasta).
		Scan(&total).Error
	return total, err
}

func (r *mensualidadRepo) AggPorMedio(ctx context.Context, parqueaderoID uuid.UUID, rango Rango) ([]MedioAgg, error) {
	var rows []MedioAgg
	err := r.db.WithContext(ctx).Model(&model.Mensualidad{}).
		Select("COALESCE(medios_pago.nombre, 'Sin especificar') AS nombre, COALESCE(medios_pago.es_efectivo, false) AS es_efectivo, SUM(mensualidades.monto) AS total, COUNT(*) AS cantidad").
		Joins("LEFT JOIN medios_pago ON medios_pago.id = mensualidades.medio_pago_id").
		Where("mensualidades.parqueadero_id = ? AND mensualidades.estado = ? AND mensualidades.fecha_pago >= ? AND mensualidades.fecha_pago < ?",
			parqueaderoID, model.MensualidadPagada, rango.Desde, rango.Hasta).
		Group("medios_pago.nombre, medios_pago.es_efectivo").
		Scan(&rows).Error
	return rows, err
}
