package service

import (
	"context"
	"errors"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedioPagoService interface {
	Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearMedioPagoRequest) (*dto.MedioPagoResponse, error)
	Actualizar(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.ActualizarMedioPagoRequest) (*dto.MedioPagoResponse, error)
	Listar(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]dto.MedioPagoResponse, error)
}

type medioPagoService struct {
	medios repository.MedioPagoRepository
}

func NewMedioPagoService(medios repository.MedioPagoRepository) MedioPagoService {
	return &medioPagoService{medios: medios}
}

func (s *medioPagoService) Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearMedioPagoRequest) (*dto.MedioPagoResponse, error) {
	m := &model.MedioPago{
		ParqueaderoID: parqueaderoID,
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		EsEfectivo:    req.EsEfectivo,
		Activo:        true,
		Orden:         req.Orden,
	}
	if err := s.medios.Create(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe un medio de pago con ese nombre")
		}
		return nil, err
	}
	resp := toMedioPagoResponse(m)
	return &resp, nil
}

func (s *medioPagoService) Actualizar(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.ActualizarMedioPagoRequest) (*dto.MedioPagoResponse, error) {
	m, err := s.medios.FindByID(ctx, parqueaderoID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("medio de pago no encontrado")
		}
		return nil, err
	}
	m.Nombre = req.Nombre
	m.Descripcion = req.Descripcion
	m.EsEfectivo = req.EsEfectivo
	m.Activo = req.Activo
	m.Orden = req.Orden
	if err := s.medios.Save(ctx, m); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe un medio de pago con ese nombre")
		}
		return nil, err
	}
	resp := toMedioPagoResponse(m)
	return &resp, nil
}

func (s *medioPagoService) Listar(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]dto.MedioPagoResponse, error) {
	ms, err := s.medios.List(ctx, parqueaderoID, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MedioPagoResponse, 0, len(ms))
	for i := range ms {
		resp = append(resp, toMedioPagoResponse(&ms[i]))
	}
	return resp, nil
}

func toMedioPagoResponse(m *model.MedioPago) dto.MedioPagoResponse {
	return dto.MedioPagoResponse{
		ID:          m.ID.String(),
		Nombre:      m.Nombre,
		Descripcion: m.Descripcion,
		EsEfectivo:  m.EsEfectivo,
		Activo:      m.Activo,
		Orden:       m.Orden,
	}
}
