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

type CategoriaService interface {
	Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, parqueaderoID, id uuid.UUID) error
	Listar(ctx context.Context, parqueaderoID uuid.UUID) ([]dto.CategoriaResponse, error)
}

type categoriaService struct {
	categorias repository.CategoriaRepository
}

func NewCategoriaService(categorias repository.CategoriaRepository) CategoriaService {
	return &categoriaService{categorias: categorias}
}

func (s *categoriaService) Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if req.EsMensual && (req.TarifaMensual == nil || !req.TarifaMensual.IsPositive()) {
		return nil, apierror.Validation("una categoría mensual requiere una tarifa mensual positiva")
	}
	c := &model.Categoria{
		ParqueaderoID: parqueaderoID,
		Nombre:        req.Nombre,
		PrimeraHora:   req.PrimeraHora,
		HoraAdicional: req.HoraAdicional,
		EsMensual:     req.EsMensual,
		TarifaMensual: req.TarifaMensual,
	}
	if err := s.categorias.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe una categoría con ese nombre")
		}
		return nil, err
	}
	resp := toCategoriaResponse(c)
	return &resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	if req.EsMensual && (req.TarifaMensual == nil || !req.TarifaMensual.IsPositive()) {
		return nil, apierror.Validation("una categoría mensual requiere una tarifa mensual positiva")
	}
	c, err := s.categorias.FindByID(ctx, parqueaderoID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoría no encontrada")
		}
		return nil, err
	}
	c.Nombre = req.Nombre
	c.PrimeraHora = req.PrimeraHora
	c.HoraAdicional = req.HoraAdicional
	c.EsMensual = req.EsMensual
	c.TarifaMensual = req.TarifaMensual
	if err := s.categorias.Save(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe una categoría con ese nombre")
		}
		return nil, err
	}
	resp := toCategoriaResponse(c)
	return &resp, nil
}

func (s *categoriaService) Eliminar(ctx context.Context, parqueaderoID, id uuid.UUID) error {
	if err := s.categorias.Delete(ctx, parqueaderoID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("categoría no encontrada")
		}
		return err
	}
	return nil
}

func (s *categoriaService) Listar(ctx context.Context, parqueaderoID uuid.UUID) ([]dto.CategoriaResponse, error) {
	cs, err := s.categorias.List(ctx, parqueaderoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, 0, len(cs))
	for i := range cs {
		resp = append(resp, toCategoriaResponse(&cs[i]))
	}
	return resp, nil
}

func toCategoriaResponse(c *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:            c.ID.String(),
		Nombre:        c.Nombre,
		PrimeraHora:   c.PrimeraHora,
		HoraAdicional: c.HoraAdicional,
		EsMensual:     c.EsMensual,
		TarifaMensual: c.TarifaMensual,
	}
}
