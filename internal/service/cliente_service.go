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

type ClienteService interface {
	Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, parqueaderoID, id uuid.UUID) error
	Listar(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]dto.ClienteResponse, error)
	Obtener(ctx context.Context, parqueaderoID, id uuid.UUID) (*dto.ClienteResponse, error)
}

type clienteService struct {
	clientes repository.ClienteRepository
}

func NewClienteService(clientes repository.ClienteRepository) ClienteService {
	return &clienteService{clientes: clientes}
}

func (s *clienteService) Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	placa := SanitizarPlaca(req.Placa)
	if len(placa) < 3 {
		return nil, apierror.Validation("la placa debe tener al menos 3 caracteres válidos")
	}
	c := &model.Cliente{
		ParqueaderoID: parqueaderoID,
		Nombre:        req.Nombre,
		Documento:     req.Documento,
		Telefono:      req.Telefono,
		Email:         req.Email,
		Direccion:     req.Direccion,
		Placa:         placa,
		Activo:        true,
	}
	if err := s.clientes.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("ya existe un cliente con ese documento")
		}
		return nil, err
	}
	resp := toClienteResponse(c)
	return &resp, nil
}

func (s *clienteService) Actualizar(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.clientes.FindByID(ctx, parqueaderoID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("cliente no encontrado")
		}
		return nil, err
	}
	placa := SanitizarPlaca(req.Placa)
	if len(placa) < 3 {
		return nil, apierror.Validation("la placa debe tener al menos 3 caracteres válidos")
	}
	c.Nombre = req.Nombre
	c.Telefono = req.Telefono
	c.Email = req.Email
	c.Direccion = req.Direccion
	c.Placa = placa
	if err := s.clientes.Save(ctx, c); err != nil {
		return nil, err
	}
	resp := toClienteResponse(c)
	return &resp, nil
}

// Desactivar soft-deletes so historical tickets and mensualidades keep a
// valid reference.
func (s *clienteService) Desactivar(ctx context.Context, parqueaderoID, id uuid.UUID) error {
	c, err := s.clientes.FindByID(ctx, parqueaderoID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("cliente no encontrado")
		}
		return err
	}
	if !c.Activo {
		return nil
	}
	c.Activo = false
	return s.clientes.Save(ctx, c)
}

func (s *clienteService) Listar(ctx context.Context, parqueaderoID uuid.UUID, soloActivos bool) ([]dto.ClienteResponse, error) {
	cs, err := s.clientes.List(ctx, parqueaderoID, soloActivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, 0, len(cs))
	for i := range cs {
		resp = append(resp, toClienteResponse(&cs[i]))
	}
	return resp, nil
}

func (s *clienteService) Obtener(ctx context.Context, parqueaderoID, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.clientes.FindByID(ctx, parqueaderoID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("cliente no encontrado")
		}
		return nil, err
	}
	resp := toClienteResponse(c)
	return &resp, nil
}

func toClienteResponse(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Telefono:  c.Telefono,
		Email:     c.Email,
		Direccion: c.Direccion,
		Placa:     c.Placa,
		Activo:    c.Activo,
	}
}
