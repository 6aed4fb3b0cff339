package service

import (
	"context"
	"errors"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/cache"
	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParqueaderoService interface {
	// Resolver maps an authenticated user to their parqueadero: owners
	// through the direct link, staff through the assignment table. The
	// result is cached for five minutes.
	Resolver(ctx context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error)
	InvalidarCache(ctx context.Context, usuarioID uuid.UUID)
	Crear(ctx context.Context, p *model.Parqueadero) error
	AsignarUsuario(ctx context.Context, usuarioID, parqueaderoID uuid.UUID) error
}

type parqueaderoService struct {
	parqueaderos repository.ParqueaderoRepository
	cache        *cache.Cache
	now          func() time.Time
}

func NewParqueaderoService(parqueaderos repository.ParqueaderoRepository, c *cache.Cache, now func() time.Time) ParqueaderoService {
	if now == nil {
		now = time.Now
	}
	return &parqueaderoService{parqueaderos: parqueaderos, cache: c, now: now}
}

func (s *parqueaderoService) Resolver(ctx context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error) {
	key := cache.KeyTenant(usuarioID)
	var cached model.Parqueadero
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := s.parqueaderos.FindByOwner(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p, err = s.parqueaderos.FindByAsignacion(ctx, usuarioID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Forbidden("el usuario no tiene un parqueadero asignado")
		}
		return nil, err
	}
	if !p.Activo {
		return nil, apierror.Forbidden("el parqueadero está inactivo")
	}

	s.cache.SetJSON(ctx, key, p, cache.TTLTenant)
	return p, nil
}

func (s *parqueaderoService) InvalidarCache(ctx context.Context, usuarioID uuid.UUID) {
	s.cache.Delete(ctx, cache.KeyTenant(usuarioID))
}

func (s *parqueaderoService) Crear(ctx context.Context, p *model.Parqueadero) error {
	if err := s.parqueaderos.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.Conflict("el usuario ya es dueño de un parqueadero")
		}
		return err
	}
	return nil
}

func (s *parqueaderoService) AsignarUsuario(ctx context.Context, usuarioID, parqueaderoID uuid.UUID) error {
	a := &model.UsuarioParqueadero{UsuarioID: usuarioID, ParqueaderoID: parqueaderoID}
	if err := s.parqueaderos.Asignar(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apierror.Conflict("el usuario ya está asignado a ese parqueadero")
		}
		return err
	}
	s.InvalidarCache(ctx, usuarioID)
	return nil
}
