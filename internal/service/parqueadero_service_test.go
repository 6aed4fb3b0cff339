package service

import (
	"context"
	"testing"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeParqueaderoRepo struct {
	parqueaderos map[uuid.UUID]*model.Parqueadero
	asignaciones []*model.UsuarioParqueadero
}

func nuevoFakeParqueaderoRepo() *fakeParqueaderoRepo {
	return &fakeParqueaderoRepo{parqueaderos: make(map[uuid.UUID]*model.Parqueadero)}
}

func (r *fakeParqueaderoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Parqueadero, error) {
	p, ok := r.parqueaderos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeParqueaderoRepo) FindByOwner(_ context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error) {
	for _, p := range r.parqueaderos {
		if p.UsuarioID == usuarioID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParqueaderoRepo) FindByAsignacion(_ context.Context, usuarioID uuid.UUID) (*model.Parqueadero, error) {
	for _, a := range r.asignaciones {
		if a.UsuarioID == usuarioID {
			if p, ok := r.parqueaderos[a.ParqueaderoID]; ok {
				return p, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeParqueaderoRepo) Create(_ context.Context, p *model.Parqueadero) error {
	for _, otro := range r.parqueaderos {
		if otro.UsuarioID == p.UsuarioID {
			return gorm.ErrDuplicatedKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.parqueaderos[p.ID] = p
	return nil
}

func (r *fakeParqueaderoRepo) Save(_ context.Context, p *model.Parqueadero) error {
	r.parqueaderos[p.ID] = p
	return nil
}

func (r *fakeParqueaderoRepo) Asignar(_ context.Context, a *model.UsuarioParqueadero) error {
	for _, otra := range r.asignaciones {
		if otra.UsuarioID == a.UsuarioID && otra.ParqueaderoID == a.ParqueaderoID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.asignaciones = append(r.asignaciones, a)
	return nil
}

func TestResolverPorDueno(t *testing.T) {
	repo := nuevoFakeParqueaderoRepo()
	dueno := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &model.Parqueadero{
		UsuarioID: dueno,
		Empresa:   "Demo",
		Activo:    true,
	}))
	svc := NewParqueaderoService(repo, nil, time.Now)

	p, err := svc.Resolver(context.Background(), dueno)

	require.NoError(t, err)
	assert.Equal(t, "Demo", p.Empresa)
}

func TestResolverPorAsignacion(t *testing.T) {
	repo := nuevoFakeParqueaderoRepo()
	lote := &model.Parqueadero{UsuarioID: uuid.New(), Empresa: "Demo", Activo: true}
	require.NoError(t, repo.Create(context.Background(), lote))
	svc := NewParqueaderoService(repo, nil, time.Now)

	cajero := uuid.New()
	require.NoError(t, svc.AsignarUsuario(context.Background(), cajero, lote.ID))

	p, err := svc.Resolver(context.Background(), cajero)

	require.NoError(t, err)
	assert.Equal(t, lote.ID, p.ID)
}

func TestResolverSinParqueadero(t *testing.T) {
	svc := NewParqueaderoService(nuevoFakeParqueaderoRepo(), nil, time.Now)

	_, err := svc.Resolver(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Equal(t, apierror.KindForbidden, apierror.KindOf(err))
}

func TestResolverParqueaderoInactivo(t *testing.T) {
	repo := nuevoFakeParqueaderoRepo()
	dueno := uuid.New()
	require.NoError(t, repo.Create(context.Background(), &model.Parqueadero{
		UsuarioID: dueno,
		Empresa:   "Demo",
		Activo:    false,
	}))
	svc := NewParqueaderoService(repo, nil, time.Now)

	_, err := svc.Resolver(context.Background(), dueno)

	require.Error(t, err)
	assert.Equal(t, apierror.KindForbidden, apierror.KindOf(err))
}
