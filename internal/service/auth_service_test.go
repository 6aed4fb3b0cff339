package service

import (
	"context"
	"testing"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func nuevoFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, otro := range r.usuarios {
		if otro.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func nuevoAuthFixture(t *testing.T) (AuthService, *fakeUsuarioRepo, *reloj) {
	t.Helper()
	repo := nuevoFakeUsuarioRepo()
	clock := nuevoReloj(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &model.Usuario{
		Username:     "cajero1",
		Nombre:       "Cajero Uno",
		PasswordHash: string(hash),
		Rol:          "cajero",
		Activo:       true,
	}))

	svc := NewAuthService(repo, "clave-de-prueba", 8*time.Hour, 24*time.Hour, clock.Now)
	return svc, repo, clock
}

func TestLoginCorrecto(t *testing.T) {
	svc, _, _ := nuevoAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreta"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "cajero", resp.User.Rol)

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "cajero", claims.Rol)
}

func TestLoginContrasenaIncorrecta(t *testing.T) {
	svc, _, _ := nuevoAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "otra"})

	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo, _ := nuevoAuthFixture(t)
	for _, u := range repo.usuarios {
		u.Activo = false
	}

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreta"})

	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestRefreshNoSirveComoAccessToken(t *testing.T) {
	svc, _, _ := nuevoAuthFixture(t)
	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreta"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(resp.RefreshToken)

	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestRefreshEmiteNuevosTokens(t *testing.T) {
	svc, _, _ := nuevoAuthFixture(t)
	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreta"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: resp.RefreshToken})

	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
}

func TestAccessTokenExpirado(t *testing.T) {
	svc, _, clock := nuevoAuthFixture(t)
	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "secreta"})
	require.NoError(t, err)

	clock.Avanzar(9 * time.Hour)

	_, err = svc.ValidateAccessToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnauthorized, apierror.KindOf(err))
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	svc, _, _ := nuevoAuthFixture(t)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "cajero1",
		Password: "loquesea",
		Nombre:   "Otro",
		Rol:      "cajero",
	})

	require.Error(t, err)
	assert.Equal(t, apierror.KindConflict, apierror.KindOf(err))
}
