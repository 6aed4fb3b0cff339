package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parqueaderoServiceStub struct {
	parqueadero *model.Parqueadero
	err         error
}

func (s *parqueaderoServiceStub) Resolver(_ context.Context, _ uuid.UUID) (*model.Parqueadero, error) {
	return s.parqueadero, s.err
}

func (s *parqueaderoServiceStub) InvalidarCache(_ context.Context, _ uuid.UUID) {}

func (s *parqueaderoServiceStub) Crear(_ context.Context, _ *model.Parqueadero) error { return nil }

func (s *parqueaderoServiceStub) AsignarUsuario(_ context.Context, _, _ uuid.UUID) error { return nil }

func conFecha(t *testing.T, fecha time.Time) {
	t.Helper()
	anterior := timeNow
	timeNow = func() time.Time { return fecha }
	t.Cleanup(func() { timeNow = anterior })
}

func ejecutarTenant(svc service.ParqueaderoService, claims *service.Claims) (*httptest.ResponseRecorder, *model.Parqueadero) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()

	var resuelto *model.Parqueadero
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(claimsKey, claims)
		}
	})
	r.Use(TenantResolver(svc))
	r.GET("/ping", func(c *gin.Context) {
		resuelto = GetParqueadero(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(rec, req)
	return rec, resuelto
}

func claimsDePrueba(usuarioID uuid.UUID) *service.Claims {
	return &service.Claims{
		Rol:  "cajero",
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: usuarioID.String(),
		},
	}
}

func parqueaderoDePrueba(fin time.Time) *model.Parqueadero {
	return &model.Parqueadero{
		ID:             uuid.New(),
		UsuarioID:      uuid.New(),
		Empresa:        "Demo",
		Activo:         true,
		SuscripcionFin: &fin,
	}
}

func TestTenantResolverSinClaims(t *testing.T) {
	rec, _ := ejecutarTenant(&parqueaderoServiceStub{}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTenantResolverSinParqueadero(t *testing.T) {
	stub := &parqueaderoServiceStub{err: apierror.Forbidden("el usuario no tiene un parqueadero asignado")}

	rec, _ := ejecutarTenant(stub, claimsDePrueba(uuid.New()))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTenantResolverSuscripcionVencida(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	conFecha(t, ahora)
	stub := &parqueaderoServiceStub{parqueadero: parqueaderoDePrueba(ahora.AddDate(0, 0, -1))}

	rec, _ := ejecutarTenant(stub, claimsDePrueba(uuid.New()))

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestTenantResolverAvisoProximoVencimiento(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	conFecha(t, ahora)
	stub := &parqueaderoServiceStub{parqueadero: parqueaderoDePrueba(ahora.AddDate(0, 0, 5))}

	rec, resuelto := ejecutarTenant(stub, claimsDePrueba(uuid.New()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", rec.Header().Get("X-Suscripcion-Aviso"))
	require.NotNil(t, resuelto)
}

func TestTenantResolverVigenteSinAviso(t *testing.T) {
	ahora := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	conFecha(t, ahora)
	lote := parqueaderoDePrueba(ahora.AddDate(1, 0, 0))
	stub := &parqueaderoServiceStub{parqueadero: lote}

	rec, resuelto := ejecutarTenant(stub, claimsDePrueba(uuid.New()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Suscripcion-Aviso"))
	require.NotNil(t, resuelto)
	assert.Equal(t, lote.ID, resuelto.ID)
}
