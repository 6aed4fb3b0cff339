package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const parqueaderoKey = "parqueadero"

// avisoDias is the window before subscription expiry in which responses
// carry a warning header.
const avisoDias = 7

// timeNow is swapped in tests.
var timeNow = time.Now

// TenantResolver resolves the caller's parqueadero and blocks requests whose
// subscription has lapsed. Must run after JWTAuth. Near-expiry requests get
// an X-Suscripcion-Aviso header with the days remaining.
func TenantResolver(parqueaderos service.ParqueaderoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("falta el token de autenticación"))
			return
		}
		usuarioID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token inválido o expirado"))
			return
		}

		p, err := parqueaderos.Resolver(c.Request.Context(), usuarioID)
		if err != nil {
			switch apierror.KindOf(err) {
			case apierror.KindForbidden:
				c.AbortWithStatusJSON(http.StatusForbidden, apierror.New(err.Error()))
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("error interno del servidor"))
			}
			return
		}

		ahora := timeNow()
		if !p.SuscripcionVigente(ahora) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, apierror.New("la suscripción del parqueadero está vencida"))
			return
		}
		if dias := p.DiasRestantes(ahora); dias <= avisoDias {
			c.Header("X-Suscripcion-Aviso", strconv.Itoa(dias))
		}

		c.Set(parqueaderoKey, p)
		c.Next()
	}
}

// GetParqueadero returns the tenant resolved for this request. Only valid
// after the Tenant middleware ran.
func GetParqueadero(c *gin.Context) *model.Parqueadero {
	v, ok := c.Get(parqueaderoKey)
	if !ok {
		return nil
	}
	p, _ := v.(*model.Parqueadero)
	return p
}
