package handler

import (
	"net/http"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/middleware"
	"github.com/ferrosero91/parking-solupark/internal/service"

	"github.com/gin-gonic/gin"
)

type ReporteHandler struct {
	reportes service.ReporteService
	now      func() time.Time
}

func NewReporteHandler(reportes service.ReporteService, now func() time.Time) *ReporteHandler {
	if now == nil {
		now = time.Now
	}
	return &ReporteHandler{reportes: reportes, now: now}
}

func (h *ReporteHandler) fecha(c *gin.Context) (time.Time, bool) {
	if q := c.Query("fecha"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("fecha inválida, use el formato AAAA-MM-DD"))
			return time.Time{}, false
		}
		return parsed, true
	}
	return h.now(), true
}

// Ingresos godoc
// @Summary  Resumen de ingresos de un día
// @Tags     reportes
// @Produce  json
// @Security BearerAuth
// @Param    fecha query string false "Fecha AAAA-MM-DD, hoy si se omite"
// @Success  200 {object} dto.ResumenIngresosResponse
// @Router   /v1/reportes/ingresos [get]
func (h *ReporteHandler) Ingresos(c *gin.Context) {
	fecha, ok := h.fecha(c)
	if !ok {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.reportes.ResumenIngresos(c.Request.Context(), p.ID, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MediosPago godoc
// @Summary  Ingresos de un día desglosados por medio de pago
// @Tags     reportes
// @Produce  json
// @Security BearerAuth
// @Param    fecha query string false "Fecha AAAA-MM-DD, hoy si se omite"
// @Success  200 {object} dto.ResumenMediosPagoResponse
// @Router   /v1/reportes/medios-pago [get]
func (h *ReporteHandler) MediosPago(c *gin.Context) {
	fecha, ok := h.fecha(c)
	if !ok {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.reportes.ResumenMediosPago(c.Request.Context(), p.ID, fecha)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
