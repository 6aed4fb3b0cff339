package handler

import (
	"net/http"

	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/middleware"
	"github.com/ferrosero91/parking-solupark/internal/service"

	"github.com/gin-gonic/gin"
)

type CajaHandler struct {
	caja service.CajaService
}

func NewCajaHandler(caja service.CajaService) *CajaHandler {
	return &CajaHandler{caja: caja}
}

// Obtener godoc
// @Summary  Estado de la caja de un día
// @Tags     caja
// @Produce  json
// @Security BearerAuth
// @Param    fecha query string false "Fecha AAAA-MM-DD, hoy si se omite"
// @Success  200 {object} dto.CajaResponse
// @Router   /v1/caja [get]
func (h *CajaHandler) Obtener(c *gin.Context) {
	p := middleware.GetParqueadero(c)
	resp, err := h.caja.Obtener(c.Request.Context(), p.ID, c.Query("fecha"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DineroInicial godoc
// @Summary  Fijar el fondo de apertura de la caja
// @Tags     caja
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.DineroInicialRequest true "Fecha y monto"
// @Success  200 {object} dto.CajaResponse
// @Failure  409 {object} apierror.APIError "La caja ya fue cuadrada"
// @Router   /v1/caja/dinero-inicial [put]
func (h *CajaHandler) DineroInicial(c *gin.Context) {
	var req dto.DineroInicialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.caja.EstablecerDineroInicial(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cuadrar godoc
// @Summary  Cerrar la caja del día contra el efectivo contado
// @Tags     caja
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.CuadreRequest true "Fecha y dinero contado"
// @Success  200 {object} dto.CuadreResponse
// @Failure  409 {object} apierror.APIError "La caja ya fue cuadrada"
// @Router   /v1/caja/cuadre [post]
func (h *CajaHandler) Cuadrar(c *gin.Context) {
	var req dto.CuadreRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.caja.Cuadrar(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
