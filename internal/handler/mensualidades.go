package handler

import (
	"net/http"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/middleware"
	"github.com/ferrosero91/parking-solupark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MensualidadHandler struct {
	mensualidades service.MensualidadService
}

func NewMensualidadHandler(mensualidades service.MensualidadService) *MensualidadHandler {
	return &MensualidadHandler{mensualidades: mensualidades}
}

func (h *MensualidadHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// Crear godoc
// @Summary  Crear una mensualidad
// @Tags     mensualidades
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.CrearMensualidadRequest true "Mensualidad"
// @Success  201 {object} dto.MensualidadResponse
// @Router   /v1/mensualidades [post]
func (h *MensualidadHandler) Crear(c *gin.Context) {
	var req dto.CrearMensualidadRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.mensualidades.Crear(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Listar mensualidades
// @Tags     mensualidades
// @Produce  json
// @Security BearerAuth
// @Param    estado query string false "Filtro por estado persistido"
// @Success  200 {array} dto.MensualidadResponse
// @Router   /v1/mensualidades [get]
func (h *MensualidadHandler) Listar(c *gin.Context) {
	p := middleware.GetParqueadero(c)
	resp, err := h.mensualidades.Listar(c.Request.Context(), p.ID, c.Query("estado"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary  Detalle de una mensualidad
// @Tags     mensualidades
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID"
// @Success  200 {object} dto.MensualidadResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/mensualidades/{id} [get]
func (h *MensualidadHandler) Obtener(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.mensualidades.Obtener(c.Request.Context(), p.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pagar godoc
// @Summary  Marcar una mensualidad como pagada
// @Tags     mensualidades
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID"
// @Param    request body dto.PagarMensualidadRequest false "Medio de pago"
// @Success  200 {object} dto.MensualidadResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/mensualidades/pagar/{id} [post]
func (h *MensualidadHandler) Pagar(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	var req dto.PagarMensualidadRequest
	if c.Request.ContentLength > 0 && !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.mensualidades.MarcarPagada(c.Request.Context(), p.ID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary  Cancelar una mensualidad
// @Tags     mensualidades
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID"
// @Success  200 {object} dto.MensualidadResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/mensualidades/cancelar/{id} [post]
func (h *MensualidadHandler) Cancelar(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.mensualidades.Cancelar(c.Request.Context(), p.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Barrer godoc
// @Summary  Vencer en lote las mensualidades pendientes caducadas
// @Tags     mensualidades
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} dto.BarridoResponse
// @Router   /v1/mensualidades/barrer [post]
func (h *MensualidadHandler) Barrer(c *gin.Context) {
	p := middleware.GetParqueadero(c)
	resp, err := h.mensualidades.BarrerVencidas(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
