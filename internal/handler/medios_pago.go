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

type MedioPagoHandler struct {
	medios service.MedioPagoService
}

func NewMedioPagoHandler(medios service.MedioPagoService) *MedioPagoHandler {
	return &MedioPagoHandler{medios: medios}
}

// Listar godoc
// @Summary  Medios de pago del parqueadero
// @Tags     medios-pago
// @Produce  json
// @Security BearerAuth
// @Param    todos query bool false "Incluir medios inactivos"
// @Success  200 {array} dto.MedioPagoResponse
// @Router   /v1/medios-pago [get]
func (h *MedioPagoHandler) Listar(c *gin.Context) {
	p := middleware.GetParqueadero(c)
	soloActivos := c.Query("todos") != "true"
	resp, err := h.medios.Listar(c.Request.Context(), p.ID, soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary  Crear un medio de pago
// @Tags     medios-pago
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.CrearMedioPagoRequest true "Medio de pago"
// @Success  201 {object} dto.MedioPagoResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/medios-pago [post]
func (h *MedioPagoHandler) Crear(c *gin.Context) {
	var req dto.CrearMedioPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.medios.Crear(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary  Actualizar un medio de pago
// @Tags     medios-pago
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID"
// @Param    request body dto.ActualizarMedioPagoRequest true "Medio de pago"
// @Success  200 {object} dto.MedioPagoResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/medios-pago/{id} [put]
func (h *MedioPagoHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	var req dto.ActualizarMedioPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.medios.Actualizar(c.Request.Context(), p.ID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
