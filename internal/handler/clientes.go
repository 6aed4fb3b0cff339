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

type ClienteHandler struct {
	clientes service.ClienteService
}

func NewClienteHandler(clientes service.ClienteService) *ClienteHandler {
	return &ClienteHandler{clientes: clientes}
}

// Listar godoc
// @Summary  Listar clientes
// @Tags     clientes
// @Produce  json
// @Security BearerAuth
// @Param    todos query bool false "Incluir clientes inactivos"
// @Success  200 {array} dto.ClienteResponse
// @Router   /v1/clientes [get]
func (h *ClienteHandler) Listar(c *gin.Context) {
	p := middleware.GetParqueadero(c)
	soloActivos := c.Query("todos") != "true"
	resp, err := h.clientes.Listar(c.Request.Context(), p.ID, soloActivos)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary  Detalle de un cliente
// @Tags     clientes
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID"
// @Success  200 {object} dto.ClienteResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/clientes/{id} [get]
func (h *ClienteHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.clientes.Obtener(c.Request.Context(), p.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary  Registrar un cliente
// @Tags     clientes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.CrearClienteRequest true "Cliente"
// @Success  201 {object} dto.ClienteResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/clientes [post]
func (h *ClienteHandler) Crear(c *gin.Context) {
	var req dto.CrearClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.clientes.Crear(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary  Actualizar un cliente
// @Tags     clientes
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID"
// @Param    request body dto.ActualizarClienteRequest true "Cliente"
// @Success  200 {object} dto.ClienteResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/clientes/{id} [put]
func (h *ClienteHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	var req dto.ActualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.clientes.Actualizar(c.Request.Context(), p.ID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary  Desactivar un cliente
// @Tags     clientes
// @Security BearerAuth
// @Param    id path string true "ID"
// @Success  204
// @Failure  404 {object} apierror.APIError
// @Router   /v1/clientes/{id} [delete]
func (h *ClienteHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	p := middleware.GetParqueadero(c)
	if err := h.clientes.Desactivar(c.Request.Context(), p.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
