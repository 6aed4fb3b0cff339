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

type CategoriaHandler struct {
	categorias service.CategoriaService
}

func NewCategoriaHandler(categorias service.CategoriaService) *CategoriaHandler {
	return &CategoriaHandler{categorias: categorias}
}

// Listar godoc
// @Summary  Categorías de vehículo con sus tarifas
// @Tags     categorias
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} dto.CategoriaResponse
// @Router   /v1/categorias [get]
func (h *CategoriaHandler) Listar(c *gin.Context) {
	p := middleware.GetParqueadero(c)
	resp, err := h.categorias.Listar(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary  Crear una categoría
// @Tags     categorias
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.CrearCategoriaRequest true "Categoría"
// @Success  201 {object} dto.CategoriaResponse
// @Failure  409 {object} apierror.APIError
// @Router   /v1/categorias [post]
func (h *CategoriaHandler) Crear(c *gin.Context) {
	var req dto.CrearCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.categorias.Crear(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Actualizar godoc
// @Summary  Actualizar una categoría
// @Tags     categorias
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "ID"
// @Param    request body dto.ActualizarCategoriaRequest true "Categoría"
// @Success  200 {object} dto.CategoriaResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/categorias/{id} [put]
func (h *CategoriaHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	var req dto.ActualizarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.categorias.Actualizar(c.Request.Context(), p.ID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary  Eliminar una categoría
// @Tags     categorias
// @Security BearerAuth
// @Param    id path string true "ID"
// @Success  204
// @Failure  404 {object} apierror.APIError
// @Router   /v1/categorias/{id} [delete]
func (h *CategoriaHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	p := middleware.GetParqueadero(c)
	if err := h.categorias.Eliminar(c.Request.Context(), p.ID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
