package handler

import (
	"net/http"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/infra"
	"github.com/ferrosero91/parking-solupark/internal/middleware"
	"github.com/ferrosero91/parking-solupark/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	tickets service.TicketService
	recibos *infra.ReciboPDF
}

func NewTicketHandler(tickets service.TicketService, recibos *infra.ReciboPDF) *TicketHandler {
	return &TicketHandler{tickets: tickets, recibos: recibos}
}

// Ingresar godoc
// @Summary  Registrar el ingreso de un vehículo
// @Tags     tickets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.IngresoRequest true "Datos del vehículo"
// @Success  201 {object} dto.TicketResponse
// @Failure  409 {object} apierror.APIError "Ya hay un ticket activo para la placa"
// @Router   /v1/tickets [post]
func (h *TicketHandler) Ingresar(c *gin.Context) {
	var req dto.IngresoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.tickets.Ingresar(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarAbiertos godoc
// @Summary  Vehículos actualmente parqueados
// @Tags     tickets
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} dto.TicketResponse
// @Router   /v1/tickets/abiertos [get]
func (h *TicketHandler) ListarAbiertos(c *gin.Context) {
	p := middleware.GetParqueadero(c)
	resp, err := h.tickets.ListarAbiertos(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cotizar godoc
// @Summary  Cotizar la salida de un vehículo sin liquidar
// @Tags     tickets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.CotizacionRequest true "Placa o ID del ticket"
// @Success  200 {object} dto.CotizacionResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/tickets/cotizar [post]
func (h *TicketHandler) Cotizar(c *gin.Context) {
	var req dto.CotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.tickets.Cotizar(c.Request.Context(), p.ID, req.Identificador)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Liquidar godoc
// @Summary  Liquidar la salida de un vehículo
// @Tags     tickets
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    request body dto.LiquidacionRequest true "Identificador y pago"
// @Success  200 {object} dto.LiquidacionResponse
// @Failure  404 {object} apierror.APIError "El ticket ya fue liquidado o no existe"
// @Router   /v1/tickets/liquidar [post]
func (h *TicketHandler) Liquidar(c *gin.Context) {
	var req dto.LiquidacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	p := middleware.GetParqueadero(c)
	resp, err := h.tickets.Liquidar(c.Request.Context(), p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recibo godoc
// @Summary  Recibo PDF de un ticket liquidado
// @Tags     tickets
// @Produce  application/pdf
// @Security BearerAuth
// @Param    id path string true "ID del ticket"
// @Success  200 {file} binary
// @Failure  404 {object} apierror.APIError
// @Router   /v1/tickets/recibo/{id} [get]
func (h *TicketHandler) Recibo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("id inválido"))
		return
	}
	p := middleware.GetParqueadero(c)
	t, err := h.tickets.Obtener(c.Request.Context(), p.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	pdf, err := h.recibos.Generar(t, p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="recibo-`+t.Placa+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
