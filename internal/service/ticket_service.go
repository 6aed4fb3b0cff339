package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/cache"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/repository"
	"github.com/ferrosero91/parking-solupark/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// diasMensualidad is the length of the monthly window granted on entry for
// monthly categories.
const diasMensualidad = 30

type TicketService interface {
	Ingresar(ctx context.Context, parqueaderoID uuid.UUID, req dto.IngresoRequest) (*dto.TicketResponse, error)
	Cotizar(ctx context.Context, parqueaderoID uuid.UUID, identificador string) (*dto.CotizacionResponse, error)
	Liquidar(ctx context.Context, parqueaderoID uuid.UUID, req dto.LiquidacionRequest) (*dto.LiquidacionResponse, error)
	ListarAbiertos(ctx context.Context, parqueaderoID uuid.UUID) ([]dto.TicketResponse, error)
	Obtener(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Ticket, error)
}

type ticketService struct {
	tickets    repository.TicketRepository
	categorias repository.CategoriaRepository
	medios     repository.MedioPagoRepository
	cache      *cache.Cache
	dispatcher worker.Dispatcher
	now        func() time.Time
}

func NewTicketService(
	tickets repository.TicketRepository,
	categorias repository.CategoriaRepository,
	medios repository.MedioPagoRepository,
	c *cache.Cache,
	dispatcher worker.Dispatcher,
	now func() time.Time,
) TicketService {
	if now == nil {
		now = time.Now
	}
	return &ticketService{
		tickets:    tickets,
		categorias: categorias,
		medios:     medios,
		cache:      c,
		dispatcher: dispatcher,
		now:        now,
	}
}

// SanitizarPlaca normalizes a plate to uppercase keeping only letters,
// digits and dashes, so "abc-12 3" and "ABC123" compare predictably.
func SanitizarPlaca(placa string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(placa)) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *ticketService) Ingresar(ctx context.Context, parqueaderoID uuid.UUID, req dto.IngresoRequest) (*dto.TicketResponse, error) {
	placa := SanitizarPlaca(req.Placa)
	if len(placa) < 3 {
		return nil, apierror.Validation("la placa debe tener al menos 3 caracteres válidos")
	}

	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, apierror.Validation("categoria_id inválido")
	}
	cat, err := s.categorias.FindByID(ctx, parqueaderoID, categoriaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoría no encontrada")
		}
		return nil, err
	}

	if _, err := s.tickets.FindAbiertoPorPlaca(ctx, parqueaderoID, placa); err == nil {
		return nil, apierror.Conflict(fmt.Sprintf("ya existe un vehículo activo con la placa %s", placa))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entrada := s.now()
	t := &model.Ticket{
		ParqueaderoID: parqueaderoID,
		CategoriaID:   cat.ID,
		Placa:         placa,
		Color:         req.Color,
		Marca:         req.Marca,
		Cascos:        req.Cascos,
		HoraEntrada:   entrada,
	}
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.Validation("cliente_id inválido")
		}
		t.ClienteID = &cid
	}
	if cat.EsMensual {
		venc := entrada.AddDate(0, 0, diasMensualidad)
		t.VencimientoMensual = &venc
	}

	if err := s.tickets.Create(ctx, t); err != nil {
		// The partial unique index over open tickets closes the race the
		// pre-check above leaves open.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict(fmt.Sprintf("ya existe un vehículo activo con la placa %s", placa))
		}
		return nil, err
	}
	t.Categoria = cat

	if s.dispatcher != nil {
		job := worker.BarcodeJob{TicketID: t.ID.String(), Placa: t.Placa}
		if err := s.dispatcher.Enqueue(ctx, worker.QueueBarcode, job); err != nil {
			log.Warn().Err(err).Str("ticket_id", t.ID.String()).Msg("no se pudo encolar el código de barras")
		}
	}

	resp := toTicketResponse(t)
	return &resp, nil
}

// buscarAbierto resolves an open ticket by plate first, then by the ticket
// ID printed in the barcode.
func (s *ticketService) buscarAbierto(ctx context.Context, parqueaderoID uuid.UUID, identificador string) (*model.Ticket, error) {
	placa := SanitizarPlaca(identificador)
	if placa != "" {
		t, err := s.tickets.FindAbiertoPorPlaca(ctx, parqueaderoID, placa)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	if id, err := uuid.Parse(strings.TrimSpace(identificador)); err == nil {
		t, err := s.tickets.FindAbiertoPorID(ctx, parqueaderoID, id)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, apierror.NotFound("no hay ticket activo para ese identificador")
}

func (s *ticketService) Cotizar(ctx context.Context, parqueaderoID uuid.UUID, identificador string) (*dto.CotizacionResponse, error) {
	t, err := s.buscarAbierto(ctx, parqueaderoID, identificador)
	if err != nil {
		return nil, err
	}
	cat := t.Categoria
	if cat == nil {
		cat, err = s.categorias.FindByID(ctx, parqueaderoID, t.CategoriaID)
		if err != nil {
			return nil, err
		}
	}

	ahora := s.now()
	monto, err := CalcularTarifa(cat, t.HoraEntrada, ahora, t.VencimientoMensual)
	if err != nil {
		return nil, err
	}
	horas, minutos := Duracion(t.HoraEntrada, ahora)
	return &dto.CotizacionResponse{
		TicketID:    t.ID.String(),
		Placa:       t.Placa,
		HoraEntrada: t.HoraEntrada.Format(time.RFC3339),
		Monto:       monto,
		Duracion:    dto.DuracionResponse{Horas: horas, Minutos: minutos},
	}, nil
}

func (s *ticketService) Liquidar(ctx context.Context, parqueaderoID uuid.UUID, req dto.LiquidacionRequest) (*dto.LiquidacionResponse, error) {
	abierto, err := s.buscarAbierto(ctx, parqueaderoID, req.Identificador)
	if err != nil {
		return nil, err
	}
	cat, err := s.categorias.FindByID(ctx, parqueaderoID, abierto.CategoriaID)
	if err != nil {
		return nil, err
	}

	var medio *model.MedioPago
	if req.MedioPagoID != nil {
		mid, err := uuid.Parse(*req.MedioPagoID)
		if err != nil {
			return nil, apierror.Validation("medio_pago_id inválido")
		}
		medio, err = s.medios.FindByID(ctx, parqueaderoID, mid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("medio de pago no encontrado")
			}
			return nil, err
		}
	} else if m, err := s.medios.FindEfectivo(ctx, parqueaderoID); err == nil {
		medio = m
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var liquidado *model.Ticket
	err = runTx(ctx, s.tickets.DB(), func(tx *gorm.DB) error {
		t, err := s.tickets.FindAbiertoForUpdateTx(tx, parqueaderoID, abierto.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("el ticket ya fue liquidado o no existe")
			}
			return err
		}

		salida := s.now()
		monto, err := CalcularTarifa(cat, t.HoraEntrada, salida, t.VencimientoMensual)
		if err != nil {
			return err
		}
		if req.MontoRecibido != nil && req.MontoRecibido.LessThan(monto) {
			return apierror.Validation("el monto recibido es menor al total a pagar")
		}

		t.HoraSalida = &salida
		t.MontoPagado = &monto
		if medio != nil {
			t.MedioPagoID = &medio.ID
		}
		if err := s.tickets.SaveTx(tx, t); err != nil {
			return err
		}
		liquidado = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	monto := *liquidado.MontoPagado
	resp := &dto.LiquidacionResponse{Monto: monto}
	if req.MontoRecibido != nil {
		cambio := req.MontoRecibido.Sub(monto)
		resp.MontoRecibido = req.MontoRecibido
		resp.Cambio = &cambio
	}

	liquidado.Categoria = cat
	liquidado.MedioPago = medio
	resp.Ticket = toTicketResponse(liquidado)

	fecha := liquidado.HoraSalida.Format("2006-01-02")
	s.cache.Delete(ctx,
		cache.KeyReporteIngresos(parqueaderoID, fecha),
		cache.KeyReporteMedios(parqueaderoID, fecha),
	)
	return resp, nil
}

func (s *ticketService) ListarAbiertos(ctx context.Context, parqueaderoID uuid.UUID) ([]dto.TicketResponse, error) {
	tickets, err := s.tickets.ListAbiertos(ctx, parqueaderoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		resp = append(resp, toTicketResponse(&tickets[i]))
	}
	return resp, nil
}

func (s *ticketService) Obtener(ctx context.Context, parqueaderoID, id uuid.UUID) (*model.Ticket, error) {
	t, err := s.tickets.FindByID(ctx, parqueaderoID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("ticket no encontrado")
		}
		return nil, err
	}
	return t, nil
}

func toTicketResponse(t *model.Ticket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:          t.ID.String(),
		Placa:       t.Placa,
		Color:       t.Color,
		Marca:       t.Marca,
		Cascos:      t.Cascos,
		HoraEntrada: t.HoraEntrada.Format(time.RFC3339),
		MontoPagado: t.MontoPagado,
	}
	if t.Categoria != nil {
		resp.Categoria = t.Categoria.Nombre
	}
	if t.HoraSalida != nil {
		salida := t.HoraSalida.Format(time.RFC3339)
		resp.HoraSalida = &salida
	}
	if t.MedioPago != nil {
		resp.MedioPago = &t.MedioPago.Nombre
	}
	if t.VencimientoMensual != nil {
		venc := t.VencimientoMensual.Format(time.RFC3339)
		resp.VencimientoMensual = &venc
	}
	return resp
}
