package service

import (
	"context"
	"errors"
	"fmt"
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

type MensualidadService interface {
	Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearMensualidadRequest) (*dto.MensualidadResponse, error)
	Listar(ctx context.Context, parqueaderoID uuid.UUID, estado string) ([]dto.MensualidadResponse, error)
	Obtener(ctx context.Context, parqueaderoID, id uuid.UUID) (*dto.MensualidadResponse, error)
	MarcarPagada(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.PagarMensualidadRequest) (*dto.MensualidadResponse, error)
	Cancelar(ctx context.Context, parqueaderoID, id uuid.UUID) (*dto.MensualidadResponse, error)
	// BarrerVencidas flips every lapsed PENDIENTE record to VENCIDO.
	BarrerVencidas(ctx context.Context, parqueaderoID uuid.UUID) (*dto.BarridoResponse, error)
}

type mensualidadService struct {
	mensualidades repository.MensualidadRepository
	clientes      repository.ClienteRepository
	categorias    repository.CategoriaRepository
	medios        repository.MedioPagoRepository
	cache         *cache.Cache
	dispatcher    worker.Dispatcher
	now           func() time.Time
}

func NewMensualidadService(
	mensualidades repository.MensualidadRepository,
	clientes repository.ClienteRepository,
	categorias repository.CategoriaRepository,
	medios repository.MedioPagoRepository,
	c *cache.Cache,
	dispatcher worker.Dispatcher,
	now func() time.Time,
) MensualidadService {
	if now == nil {
		now = time.Now
	}
	return &mensualidadService{
		mensualidades: mensualidades,
		clientes:      clientes,
		categorias:    categorias,
		medios:        medios,
		cache:         c,
		dispatcher:    dispatcher,
		now:           now,
	}
}

func (s *mensualidadService) Crear(ctx context.Context, parqueaderoID uuid.UUID, req dto.CrearMensualidadRequest) (*dto.MensualidadResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, apierror.Validation("cliente_id inválido")
	}
	categoriaID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, apierror.Validation("categoria_id inválido")
	}
	inicio, err := time.Parse("2006-01-02", req.FechaInicio)
	if err != nil {
		return nil, apierror.Validation("fecha_inicio inválida, use el formato AAAA-MM-DD")
	}

	cliente, err := s.clientes.FindByID(ctx, parqueaderoID, clienteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("cliente no encontrado")
		}
		return nil, err
	}
	if !cliente.Activo {
		return nil, apierror.Validation("el cliente está inactivo")
	}
	if _, err := s.mensualidades.FindActivaPorPlaca(ctx, parqueaderoID, cliente.Placa, s.now()); err == nil {
		return nil, apierror.Conflict(fmt.Sprintf("ya existe una mensualidad vigente para la placa %s", cliente.Placa))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat, err := s.categorias.FindByID(ctx, parqueaderoID, categoriaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoría no encontrada")
		}
		return nil, err
	}
	if !cat.EsMensual || cat.TarifaMensual == nil || !cat.TarifaMensual.IsPositive() {
		return nil, apierror.Validation("la categoría no tiene tarifa mensual configurada")
	}

	m := &model.Mensualidad{
		ParqueaderoID:    parqueaderoID,
		ClienteID:        cliente.ID,
		CategoriaID:      cat.ID,
		FechaInicio:      inicio,
		FechaVencimiento: inicio.AddDate(0, 0, diasMensualidad),
		Monto:            cat.TarifaMensual.Round(2),
		Estado:           model.MensualidadPendiente,
		Observaciones:    req.Observaciones,
	}
	if err := s.mensualidades.Create(ctx, m); err != nil {
		return nil, err
	}
	m.Cliente = cliente
	m.Categoria = cat
	resp := s.toResponse(m)
	return &resp, nil
}

func (s *mensualidadService) Listar(ctx context.Context, parqueaderoID uuid.UUID, estado string) ([]dto.MensualidadResponse, error) {
	ms, err := s.mensualidades.List(ctx, parqueaderoID, estado)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MensualidadResponse, 0, len(ms))
	for i := range ms {
		resp = append(resp, s.toResponse(&ms[i]))
	}
	return resp, nil
}

func (s *mensualidadService) Obtener(ctx context.Context, parqueaderoID, id uuid.UUID) (*dto.MensualidadResponse, error) {
	m, err := s.mensualidades.FindByID(ctx, parqueaderoID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("mensualidad no encontrada")
		}
		return nil, err
	}
	resp := s.toResponse(m)
	return &resp, nil
}

func (s *mensualidadService) MarcarPagada(ctx context.Context, parqueaderoID, id uuid.UUID, req dto.PagarMensualidadRequest) (*dto.MensualidadResponse, error) {
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

	var pagada *model.Mensualidad
	err := runTx(ctx, s.mensualidades.DB(), func(tx *gorm.DB) error {
		m, err := s.mensualidades.FindForUpdateTx(tx, parqueaderoID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("mensualidad no encontrada")
			}
			return err
		}
		switch m.Estado {
		case model.MensualidadCancelada:
			// Paying a cancelled contract is a silent no-op.
			pagada = m
			return nil
		case model.MensualidadPagada:
			return apierror.Conflict("la mensualidad ya está pagada")
		case model.MensualidadVencida:
			return apierror.Conflict("la mensualidad está vencida, cree un nuevo período")
		}

		ahora := s.now()
		m.Estado = model.MensualidadPagada
		m.FechaPago = &ahora
		if medio != nil {
			m.MedioPagoID = &medio.ID
		}
		if err := s.mensualidades.SaveTx(tx, m); err != nil {
			return err
		}
		pagada = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if pagada.Estado == model.MensualidadPagada && pagada.FechaPago != nil {
		fecha := pagada.FechaPago.Format("2006-01-02")
		s.cache.Delete(ctx,
			cache.KeyReporteIngresos(parqueaderoID, fecha),
			cache.KeyReporteMedios(parqueaderoID, fecha),
		)
		s.notificarPago(ctx, parqueaderoID, pagada)
	}

	m, err := s.mensualidades.FindByID(ctx, parqueaderoID, pagada.ID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(m)
	return &resp, nil
}

// notificarPago enqueues a receipt email when the client has an address.
func (s *mensualidadService) notificarPago(ctx context.Context, parqueaderoID uuid.UUID, m *model.Mensualidad) {
	if s.dispatcher == nil {
		return
	}
	cliente := m.Cliente
	if cliente == nil {
		var err error
		cliente, err = s.clientes.FindByID(ctx, parqueaderoID, m.ClienteID)
		if err != nil {
			return
		}
	}
	if cliente.Email == nil || *cliente.Email == "" {
		return
	}
	job := worker.EmailJob{
		Para:   *cliente.Email,
		Asunto: "Pago de mensualidad recibido",
		Cuerpo: fmt.Sprintf(
			"Hola %s,\n\nRecibimos el pago de tu mensualidad por $%s.\nVigencia: %s a %s.\n\nGracias por tu preferencia.",
			cliente.Nombre,
			m.Monto.StringFixed(2),
			m.FechaInicio.Format("2006-01-02"),
			m.FechaVencimiento.Format("2006-01-02"),
		),
	}
	if err := s.dispatcher.Enqueue(ctx, worker.QueueEmail, job); err != nil {
		log.Warn().Err(err).Str("mensualidad_id", m.ID.String()).Msg("no se pudo encolar el correo de recibo")
	}
}

func (s *mensualidadService) Cancelar(ctx context.Context, parqueaderoID, id uuid.UUID) (*dto.MensualidadResponse, error) {
	err := runTx(ctx, s.mensualidades.DB(), func(tx *gorm.DB) error {
		m, err := s.mensualidades.FindForUpdateTx(tx, parqueaderoID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("mensualidad no encontrada")
			}
			return err
		}
		if m.Estado == model.MensualidadVencida {
			return apierror.Conflict("una mensualidad vencida no se puede cancelar")
		}
		if m.Estado == model.MensualidadCancelada {
			return nil
		}
		m.Estado = model.MensualidadCancelada
		return s.mensualidades.SaveTx(tx, m)
	})
	if err != nil {
		return nil, err
	}
	return s.Obtener(ctx, parqueaderoID, id)
}

func (s *mensualidadService) BarrerVencidas(ctx context.Context, parqueaderoID uuid.UUID) (*dto.BarridoResponse, error) {
	n, err := s.mensualidades.MarkVencidas(ctx, parqueaderoID, s.now())
	if err != nil {
		return nil, err
	}
	return &dto.BarridoResponse{Vencidas: n}, nil
}

func (s *mensualidadService) toResponse(m *model.Mensualidad) dto.MensualidadResponse {
	resp := dto.MensualidadResponse{
		ID:               m.ID.String(),
		FechaInicio:      m.FechaInicio.Format("2006-01-02"),
		FechaVencimiento: m.FechaVencimiento.Format("2006-01-02"),
		Monto:            m.Monto,
		Estado:           m.Estado,
		EstadoEfectivo:   m.EstadoEfectivo(s.now()),
		Observaciones:    m.Observaciones,
	}
	if m.Cliente != nil {
		resp.Cliente = m.Cliente.Nombre
		resp.ClientePlaca = m.Cliente.Placa
	}
	if m.Categoria != nil {
		resp.Categoria = m.Categoria.Nombre
	}
	if m.FechaPago != nil {
		fp := m.FechaPago.Format(time.RFC3339)
		resp.FechaPago = &fp
	}
	if m.MedioPago != nil {
		resp.MedioPago = &m.MedioPago.Nombre
	}
	return resp
}
