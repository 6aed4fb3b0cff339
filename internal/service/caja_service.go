package service

import (
	"context"
	"errors"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/apierror"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaService interface {
	// Obtener is the get-or-create read of the daily register, with the
	// cash revenue recomputed from ticket and mensualidad state. An empty
	// fecha means today in the register's location.
	Obtener(ctx context.Context, parqueaderoID uuid.UUID, fecha string) (*dto.CajaResponse, error)
	EstablecerDineroInicial(ctx context.Context, parqueaderoID uuid.UUID, req dto.DineroInicialRequest) (*dto.CajaResponse, error)
	Cuadrar(ctx context.Context, parqueaderoID uuid.UUID, req dto.CuadreRequest) (*dto.CuadreResponse, error)
}

type cajaService struct {
	cajas         repository.CajaRepository
	tickets       repository.TicketRepository
	mensualidades repository.MensualidadRepository
	medios        repository.MedioPagoRepository
	loc           *time.Location
	now           func() time.Time
}

func NewCajaService(
	cajas repository.CajaRepository,
	tickets repository.TicketRepository,
	mensualidades repository.MensualidadRepository,
	medios repository.MedioPagoRepository,
	loc *time.Location,
	now func() time.Time,
) CajaService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &cajaService{
		cajas:         cajas,
		tickets:       tickets,
		mensualidades: mensualidades,
		medios:        medios,
		loc:           loc,
		now:           now,
	}
}

// fechaCaja resolves the register day in the configured location, so the
// revenue window, the settlement timestamps and the cashier's shift all
// agree on where midnight falls. An empty value means today.
func (s *cajaService) fechaCaja(valor string) (time.Time, error) {
	if valor == "" {
		hoy := s.now().In(s.loc)
		return time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, s.loc), nil
	}
	f, err := time.ParseInLocation("2006-01-02", valor, s.loc)
	if err != nil {
		return time.Time{}, apierror.Validation("fecha inválida, use el formato AAAA-MM-DD")
	}
	return f, nil
}

// ingresos holds the recomputed revenue figures for one register day.
type ingresos struct {
	Efectivo      decimal.Decimal
	Tickets       decimal.Decimal
	Mensualidades decimal.Decimal
}

func (i ingresos) Total() decimal.Decimal { return i.Tickets.Add(i.Mensualidades) }

// recomputar derives the day's revenue. Efectivo only counts settlements
// whose payment method is flagged cash-equivalent; the totals count
// everything.
func (s *cajaService) recomputar(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (ingresos, error) {
	var ing ingresos
	rango := repository.RangoDia(fecha)

	totalTickets, _, err := s.tickets.SumLiquidados(ctx, parqueaderoID, rango)
	if err != nil {
		return ing, err
	}
	totalMens, _, err := s.mensualidades.SumPagadas(ctx, parqueaderoID, rango)
	if err != nil {
		return ing, err
	}
	ing.Tickets = totalTickets
	ing.Mensualidades = totalMens

	efectivo, err := s.medios.FindEfectivo(ctx, parqueaderoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Without a cash method nothing counts toward the drawer.
			ing.Efectivo = decimal.Zero
			return ing, nil
		}
		return ing, err
	}
	efTickets, err := s.tickets.SumLiquidadosPorMedio(ctx, parqueaderoID, efectivo.ID, rango)
	if err != nil {
		return ing, err
	}
	efMens, err := s.mensualidades.SumPagadasPorMedio(ctx, parqueaderoID, efectivo.ID, rango)
	if err != nil {
		return ing, err
	}
	ing.Efectivo = efTickets.Add(efMens)
	return ing, nil
}

func (s *cajaService) getOrCreate(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (*model.Caja, error) {
	c, err := s.cajas.FindPorFecha(ctx, parqueaderoID, fecha)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = &model.Caja{
		ParqueaderoID: parqueaderoID,
		Fecha:         fecha,
		Monto:         decimal.Zero,
		DineroInicial: decimal.Zero,
	}
	if err := s.cajas.Create(ctx, c); err != nil {
		// A concurrent first read may have created the row already.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.cajas.FindPorFecha(ctx, parqueaderoID, fecha)
		}
		return nil, err
	}
	return c, nil
}

func (s *cajaService) Obtener(ctx context.Context, parqueaderoID uuid.UUID, fechaStr string) (*dto.CajaResponse, error) {
	fecha, err := s.fechaCaja(fechaStr)
	if err != nil {
		return nil, err
	}
	c, err := s.getOrCreate(ctx, parqueaderoID, fecha)
	if err != nil {
		return nil, err
	}
	ing, err := s.recomputar(ctx, parqueaderoID, fecha)
	if err != nil {
		return nil, err
	}
	if !c.CuadreRealizado && !c.Monto.Equal(ing.Efectivo) {
		// Refresh under the row lock: a cuadre may have finalized the
		// register since the read above, and a plain Save would write the
		// stale open state back over it.
		err = runTx(ctx, s.cajas.DB(), func(tx *gorm.DB) error {
			bloqueada, err := s.cajas.FindForUpdateTx(tx, parqueaderoID, fecha)
			if err != nil {
				return err
			}
			if !bloqueada.CuadreRealizado {
				bloqueada.Monto = ing.Efectivo
				if err := s.cajas.SaveTx(tx, bloqueada); err != nil {
					return err
				}
			}
			c = bloqueada
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return toCajaResponse(c, ing), nil
}

func (s *cajaService) EstablecerDineroInicial(ctx context.Context, parqueaderoID uuid.UUID, req dto.DineroInicialRequest) (*dto.CajaResponse, error) {
	if req.DineroInicial.IsNegative() {
		return nil, apierror.Validation("el dinero inicial no puede ser negativo")
	}
	fecha, err := s.fechaCaja(req.Fecha)
	if err != nil {
		return nil, err
	}

	if _, err := s.getOrCreate(ctx, parqueaderoID, fecha); err != nil {
		return nil, err
	}
	var c *model.Caja
	err = runTx(ctx, s.cajas.DB(), func(tx *gorm.DB) error {
		bloqueada, err := s.cajas.FindForUpdateTx(tx, parqueaderoID, fecha)
		if err != nil {
			return err
		}
		if bloqueada.CuadreRealizado {
			return apierror.Conflict("la caja de ese día ya fue cuadrada")
		}
		bloqueada.DineroInicial = req.DineroInicial
		if err := s.cajas.SaveTx(tx, bloqueada); err != nil {
			return err
		}
		c = bloqueada
		return nil
	})
	if err != nil {
		return nil, err
	}
	ing, err := s.recomputar(ctx, parqueaderoID, fecha)
	if err != nil {
		return nil, err
	}
	return toCajaResponse(c, ing), nil
}

func (s *cajaService) Cuadrar(ctx context.Context, parqueaderoID uuid.UUID, req dto.CuadreRequest) (*dto.CuadreResponse, error) {
	if req.DineroFinal.IsNegative() {
		return nil, apierror.Validation("el dinero contado no puede ser negativo")
	}
	fecha, err := s.fechaCaja(req.Fecha)
	if err != nil {
		return nil, err
	}

	if _, err := s.getOrCreate(ctx, parqueaderoID, fecha); err != nil {
		return nil, err
	}

	var cerrada *model.Caja
	err = runTx(ctx, s.cajas.DB(), func(tx *gorm.DB) error {
		c, err := s.cajas.FindForUpdateTx(tx, parqueaderoID, fecha)
		if err != nil {
			return err
		}
		if c.CuadreRealizado {
			return apierror.Conflict("la caja de ese día ya fue cuadrada")
		}
		// Recompute after taking the lock so the frozen figure includes
		// every settlement committed up to this point.
		ing, err := s.recomputar(ctx, parqueaderoID, fecha)
		if err != nil {
			return err
		}
		c.Monto = ing.Efectivo
		c.DineroFinal = &req.DineroFinal
		c.CuadreRealizado = true
		if err := s.cajas.SaveTx(tx, c); err != nil {
			return err
		}
		cerrada = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	dif := *cerrada.Diferencia()
	return &dto.CuadreResponse{
		CajaID:         cerrada.ID.String(),
		Fecha:          cerrada.Fecha.Format("2006-01-02"),
		DineroInicial:  cerrada.DineroInicial,
		MontoEfectivo:  cerrada.Monto,
		DineroEsperado: cerrada.DineroInicial.Add(cerrada.Monto),
		DineroFinal:    *cerrada.DineroFinal,
		Diferencia:     dif,
		DiferenciaAbs:  dif.Abs(),
	}, nil
}

func toCajaResponse(c *model.Caja, ing ingresos) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:                 c.ID.String(),
		Fecha:              c.Fecha.Format("2006-01-02"),
		DineroInicial:      c.DineroInicial,
		MontoEfectivo:      c.Monto,
		TotalTickets:       ing.Tickets,
		TotalMensualidades: ing.Mensualidades,
		TotalGeneral:       ing.Total(),
		DineroEsperado:     c.DineroInicial.Add(c.Monto),
		DineroFinal:        c.DineroFinal,
		CuadreRealizado:    c.CuadreRealizado,
		Diferencia:         c.Diferencia(),
	}
	return resp
}
