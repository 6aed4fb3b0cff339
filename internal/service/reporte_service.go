package service

import (
	"context"
	"sort"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/cache"
	"github.com/ferrosero91/parking-solupark/internal/dto"
	"github.com/ferrosero91/parking-solupark/internal/repository"

	"github.com/google/uuid"
)

type ReporteService interface {
	ResumenIngresos(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (*dto.ResumenIngresosResponse, error)
	ResumenMediosPago(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (*dto.ResumenMediosPagoResponse, error)
}

type reporteService struct {
	tickets       repository.TicketRepository
	mensualidades repository.MensualidadRepository
	cache         *cache.Cache
}

func NewReporteService(
	tickets repository.TicketRepository,
	mensualidades repository.MensualidadRepository,
	c *cache.Cache,
) ReporteService {
	return &reporteService{tickets: tickets, mensualidades: mensualidades, cache: c}
}

func (s *reporteService) ResumenIngresos(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (*dto.ResumenIngresosResponse, error) {
	key := cache.KeyReporteIngresos(parqueaderoID, fecha.Format("2006-01-02"))
	var cached dto.ResumenIngresosResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	rango := repository.RangoDia(fecha)
	totalTickets, nTickets, err := s.tickets.SumLiquidados(ctx, parqueaderoID, rango)
	if err != nil {
		return nil, err
	}
	totalMens, nMens, err := s.mensualidades.SumPagadas(ctx, parqueaderoID, rango)
	if err != nil {
		return nil, err
	}

	resp := &dto.ResumenIngresosResponse{
		Desde:                 rango.Desde.Format("2006-01-02"),
		Hasta:                 rango.Hasta.Format("2006-01-02"),
		TotalTickets:          totalTickets,
		CantidadTickets:       nTickets,
		TotalMensualidades:    totalMens,
		CantidadMensualidades: nMens,
		Total:                 totalTickets.Add(totalMens),
	}
	s.cache.SetJSON(ctx, key, resp, cache.TTLReporte)
	return resp, nil
}

func (s *reporteService) ResumenMediosPago(ctx context.Context, parqueaderoID uuid.UUID, fecha time.Time) (*dto.ResumenMediosPagoResponse, error) {
	key := cache.KeyReporteMedios(parqueaderoID, fecha.Format("2006-01-02"))
	var cached dto.ResumenMediosPagoResponse
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	rango := repository.RangoDia(fecha)
	deTickets, err := s.tickets.AggPorMedio(ctx, parqueaderoID, rango)
	if err != nil {
		return nil, err
	}
	deMens, err := s.mensualidades.AggPorMedio(ctx, parqueaderoID, rango)
	if err != nil {
		return nil, err
	}

	// Merge both sources per payment method name.
	porMedio := make(map[string]*dto.TotalPorMedio)
	acumular := func(rows []repository.MedioAgg) {
		for _, r := range rows {
			m, ok := porMedio[r.Nombre]
			if !ok {
				m = &dto.TotalPorMedio{MedioPago: r.Nombre, EsEfectivo: r.EsEfectivo}
				porMedio[r.Nombre] = m
			}
			m.Total = m.Total.Add(r.Total)
			m.Cantidad += r.Cantidad
		}
	}
	acumular(deTickets)
	acumular(deMens)

	medios := make([]dto.TotalPorMedio, 0, len(porMedio))
	for _, m := range porMedio {
		medios = append(medios, *m)
	}
	sort.Slice(medios, func(i, j int) bool {
		return medios[j].Total.LessThan(medios[i].Total)
	})

	resp := &dto.ResumenMediosPagoResponse{
		Desde:  rango.Desde.Format("2006-01-02"),
		Hasta:  rango.Hasta.Format("2006-01-02"),
		Medios: medios,
	}
	s.cache.SetJSON(ctx, key, resp, cache.TTLReporte)
	return resp, nil
}
