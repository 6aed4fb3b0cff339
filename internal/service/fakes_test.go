package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ferrosero91/parking-solupark/internal/model"
	"github.com/ferrosero91/parking-solupark/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// reloj is a controllable clock for the services under test.
type reloj struct {
	mu sync.Mutex
	t  time.Time
}

func nuevoReloj(t time.Time) *reloj { return &reloj{t: t} }

func (r *reloj) Now() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t
}

func (r *reloj) Avanzar(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t = r.t.Add(d)
}

func (r *reloj) Fijar(t time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t = t
}

// fakeDispatcher records enqueued jobs.
type fakeDispatcher struct {
	mu   sync.Mutex
	jobs []struct {
		Queue   string
		Payload any
	}
}

func (d *fakeDispatcher) Enqueue(_ context.Context, queue string, payload any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs = append(d.jobs, struct {
		Queue   string
		Payload any
	}{queue, payload})
	return nil
}

func (d *fakeDispatcher) porCola(queue string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, j := range d.jobs {
		if j.Queue == queue {
			n++
		}
	}
	return n
}

func enRango(t time.Time, r repository.Rango) bool {
	return !t.Before(r.Desde) && t.Before(r.Hasta)
}

// ─── tickets ─────────────────────────────────────────────────────────────────

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[uuid.UUID]*model.Ticket
	medios  *fakeMedioPagoRepo
}

func nuevoFakeTicketRepo(medios *fakeMedioPagoRepo) *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uuid.UUID]*model.Ticket), medios: medios}
}

func (r *fakeTicketRepo) DB() *gorm.DB { return nil }

func (r *fakeTicketRepo) Create(_ context.Context, t *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, otro := range r.tickets {
		if otro.ParqueaderoID == t.ParqueaderoID && otro.HoraSalida == nil &&
			strings.EqualFold(otro.Placa, t.Placa) {
			return gorm.ErrDuplicatedKey
		}
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tickets[t.ID] = t
	return nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, pid, id uuid.UUID) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok || t.ParqueaderoID != pid {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTicketRepo) FindAbiertoPorPlaca(_ context.Context, pid uuid.UUID, placa string) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		if t.ParqueaderoID == pid && t.HoraSalida == nil && strings.EqualFold(t.Placa, placa) {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTicketRepo) FindAbiertoPorID(_ context.Context, pid, id uuid.UUID) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tickets[id]
	if !ok || t.ParqueaderoID != pid || t.HoraSalida != nil {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTicketRepo) ListAbiertos(_ context.Context, pid uuid.UUID) ([]model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Ticket
	for _, t := range r.tickets {
		if t.ParqueaderoID == pid && t.HoraSalida == nil {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindAbiertoForUpdateTx(_ *gorm.DB, pid, id uuid.UUID) (*model.Ticket, error) {
	return r.FindAbiertoPorID(context.Background(), pid, id)
}

func (r *fakeTicketRepo) SaveTx(_ *gorm.DB, t *model.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickets[t.ID] = t
	return nil
}

func (r *fakeTicketRepo) UpdateBarcodePath(_ context.Context, id uuid.UUID, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tickets[id]; ok {
		t.BarcodePath = &path
	}
	return nil
}

func (r *fakeTicketRepo) SumLiquidados(_ context.Context, pid uuid.UUID, rango repository.Rango) (decimal.Decimal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	var n int64
	for _, t := range r.tickets {
		if t.ParqueaderoID == pid && t.HoraSalida != nil && t.MontoPagado != nil && enRango(*t.HoraSalida, rango) {
			total = total.Add(*t.MontoPagado)
			n++
		}
	}
	return total, n, nil
}

func (r *fakeTicketRepo) SumLiquidadosPorMedio(_ context.Context, pid, mid uuid.UUID, rango repository.Rango) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, t := range r.tickets {
		if t.ParqueaderoID == pid && t.HoraSalida != nil && t.MontoPagado != nil &&
			t.MedioPagoID != nil && *t.MedioPagoID == mid && enRango(*t.HoraSalida, rango) {
			total = total.Add(*t.MontoPagado)
		}
	}
	return total, nil
}

func (r *fakeTicketRepo) AggPorMedio(_ context.Context, pid uuid.UUID, rango repository.Rango) ([]repository.MedioAgg, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg := make(map[string]*repository.MedioAgg)
	for _, t := range r.tickets {
		if t.ParqueaderoID != pid || t.HoraSalida == nil || t.MontoPagado == nil || !enRango(*t.HoraSalida, rango) {
			continue
		}
		nombre := "Sin especificar"
		efectivo := false
		if t.MedioPagoID != nil && r.medios != nil {
			if m, err := r.medios.FindByID(context.Background(), pid, *t.MedioPagoID); err == nil {
				nombre = m.Nombre
				efectivo = m.EsEfectivo
			}
		}
		row, ok := agg[nombre]
		if !ok {
			row = &repository.MedioAgg{Nombre: nombre, EsEfectivo: efectivo}
			agg[nombre] = row
		}
		row.Total = row.Total.Add(*t.MontoPagado)
		row.Cantidad++
	}
	out := make([]repository.MedioAgg, 0, len(agg))
	for _, row := range agg {
		out = append(out, *row)
	}
	return out, nil
}

// ─── categorías ──────────────────────────────────────────────────────────────

type fakeCategoriaRepo struct {
	mu         sync.Mutex
	categorias map[uuid.UUID]*model.Categoria
}

func nuevoFakeCategoriaRepo() *fakeCategoriaRepo {
	return &fakeCategoriaRepo{categorias: make(map[uuid.UUID]*model.Categoria)}
}

func (r *fakeCategoriaRepo) Create(_ context.Context, c *model.Categoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, otra := range r.categorias {
		if otra.ParqueaderoID == c.ParqueaderoID && otra.Nombre == c.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categorias[c.ID] = c
	return nil
}

func (r *fakeCategoriaRepo) Save(_ context.Context, c *model.Categoria) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categorias[c.ID] = c
	return nil
}

func (r *fakeCategoriaRepo) Delete(_ context.Context, pid, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categorias[id]
	if !ok || c.ParqueaderoID != pid {
		return gorm.ErrRecordNotFound
	}
	delete(r.categorias, id)
	return nil
}

func (r *fakeCategoriaRepo) FindByID(_ context.Context, pid, id uuid.UUID) (*model.Categoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categorias[id]
	if !ok || c.ParqueaderoID != pid {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCategoriaRepo) List(_ context.Context, pid uuid.UUID) ([]model.Categoria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Categoria
	for _, c := range r.categorias {
		if c.ParqueaderoID == pid {
			out = append(out, *c)
		}
	}
	return out, nil
}

// ─── medios de pago ──────────────────────────────────────────────────────────

type fakeMedioPagoRepo struct {
	mu     sync.Mutex
	medios map[uuid.UUID]*model.MedioPago
}

func nuevoFakeMedioPagoRepo() *fakeMedioPagoRepo {
	return &fakeMedioPagoRepo{medios: make(map[uuid.UUID]*model.MedioPago)}
}

func (r *fakeMedioPagoRepo) Create(_ context.Context, m *model.MedioPago) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, otro := range r.medios {
		if otro.ParqueaderoID == m.ParqueaderoID && otro.Nombre == m.Nombre {
			return gorm.ErrDuplicatedKey
		}
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.medios[m.ID] = m
	return nil
}

func (r *fakeMedioPagoRepo) Save(_ context.Context, m *model.MedioPago) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.medios[m.ID] = m
	return nil
}

func (r *fakeMedioPagoRepo) FindByID(_ context.Context, pid, id uuid.UUID) (*model.MedioPago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.medios[id]
	if !ok || m.ParqueaderoID != pid {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMedioPagoRepo) FindEfectivo(_ context.Context, pid uuid.UUID) (*model.MedioPago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.medios {
		if m.ParqueaderoID == pid && m.EsEfectivo && m.Activo {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMedioPagoRepo) List(_ context.Context, pid uuid.UUID, soloActivos bool) ([]model.MedioPago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MedioPago
	for _, m := range r.medios {
		if m.ParqueaderoID == pid && (!soloActivos || m.Activo) {
			out = append(out, *m)
		}
	}
	return out, nil
}

// ─── caja ────────────────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	mu    sync.Mutex
	cajas map[string]*model.Caja
}

func nuevoFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{cajas: make(map[string]*model.Caja)}
}

func claveCaja(pid uuid.UUID, fecha time.Time) string {
	return pid.String() + ":" + fecha.Format("2006-01-02")
}

func (r *fakeCajaRepo) DB() *gorm.DB { return nil }

func (r *fakeCajaRepo) FindPorFecha(_ context.Context, pid uuid.UUID, fecha time.Time) (*model.Caja, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cajas[claveCaja(pid, fecha)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeCajaRepo) Create(_ context.Context, c *model.Caja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := claveCaja(c.ParqueaderoID, c.Fecha)
	if _, ok := r.cajas[k]; ok {
		return gorm.ErrDuplicatedKey
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[k] = c
	return nil
}

func (r *fakeCajaRepo) Save(_ context.Context, c *model.Caja) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cajas[claveCaja(c.ParqueaderoID, c.Fecha)] = c
	return nil
}

func (r *fakeCajaRepo) FindForUpdateTx(_ *gorm.DB, pid uuid.UUID, fecha time.Time) (*model.Caja, error) {
	return r.FindPorFecha(context.Background(), pid, fecha)
}

func (r *fakeCajaRepo) SaveTx(_ *gorm.DB, c *model.Caja) error {
	return r.Save(context.Background(), c)
}

// ─── mensualidades ───────────────────────────────────────────────────────────

type fakeMensualidadRepo struct {
	mu            sync.Mutex
	mensualidades map[uuid.UUID]*model.Mensualidad
}

func nuevoFakeMensualidadRepo() *fakeMensualidadRepo {
	return &fakeMensualidadRepo{mensualidades: make(map[uuid.UUID]*model.Mensualidad)}
}

func (r *fakeMensualidadRepo) DB() *gorm.DB { return nil }

func (r *fakeMensualidadRepo) Create(_ context.Context, m *model.Mensualidad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.mensualidades[m.ID] = m
	return nil
}

func (r *fakeMensualidadRepo) Save(_ context.Context, m *model.Mensualidad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mensualidades[m.ID] = m
	return nil
}

func (r *fakeMensualidadRepo) FindByID(_ context.Context, pid, id uuid.UUID) (*model.Mensualidad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.mensualidades[id]
	if !ok || m.ParqueaderoID != pid {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *fakeMensualidadRepo) FindForUpdateTx(_ *gorm.DB, pid, id uuid.UUID) (*model.Mensualidad, error) {
	return r.FindByID(context.Background(), pid, id)
}

func (r *fakeMensualidadRepo) SaveTx(_ *gorm.DB, m *model.Mensualidad) error {
	return r.Save(context.Background(), m)
}

func (r *fakeMensualidadRepo) List(_ context.Context, pid uuid.UUID, estado string) ([]model.Mensualidad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Mensualidad
	for _, m := range r.mensualidades {
		if m.ParqueaderoID == pid && (estado == "" || m.Estado == estado) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMensualidadRepo) FindActivaPorPlaca(_ context.Context, pid uuid.UUID, placa string, ref time.Time) (*model.Mensualidad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.mensualidades {
		if m.ParqueaderoID == pid && m.Estado == model.MensualidadPagada &&
			m.Cliente != nil && strings.EqualFold(m.Cliente.Placa, placa) &&
			!m.FechaVencimiento.Before(ref.Truncate(24*time.Hour)) {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMensualidadRepo) MarkVencidas(_ context.Context, pid uuid.UUID, ref time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	corte := ref.Truncate(24 * time.Hour)
	var n int64
	for _, m := range r.mensualidades {
		if m.ParqueaderoID == pid && m.Estado == model.MensualidadPendiente &&
			m.FechaVencimiento.Truncate(24*time.Hour).Before(corte) {
			m.Estado = model.MensualidadVencida
			n++
		}
	}
	return n, nil
}

func (r *fakeMensualidadRepo) SumPagadas(_ context.Context, pid uuid.UUID, rango repository.Rango) (decimal.Decimal, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	var n int64
	for _, m := range r.mensualidades {
		if m.ParqueaderoID == pid && m.Estado == model.MensualidadPagada &&
			m.FechaPago != nil && enRango(*m.FechaPago, rango) {
			total = total.Add(m.Monto)
			n++
		}
	}
	return total, n, nil
}

func (r *fakeMensualidadRepo) SumPagadasPorMedio(_ context.Context, pid, mid uuid.UUID, rango repository.Rango) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := decimal.Zero
	for _, m := range r.mensualidades {
		if m.ParqueaderoID == pid && m.Estado == model.MensualidadPagada &&
			m.FechaPago != nil && m.MedioPagoID != nil && *m.MedioPagoID == mid &&
			enRango(*m.FechaPago, rango) {
			total = total.Add(m.Monto)
		}
	}
	return total, nil
}

func (r *fakeMensualidadRepo) AggPorMedio(_ context.Context, pid uuid.UUID, rango repository.Rango) ([]repository.MedioAgg, error) {
	return nil, nil
}

// ─── clientes ────────────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	mu       sync.Mutex
	clientes map[uuid.UUID]*model.Cliente
}

func nuevoFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *fakeClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, otro := range r.clientes {
		if otro.ParqueaderoID == c.ParqueaderoID && otro.Documento == c.Documento {
			return gorm.ErrDuplicatedKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) Save(_ context.Context, c *model.Cliente) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientes[c.ID] = c
	return nil
}

func (r *fakeClienteRepo) FindByID(_ context.Context, pid, id uuid.UUID) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clientes[id]
	if !ok || c.ParqueaderoID != pid {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeClienteRepo) FindByDocumento(_ context.Context, pid uuid.UUID, documento string) (*model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clientes {
		if c.ParqueaderoID == pid && c.Documento == documento {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClienteRepo) List(_ context.Context, pid uuid.UUID, soloActivos bool) ([]model.Cliente, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.ParqueaderoID == pid && (!soloActivos || c.Activo) {
			out = append(out, *c)
		}
	}
	return out, nil
}
