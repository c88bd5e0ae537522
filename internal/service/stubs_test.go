package service

// In-memory repository stubs shared by the service tests. The stubs return
// nil from DB(), which makes runTx invoke the transaction body directly —
// the test observes exactly the calls the real transaction would make.

import (
	"context"
	"sort"
	"time"

	"gestorcn/internal/dto"
	"gestorcn/internal/model"
	"gestorcn/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── BoletaRepository stub ─────────────────────────────────────────────────────

type stubBoletaRepo struct {
	boletas    map[int]*model.Boleta
	detalles   map[int]*model.DetalleBoleta
	nextNumero int
	nextID     int
}

func newStubBoletaRepo() *stubBoletaRepo {
	return &stubBoletaRepo{
		boletas:    make(map[int]*model.Boleta),
		detalles:   make(map[int]*model.DetalleBoleta),
		nextNumero: 1,
		nextID:     1,
	}
}

var _ repository.BoletaRepository = (*stubBoletaRepo)(nil)

func (r *stubBoletaRepo) DB() *gorm.DB { return nil }

func (r *stubBoletaRepo) detallesDe(numero int) []model.DetalleBoleta {
	var out []model.DetalleBoleta
	for _, d := range r.detalles {
		if d.NumeroBoleta == numero {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IdDetalle < out[j].IdDetalle })
	return out
}

func (r *stubBoletaRepo) FindByNumero(_ context.Context, numero int) (*model.Boleta, error) {
	b, ok := r.boletas[numero]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cloned := *b
	cloned.Detalles = r.detallesDe(numero)
	return &cloned, nil
}

func (r *stubBoletaRepo) List(_ context.Context, filter dto.BoletaFilter) ([]model.Boleta, int64, error) {
	var out []model.Boleta
	for _, b := range r.boletas {
		if filter.Cliente != 0 && b.CodigoCliente != filter.Cliente {
			continue
		}
		if filter.Vendedor != 0 && b.CodigoUsuario != filter.Vendedor {
			continue
		}
		switch filter.Completada {
		case "true":
			if !b.Completada {
				continue
			}
		case "false":
			if b.Completada {
				continue
			}
		}
		cloned := *b
		cloned.Detalles = r.detallesDe(b.NumeroBoleta)
		out = append(out, cloned)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NumeroBoleta < out[j].NumeroBoleta })
	return out, int64(len(out)), nil
}

func (r *stubBoletaRepo) SetCompletada(_ context.Context, numero int, completada bool) error {
	b, ok := r.boletas[numero]
	if !ok {
		return repository.ErrNotFound
	}
	b.Completada = completada
	return nil
}

func (r *stubBoletaRepo) SetCompletadaMultiple(_ context.Context, numeros []int, completada bool) (int64, error) {
	var n int64
	for _, numero := range numeros {
		if b, ok := r.boletas[numero]; ok {
			b.Completada = completada
			n++
		}
	}
	return n, nil
}

func (r *stubBoletaRepo) Reporte(_ context.Context, vendedor int, desde, hasta time.Time) (*repository.ReporteAgregado, error) {
	agg := &repository.ReporteAgregado{}
	for _, b := range r.boletas {
		if b.CodigoUsuario != vendedor || b.FechaBoleta.Before(desde) || b.FechaBoleta.After(hasta) {
			continue
		}
		if agg.NumeroVentas == 0 {
			agg.VentaMinima = b.TotalBoleta
			agg.VentaMaxima = b.TotalBoleta
		} else {
			if b.TotalBoleta.LessThan(agg.VentaMinima) {
				agg.VentaMinima = b.TotalBoleta
			}
			if b.TotalBoleta.GreaterThan(agg.VentaMaxima) {
				agg.VentaMaxima = b.TotalBoleta
			}
		}
		agg.NumeroVentas++
		agg.TotalVentas = agg.TotalVentas.Add(b.TotalBoleta)
	}
	if agg.NumeroVentas > 0 {
		agg.PromedioVenta = agg.TotalVentas.Div(decimal.NewFromInt(agg.NumeroVentas))
	}
	return agg, nil
}

func (r *stubBoletaRepo) CreateTx(_ context.Context, _ *gorm.DB, b *model.Boleta) error {
	b.NumeroBoleta = r.nextNumero
	r.nextNumero++
	for i := range b.Detalles {
		b.Detalles[i].IdDetalle = r.nextID
		b.Detalles[i].NumeroBoleta = b.NumeroBoleta
		r.nextID++
		cloned := b.Detalles[i]
		r.detalles[cloned.IdDetalle] = &cloned
	}
	header := *b
	header.Detalles = nil
	r.boletas[b.NumeroBoleta] = &header
	return nil
}

func (r *stubBoletaRepo) DetalleIDsTx(_ *gorm.DB, numero int) ([]int, error) {
	var ids []int
	for _, d := range r.detalles {
		if d.NumeroBoleta == numero {
			ids = append(ids, d.IdDetalle)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *stubBoletaRepo) DeleteDetallesTx(_ *gorm.DB, numero int, ids []int) (int64, error) {
	var n int64
	for _, id := range ids {
		if d, ok := r.detalles[id]; ok && d.NumeroBoleta == numero {
			delete(r.detalles, id)
			n++
		}
	}
	return n, nil
}

func (r *stubBoletaRepo) DeleteAllDetallesTx(_ *gorm.DB, numero int) (int64, error) {
	var n int64
	for id, d := range r.detalles {
		if d.NumeroBoleta == numero {
			delete(r.detalles, id)
			n++
		}
	}
	return n, nil
}

func (r *stubBoletaRepo) InsertDetalleTx(_ *gorm.DB, d *model.DetalleBoleta) error {
	d.IdDetalle = r.nextID
	r.nextID++
	cloned := *d
	r.detalles[d.IdDetalle] = &cloned
	return nil
}

func (r *stubBoletaRepo) UpdateDetalleTx(_ *gorm.DB, d *model.DetalleBoleta) error {
	stored, ok := r.detalles[d.IdDetalle]
	if !ok || stored.NumeroBoleta != d.NumeroBoleta {
		return repository.ErrNotFound
	}
	cloned := *d
	r.detalles[d.IdDetalle] = &cloned
	return nil
}

func (r *stubBoletaRepo) UpdateCabeceraTx(_ *gorm.DB, numero int, total decimal.Decimal, observaciones string) error {
	b, ok := r.boletas[numero]
	if !ok {
		return repository.ErrNotFound
	}
	b.TotalBoleta = total
	b.Observaciones = observaciones
	return nil
}

func (r *stubBoletaRepo) DeleteTx(_ *gorm.DB, numero int) error {
	if _, ok := r.boletas[numero]; !ok {
		return repository.ErrNotFound
	}
	delete(r.boletas, numero)
	return nil
}

func (r *stubBoletaRepo) CountByClienteTx(_ *gorm.DB, codigoCliente int) (int64, error) {
	var n int64
	for _, b := range r.boletas {
		if b.CodigoCliente == codigoCliente {
			n++
		}
	}
	return n, nil
}

func (r *stubBoletaRepo) CountDetallesByProductoTx(_ *gorm.DB, codigoProducto int) (int64, error) {
	var n int64
	for _, d := range r.detalles {
		if d.CodigoProducto == codigoProducto {
			n++
		}
	}
	return n, nil
}

// ── ClienteRepository stub ────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[int]*model.Cliente
	nextID   int
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[int]*model.Cliente), nextID: 1}
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	for _, existing := range r.clientes {
		if existing.Rut == c.Rut {
			return repository.ErrConflict
		}
	}
	c.CodigoCliente = r.nextID
	r.nextID++
	cloned := *c
	r.clientes[c.CodigoCliente] = &cloned
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id int) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubClienteRepo) List(_ context.Context, filter dto.ClienteFilter) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		switch filter.Activo {
		case "all":
		case "false":
			if c.ClienteActivo {
				continue
			}
		default:
			if !c.ClienteActivo {
				continue
			}
		}
		if filter.Rut != "" && c.Rut != filter.Rut {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoCliente < out[j].CodigoCliente })
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	if _, ok := r.clientes[c.CodigoCliente]; !ok {
		return repository.ErrNotFound
	}
	cloned := *c
	r.clientes[c.CodigoCliente] = &cloned
	return nil
}

func (r *stubClienteRepo) FindByIDForUpdateTx(_ *gorm.DB, id int) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cloned := *c
	return &cloned, nil
}

func (r *stubClienteRepo) HardDeleteTx(_ *gorm.DB, id int) error {
	if _, ok := r.clientes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) DeactivateTx(_ *gorm.DB, id int) error {
	c, ok := r.clientes[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.ClienteActivo = false
	return nil
}

// ── ProductoRepository stub ───────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[int]*model.Producto
	nextID    int
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[int]*model.Producto), nextID: 1}
}

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	p.CodigoProducto = r.nextID
	r.nextID++
	cloned := *p
	r.productos[p.CodigoProducto] = &cloned
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		switch filter.Activo {
		case "all":
		case "false":
			if p.ProductoActivo {
				continue
			}
		default:
			if !p.ProductoActivo {
				continue
			}
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoProducto < out[j].CodigoProducto })
	return out, nil
}

func (r *stubProductoRepo) ListActivos(_ context.Context) ([]model.Producto, error) {
	return r.List(context.Background(), dto.ProductoFilter{})
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.CodigoProducto]; !ok {
		return repository.ErrNotFound
	}
	cloned := *p
	r.productos[p.CodigoProducto] = &cloned
	return nil
}

func (r *stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id int) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cloned := *p
	return &cloned, nil
}

func (r *stubProductoRepo) HardDeleteTx(_ *gorm.DB, id int) error {
	if _, ok := r.productos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) DeactivateTx(_ *gorm.DB, id int) error {
	p, ok := r.productos[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.ProductoActivo = false
	return nil
}

// ── UsuarioRepository stub ────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[int]*model.Usuario
	nextID   int
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[int]*model.Usuario), nextID: 1}
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func (r *stubUsuarioRepo) DB() *gorm.DB { return nil }

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, existing := range r.usuarios {
		if existing.NombreUsuario == u.NombreUsuario {
			return repository.ErrConflict
		}
	}
	u.CodigoUsuario = r.nextID
	r.nextID++
	cloned := *u
	r.usuarios[u.CodigoUsuario] = &cloned
	return nil
}

func (r *stubUsuarioRepo) FindByNombre(_ context.Context, nombre string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.NombreUsuario == nombre {
			cloned := *u
			return &cloned, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id int) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cloned := *u
	return &cloned, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoUsuario < out[j].CodigoUsuario })
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	if _, ok := r.usuarios[u.CodigoUsuario]; !ok {
		return repository.ErrNotFound
	}
	cloned := *u
	r.usuarios[u.CodigoUsuario] = &cloned
	return nil
}

func (r *stubUsuarioRepo) CountAdminsTx(_ *gorm.DB, excludeID int) (int64, error) {
	var n int64
	for _, u := range r.usuarios {
		if u.RolAdmin && u.CodigoUsuario != excludeID {
			n++
		}
	}
	return n, nil
}

func (r *stubUsuarioRepo) DeleteTx(_ *gorm.DB, id int) error {
	if _, ok := r.usuarios[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.usuarios, id)
	return nil
}

func (r *stubUsuarioRepo) UpdateTx(_ *gorm.DB, u *model.Usuario) error {
	return r.Update(context.Background(), u)
}
