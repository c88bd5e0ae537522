package service

import (
	"context"
	"fmt"
	"time"

	"gestorcn/internal/dto"
	"gestorcn/internal/infra"
	"gestorcn/internal/model"
	"gestorcn/internal/repository"
	"gestorcn/internal/worker"

	"gorm.io/gorm"
)

const fechaLayout = "2006-01-02"

type BoletaService interface {
	Crear(ctx context.Context, req dto.CrearBoletaRequest) (*dto.BoletaResponse, error)
	ObtenerPorNumero(ctx context.Context, numero int) (*dto.BoletaResponse, error)
	Listar(ctx context.Context, filter dto.BoletaFilter) (*dto.BoletaListResponse, error)
	Actualizar(ctx context.Context, numero int, req dto.ActualizarBoletaRequest) (*dto.BoletaResponse, error)
	Eliminar(ctx context.Context, numero int) (*dto.EliminarBoletaResponse, error)
	SetCompletada(ctx context.Context, numero int, completada bool) error
	SetCompletadaMultiple(ctx context.Context, req dto.CompletadaMultipleRequest) (int64, error)
	Reporte(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteVentasResponse, error)
	GenerarPDF(ctx context.Context, numero int) (string, error)
}

type boletaService struct {
	repo        repository.BoletaRepository
	dispatcher  *worker.Dispatcher
	storagePath string
	negocio     string
}

func NewBoletaService(repo repository.BoletaRepository, dispatcher *worker.Dispatcher, storagePath, negocio string) BoletaService {
	return &boletaService{repo: repo, dispatcher: dispatcher, storagePath: storagePath, negocio: negocio}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Atomic creation of the boleta row plus N detalle rows:
//   1. Collect every missing mandatory field; fail before any write.
//   2. Parse both dates.
//   3. Recompute each line's Subtotal = Cantidad * PrecioUnitario.
//   4. One INSERT transaction for cabecera + detalles.
//   5. (async) dispatch PDF generation job.

func (s *boletaService) Crear(ctx context.Context, req dto.CrearBoletaRequest) (*dto.BoletaResponse, error) {
	var faltantes []string
	if req.CodigoCliente == 0 {
		faltantes = append(faltantes, "codigo_cliente")
	}
	if req.CodigoUsuario == 0 {
		faltantes = append(faltantes, "codigo_usuario")
	}
	if req.FechaBoleta == "" {
		faltantes = append(faltantes, "fecha_boleta")
	}
	if req.FechaVencimiento == "" {
		faltantes = append(faltantes, "fecha_vencimiento")
	}
	if req.TotalBoleta.IsZero() {
		faltantes = append(faltantes, "total_boleta")
	}
	if len(faltantes) > 0 {
		return nil, &CamposFaltantesError{Campos: faltantes}
	}

	fechaBoleta, err := parseFecha(req.FechaBoleta, "fecha_boleta")
	if err != nil {
		return nil, err
	}
	fechaVenc, err := parseFecha(req.FechaVencimiento, "fecha_vencimiento")
	if err != nil {
		return nil, err
	}

	boleta := model.Boleta{
		CodigoCliente:    req.CodigoCliente,
		CodigoUsuario:    req.CodigoUsuario,
		FechaBoleta:      fechaBoleta,
		FechaVencimiento: fechaVenc,
		TotalBoleta:      req.TotalBoleta,
		Observaciones:    req.Observaciones,
		Completada:       false,
	}
	for _, d := range req.Detalles {
		boleta.Detalles = append(boleta.Detalles, model.DetalleBoleta{
			CodigoProducto:      d.CodigoProducto,
			Cantidad:            d.Cantidad,
			PrecioUnitario:      d.PrecioUnitario,
			Subtotal:            d.Cantidad.Mul(d.PrecioUnitario),
			DescripcionProducto: d.DescripcionProducto,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.CreateTx(ctx, tx, &boleta)
	})
	if txErr != nil {
		return nil, fmt.Errorf("crear boleta: %w", txErr)
	}

	// Async PDF generation — best-effort, fire & forget.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueBoletaPDF(ctx, worker.BoletaPDFPayload{NumeroBoleta: boleta.NumeroBoleta})
	}

	return boletaToResponse(&boleta), nil
}

func (s *boletaService) ObtenerPorNumero(ctx context.Context, numero int) (*dto.BoletaResponse, error) {
	b, err := s.repo.FindByNumero(ctx, numero)
	if err != nil {
		return nil, fmt.Errorf("obtener boleta %d: %w", numero, err)
	}
	return boletaToResponse(b), nil
}

func (s *boletaService) Listar(ctx context.Context, filter dto.BoletaFilter) (*dto.BoletaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	boletas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BoletaResponse, 0, len(boletas))
	for i := range boletas {
		items = append(items, *boletaToResponse(&boletas[i]))
	}
	return &dto.BoletaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Set reconciliation, not a pure overwrite:
//   1. Read the stored detalle ids for this boleta.
//   2. "ids to keep" = incoming lines that carry an id.
//   3. Delete stored ids not kept — first, so dying rows cannot collide with
//      freshly inserted ones.
//   4. Insert lines without an id.
//   5. Update kept lines in place, matched by (IdDetalle, NumeroBoleta).
//   6. Write the supplied total and observaciones on the cabecera.
// Any step failing rolls back the whole reconciliation.

func (s *boletaService) Actualizar(ctx context.Context, numero int, req dto.ActualizarBoletaRequest) (*dto.BoletaResponse, error) {
	if _, err := s.repo.FindByNumero(ctx, numero); err != nil {
		return nil, fmt.Errorf("actualizar boleta %d: %w", numero, err)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		storedIDs, err := s.repo.DetalleIDsTx(tx, numero)
		if err != nil {
			return err
		}

		keep := make(map[int]bool, len(req.Detalles))
		for _, d := range req.Detalles {
			if d.IdDetalle != nil {
				keep[*d.IdDetalle] = true
			}
		}

		var toDelete []int
		for _, id := range storedIDs {
			if !keep[id] {
				toDelete = append(toDelete, id)
			}
		}
		if _, err := s.repo.DeleteDetallesTx(tx, numero, toDelete); err != nil {
			return err
		}

		for _, d := range req.Detalles {
			detalle := model.DetalleBoleta{
				NumeroBoleta:        numero,
				CodigoProducto:      d.CodigoProducto,
				Cantidad:            d.Cantidad,
				PrecioUnitario:      d.PrecioUnitario,
				Subtotal:            d.Cantidad.Mul(d.PrecioUnitario),
				DescripcionProducto: d.DescripcionProducto,
			}
			if d.IdDetalle == nil {
				if err := s.repo.InsertDetalleTx(tx, &detalle); err != nil {
					return err
				}
				continue
			}
			detalle.IdDetalle = *d.IdDetalle
			if err := s.repo.UpdateDetalleTx(tx, &detalle); err != nil {
				return err
			}
		}

		return s.repo.UpdateCabeceraTx(tx, numero, req.TotalBoleta, req.Observaciones)
	})
	if txErr != nil {
		return nil, fmt.Errorf("actualizar boleta %d: %w", numero, txErr)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueBoletaPDF(ctx, worker.BoletaPDFPayload{NumeroBoleta: numero})
	}

	return s.ObtenerPorNumero(ctx, numero)
}

// ── Eliminar ──────────────────────────────────────────────────────────────────

func (s *boletaService) Eliminar(ctx context.Context, numero int) (*dto.EliminarBoletaResponse, error) {
	if _, err := s.repo.FindByNumero(ctx, numero); err != nil {
		return nil, fmt.Errorf("eliminar boleta %d: %w", numero, err)
	}

	var eliminados int64
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		n, err := s.repo.DeleteAllDetallesTx(tx, numero)
		if err != nil {
			return err
		}
		eliminados = n
		return s.repo.DeleteTx(tx, numero)
	})
	if txErr != nil {
		return nil, fmt.Errorf("eliminar boleta %d: %w", numero, txErr)
	}

	return &dto.EliminarBoletaResponse{
		NumeroBoleta:       numero,
		DetallesEliminados: eliminados,
	}, nil
}

func (s *boletaService) SetCompletada(ctx context.Context, numero int, completada bool) error {
	if err := s.repo.SetCompletada(ctx, numero, completada); err != nil {
		return fmt.Errorf("completada boleta %d: %w", numero, err)
	}
	return nil
}

func (s *boletaService) SetCompletadaMultiple(ctx context.Context, req dto.CompletadaMultipleRequest) (int64, error) {
	return s.repo.SetCompletadaMultiple(ctx, req.Numeros, *req.Completada)
}

// Reporte aggregates the seller's boletas inside [FechaInicio, FechaFin].
// A seller with no sales in the period yields the zero-valued report, not an error.
func (s *boletaService) Reporte(ctx context.Context, filter dto.ReporteFilter) (*dto.ReporteVentasResponse, error) {
	desde, err := parseFecha(filter.FechaInicio, "fecha_inicio")
	if err != nil {
		return nil, err
	}
	hasta, err := parseFecha(filter.FechaFin, "fecha_fin")
	if err != nil {
		return nil, err
	}
	if hasta.Before(desde) {
		return nil, fmt.Errorf("%w: fecha_fin anterior a fecha_inicio", ErrValidacion)
	}

	agg, err := s.repo.Reporte(ctx, filter.Vendedor, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("reporte vendedor %d: %w", filter.Vendedor, err)
	}

	return &dto.ReporteVentasResponse{
		Vendedor:      filter.Vendedor,
		FechaInicio:   filter.FechaInicio,
		FechaFin:      filter.FechaFin,
		NumeroVentas:  agg.NumeroVentas,
		TotalVentas:   agg.TotalVentas,
		PromedioVenta: agg.PromedioVenta,
		VentaMinima:   agg.VentaMinima,
		VentaMaxima:   agg.VentaMaxima,
	}, nil
}

func parseFecha(s, campo string) (time.Time, error) {
	t, err := time.Parse(fechaLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s debe ser YYYY-MM-DD", ErrValidacion, campo)
	}
	return t, nil
}

func boletaToResponse(b *model.Boleta) *dto.BoletaResponse {
	detalles := make([]dto.DetalleResponse, 0, len(b.Detalles))
	for _, d := range b.Detalles {
		producto := ""
		if d.Producto != nil {
			producto = d.Producto.Descripcion
		}
		detalles = append(detalles, dto.DetalleResponse{
			IdDetalle:           d.IdDetalle,
			CodigoProducto:      d.CodigoProducto,
			Producto:            producto,
			Cantidad:            d.Cantidad,
			PrecioUnitario:      d.PrecioUnitario,
			Subtotal:            d.Subtotal,
			DescripcionProducto: d.DescripcionProducto,
		})
	}
	cliente := ""
	if b.Cliente != nil {
		cliente = b.Cliente.RazonSocial
	}
	vendedor := ""
	if b.Usuario != nil {
		vendedor = b.Usuario.NombreUsuario
	}
	return &dto.BoletaResponse{
		NumeroBoleta:     b.NumeroBoleta,
		CodigoCliente:    b.CodigoCliente,
		Cliente:          cliente,
		CodigoUsuario:    b.CodigoUsuario,
		Vendedor:         vendedor,
		FechaBoleta:      b.FechaBoleta.Format(fechaLayout),
		FechaVencimiento: b.FechaVencimiento.Format(fechaLayout),
		TotalBoleta:      b.TotalBoleta,
		Observaciones:    b.Observaciones,
		Completada:       b.Completada,
		Detalles:         detalles,
	}
}

// GenerarPDF renders the boleta on demand, outside the async job queue.
func (s *boletaService) GenerarPDF(ctx context.Context, numero int) (string, error) {
	b, err := s.repo.FindByNumero(ctx, numero)
	if err != nil {
		return "", err
	}
	return infra.GenerateBoletaPDF(b, s.storagePath, s.negocio)
}
