package repository

import (
	"context"
	"time"

	"gestorcn/internal/dto"
	"gestorcn/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReporteAgregado is the raw aggregation row for the sales report.
// COALESCE in the query guarantees zero values when the seller has no
// boletas in the period.
type ReporteAgregado struct {
	NumeroVentas  int64           `gorm:"column:numero_ventas"`
	TotalVentas   decimal.Decimal `gorm:"column:total_ventas"`
	PromedioVenta decimal.Decimal `gorm:"column:promedio_venta"`
	VentaMinima   decimal.Decimal `gorm:"column:venta_minima"`
	VentaMaxima   decimal.Decimal `gorm:"column:venta_maxima"`
}

type BoletaRepository interface {
	FindByNumero(ctx context.Context, numero int) (*model.Boleta, error)
	List(ctx context.Context, filter dto.BoletaFilter) ([]model.Boleta, int64, error)
	SetCompletada(ctx context.Context, numero int, completada bool) error
	SetCompletadaMultiple(ctx context.Context, numeros []int, completada bool) (int64, error)
	Reporte(ctx context.Context, vendedor int, desde, hasta time.Time) (*ReporteAgregado, error)

	// Used inside transactions — callers must pass the tx instance.
	CreateTx(ctx context.Context, tx *gorm.DB, b *model.Boleta) error
	DetalleIDsTx(tx *gorm.DB, numero int) ([]int, error)
	DeleteDetallesTx(tx *gorm.DB, numero int, ids []int) (int64, error)
	DeleteAllDetallesTx(tx *gorm.DB, numero int) (int64, error)
	InsertDetalleTx(tx *gorm.DB, d *model.DetalleBoleta) error
	// UpdateDetalleTx matches by IdDetalle AND NumeroBoleta so a line id
	// cannot be hijacked across boletas.
	UpdateDetalleTx(tx *gorm.DB, d *model.DetalleBoleta) error
	UpdateCabeceraTx(tx *gorm.DB, numero int, total decimal.Decimal, observaciones string) error
	DeleteTx(tx *gorm.DB, numero int) error

	// Reference counts backing the soft/hard delete policy of clientes y productos.
	CountByClienteTx(tx *gorm.DB, codigoCliente int) (int64, error)
	CountDetallesByProductoTx(tx *gorm.DB, codigoProducto int) (int64, error)

	DB() *gorm.DB
}

type boletaRepo struct{ db *gorm.DB }

func NewBoletaRepository(db *gorm.DB) BoletaRepository { return &boletaRepo{db: db} }

func (r *boletaRepo) DB() *gorm.DB { return r.db }

func (r *boletaRepo) CreateTx(ctx context.Context, tx *gorm.DB, b *model.Boleta) error {
	// Creates the boleta row and its Detalles in one association write;
	// still inside the caller's transaction.
	return classify(tx.WithContext(ctx).Create(b).Error)
}

func (r *boletaRepo) FindByNumero(ctx context.Context, numero int) (*model.Boleta, error) {
	var b model.Boleta
	err := r.db.WithContext(ctx).
		Preload("Detalles.Producto").
		Preload("Cliente").
		Preload("Usuario").
		First(&b, numero).Error
	if err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

func (r *boletaRepo) List(ctx context.Context, filter dto.BoletaFilter) ([]model.Boleta, int64, error) {
	var boletas []model.Boleta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Boleta{})

	switch filter.Completada {
	case "true":
		q = q.Where("Completada = ?", true)
	case "false":
		q = q.Where("Completada = ?", false)
	}
	if filter.Fecha != "" {
		q = q.Where("FechaBoleta = ?", filter.Fecha)
	}
	if filter.Cliente != 0 {
		q = q.Where("CodigoCliente = ?", filter.Cliente)
	}
	if filter.Vendedor != 0 {
		q = q.Where("CodigoUsuario = ?", filter.Vendedor)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, classify(err)
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Detalles.Producto").Preload("Cliente").Preload("Usuario").
		Order("NumeroBoleta DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&boletas).Error
	return boletas, total, classify(err)
}

func (r *boletaRepo) SetCompletada(ctx context.Context, numero int, completada bool) error {
	res := r.db.WithContext(ctx).Model(&model.Boleta{}).
		Where("NumeroBoleta = ?", numero).
		Update("Completada", completada)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish missing boleta from an idempotent same-value write.
		var n int64
		if err := r.db.WithContext(ctx).Model(&model.Boleta{}).
			Where("NumeroBoleta = ?", numero).Count(&n).Error; err != nil {
			return classify(err)
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (r *boletaRepo) SetCompletadaMultiple(ctx context.Context, numeros []int, completada bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Boleta{}).
		Where("NumeroBoleta IN ?", numeros).
		Update("Completada", completada)
	return res.RowsAffected, classify(res.Error)
}

func (r *boletaRepo) Reporte(ctx context.Context, vendedor int, desde, hasta time.Time) (*ReporteAgregado, error) {
	var agg ReporteAgregado
	err := r.db.WithContext(ctx).Model(&model.Boleta{}).
		Select(`COUNT(*) AS numero_ventas,
			COALESCE(SUM(TotalBoleta), 0) AS total_ventas,
			COALESCE(AVG(TotalBoleta), 0) AS promedio_venta,
			COALESCE(MIN(TotalBoleta), 0) AS venta_minima,
			COALESCE(MAX(TotalBoleta), 0) AS venta_maxima`).
		Where("CodigoUsuario = ? AND FechaBoleta BETWEEN ? AND ?", vendedor, desde, hasta).
		Scan(&agg).Error
	if err != nil {
		return nil, classify(err)
	}
	return &agg, nil
}

func (r *boletaRepo) DetalleIDsTx(tx *gorm.DB, numero int) ([]int, error) {
	var ids []int
	err := tx.Model(&model.DetalleBoleta{}).
		Where("NumeroBoleta = ?", numero).
		Pluck("IdDetalle", &ids).Error
	return ids, classify(err)
}

func (r *boletaRepo) DeleteDetallesTx(tx *gorm.DB, numero int, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := tx.Where("NumeroBoleta = ? AND IdDetalle IN ?", numero, ids).
		Delete(&model.DetalleBoleta{})
	return res.RowsAffected, classify(res.Error)
}

func (r *boletaRepo) DeleteAllDetallesTx(tx *gorm.DB, numero int) (int64, error) {
	res := tx.Where("NumeroBoleta = ?", numero).Delete(&model.DetalleBoleta{})
	return res.RowsAffected, classify(res.Error)
}

func (r *boletaRepo) InsertDetalleTx(tx *gorm.DB, d *model.DetalleBoleta) error {
	return classify(tx.Create(d).Error)
}

func (r *boletaRepo) UpdateDetalleTx(tx *gorm.DB, d *model.DetalleBoleta) error {
	res := tx.Model(&model.DetalleBoleta{}).
		Where("IdDetalle = ? AND NumeroBoleta = ?", d.IdDetalle, d.NumeroBoleta).
		Updates(map[string]interface{}{
			"CodigoProducto":      d.CodigoProducto,
			"Cantidad":            d.Cantidad,
			"PrecioUnitario":      d.PrecioUnitario,
			"Subtotal":            d.Subtotal,
			"DescripcionProducto": d.DescripcionProducto,
		})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports changed rows, not matched rows: resubmitting a line
		// with identical values affects 0 rows even though it exists.
		var n int64
		if err := tx.Model(&model.DetalleBoleta{}).
			Where("IdDetalle = ? AND NumeroBoleta = ?", d.IdDetalle, d.NumeroBoleta).
			Count(&n).Error; err != nil {
			return classify(err)
		}
		if n == 0 {
			return ErrNotFound
		}
	}
	return nil
}

func (r *boletaRepo) UpdateCabeceraTx(tx *gorm.DB, numero int, total decimal.Decimal, observaciones string) error {
	return classify(tx.Model(&model.Boleta{}).
		Where("NumeroBoleta = ?", numero).
		Updates(map[string]interface{}{
			"TotalBoleta":   total,
			"Observaciones": observaciones,
		}).Error)
}

func (r *boletaRepo) DeleteTx(tx *gorm.DB, numero int) error {
	return classify(tx.Delete(&model.Boleta{}, numero).Error)
}

func (r *boletaRepo) CountByClienteTx(tx *gorm.DB, codigoCliente int) (int64, error) {
	var n int64
	err := tx.Model(&model.Boleta{}).
		Where("CodigoCliente = ?", codigoCliente).
		Count(&n).Error
	return n, classify(err)
}

func (r *boletaRepo) CountDetallesByProductoTx(tx *gorm.DB, codigoProducto int) (int64, error) {
	var n int64
	err := tx.Model(&model.DetalleBoleta{}).
		Where("CodigoProducto = ?", codigoProducto).
		Count(&n).Error
	return n, classify(err)
}
