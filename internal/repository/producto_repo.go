package repository

import (
	"context"

	"gestorcn/internal/dto"
	"gestorcn/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id int) (*model.Producto, error)
	List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error)
	// ListActivos feeds the /articulos catalog for boleta line selection.
	ListActivos(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error

	// Used inside transactions — callers must pass the tx instance.
	FindByIDForUpdateTx(tx *gorm.DB, id int) (*model.Producto, error)
	HardDeleteTx(tx *gorm.DB, id int) error
	DeactivateTx(tx *gorm.DB, id int) error

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return classify(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productoRepo) FindByID(ctx context.Context, id int) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *productoRepo) List(ctx context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var productos []model.Producto

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	switch filter.Activo {
	case "false":
		q = q.Where("ProductoActivo = ?", false)
	case "all":
		// no filter
	default:
		q = q.Where("ProductoActivo = ?", true)
	}

	if filter.Descripcion != "" {
		q = q.Where("Descripcion LIKE ?", "%"+filter.Descripcion+"%")
	}

	err := q.Order("Descripcion ASC").Find(&productos).Error
	return productos, classify(err)
}

func (r *productoRepo) ListActivos(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("ProductoActivo = ?", true).
		Order("Descripcion ASC").
		Find(&productos).Error
	return productos, classify(err)
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return classify(r.db.WithContext(ctx).Save(p).Error)
}

func (r *productoRepo) FindByIDForUpdateTx(tx *gorm.DB, id int) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &p, nil
}

func (r *productoRepo) HardDeleteTx(tx *gorm.DB, id int) error {
	return classify(tx.Delete(&model.Producto{}, id).Error)
}

func (r *productoRepo) DeactivateTx(tx *gorm.DB, id int) error {
	return classify(tx.Model(&model.Producto{}).
		Where("CodigoProducto = ?", id).
		Update("ProductoActivo", false).Error)
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
