package repository

import (
	"context"

	"gestorcn/internal/dto"
	"gestorcn/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClienteRepository defines the data access contract for customers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id int) (*model.Cliente, error)
	List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx locks the row (SELECT ... FOR UPDATE) so the
	// reference check and the delete/deactivate cannot interleave with a
	// concurrent boleta creation referencing this cliente.
	FindByIDForUpdateTx(tx *gorm.DB, id int) (*model.Cliente, error)
	HardDeleteTx(tx *gorm.DB, id int) error
	DeactivateTx(tx *gorm.DB, id int) error

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return classify(r.db.WithContext(ctx).Create(c).Error)
}

func (r *clienteRepo) FindByID(ctx context.Context, id int) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *clienteRepo) List(ctx context.Context, filter dto.ClienteFilter) ([]model.Cliente, error) {
	var clientes []model.Cliente

	q := r.db.WithContext(ctx).Model(&model.Cliente{})

	// Activo filter: "false" = inactivos, "all" = todos, anything else = activos (default)
	switch filter.Activo {
	case "false":
		q = q.Where("ClienteActivo = ?", false)
	case "all":
		// no filter
	default:
		q = q.Where("ClienteActivo = ?", true)
	}

	if filter.Rut != "" {
		q = q.Where("Rut = ?", filter.Rut)
	}

	err := q.Order("RazonSocial ASC").Find(&clientes).Error
	return clientes, classify(err)
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return classify(r.db.WithContext(ctx).Save(c).Error)
}

func (r *clienteRepo) FindByIDForUpdateTx(tx *gorm.DB, id int) (*model.Cliente, error) {
	var c model.Cliente
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	if err != nil {
		return nil, classify(err)
	}
	return &c, nil
}

func (r *clienteRepo) HardDeleteTx(tx *gorm.DB, id int) error {
	return classify(tx.Delete(&model.Cliente{}, id).Error)
}

func (r *clienteRepo) DeactivateTx(tx *gorm.DB, id int) error {
	return classify(tx.Model(&model.Cliente{}).
		Where("CodigoCliente = ?", id).
		Update("ClienteActivo", false).Error)
}

func (r *clienteRepo) DB() *gorm.DB { return r.db }
