package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Boleta is the transactional unit of a sale. It is created atomically with
// its detalles, edited by full line-item reconciliation, and deleted by
// cascading over the detalles first. TotalBoleta is persisted as supplied by
// the caller, which recomputes it from the line subtotals before every write.
type Boleta struct {
	NumeroBoleta     int             `gorm:"primaryKey;autoIncrement;column:NumeroBoleta"`
	CodigoCliente    int             `gorm:"index;not null;column:CodigoCliente"`
	CodigoUsuario    int             `gorm:"index;not null;column:CodigoUsuario"`
	FechaBoleta      time.Time       `gorm:"type:date;not null;column:FechaBoleta"`
	FechaVencimiento time.Time       `gorm:"type:date;not null;column:FechaVencimiento"`
	TotalBoleta      decimal.Decimal `gorm:"type:decimal(12,2);not null;column:TotalBoleta"`
	Observaciones    string          `gorm:"column:Observaciones"`
	Completada       bool            `gorm:"not null;default:false;column:Completada"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Cliente  *Cliente        `gorm:"foreignKey:CodigoCliente;references:CodigoCliente"`
	Usuario  *Usuario        `gorm:"foreignKey:CodigoUsuario;references:CodigoUsuario"`
	Detalles []DetalleBoleta `gorm:"foreignKey:NumeroBoleta;references:NumeroBoleta"`
}

func (Boleta) TableName() string { return "boleta" }

// DetalleBoleta is one line of a boleta. Cantidad admits fractional values
// (half units are sold). Subtotal must equal Cantidad * PrecioUnitario at the
// values last persisted; the database does not enforce it, so every write path
// recomputes it before persisting.
type DetalleBoleta struct {
	IdDetalle           int             `gorm:"primaryKey;autoIncrement;column:IdDetalle"`
	NumeroBoleta        int             `gorm:"index;not null;column:NumeroBoleta"`
	CodigoProducto      int             `gorm:"index;not null;column:CodigoProducto"`
	Cantidad            decimal.Decimal `gorm:"type:decimal(10,3);not null;column:Cantidad"`
	PrecioUnitario      decimal.Decimal `gorm:"type:decimal(12,2);not null;column:PrecioUnitario"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(12,2);not null;column:Subtotal"`
	DescripcionProducto *string         `gorm:"column:DescripcionProducto"`

	Producto *Producto `gorm:"foreignKey:CodigoProducto;references:CodigoProducto"`
}

func (DetalleBoleta) TableName() string { return "detallesboleta" }
