package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto carries two price points: PrecioSala (list price) and PrecioDto
// (discounted price). ProductoActivo works like Cliente.ClienteActivo —
// a producto referenced by any boleta line item is only ever deactivated.
type Producto struct {
	CodigoProducto int             `gorm:"primaryKey;autoIncrement;column:CodigoProducto"`
	Descripcion    string          `gorm:"not null;column:Descripcion"`
	PrecioSala     decimal.Decimal `gorm:"type:decimal(12,2);not null;column:PrecioSala"`
	PrecioDto      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:PrecioDto"`
	ProductoActivo bool            `gorm:"not null;default:true;column:ProductoActivo"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Producto) TableName() string { return "producto" }
