package model

import "time"

// Cliente is a customer. ClienteActivo=false means the row was soft-deleted:
// it stays joinable from historical boletas but is excluded from listings.
// A cliente referenced by any boleta must never be hard-deleted.
type Cliente struct {
	CodigoCliente int     `gorm:"primaryKey;autoIncrement;column:CodigoCliente"`
	Rut           string  `gorm:"uniqueIndex;not null;column:Rut"`
	RazonSocial   string  `gorm:"not null;column:RazonSocial"`
	Telefono      *string `gorm:"column:Telefono"`
	Direccion     *string `gorm:"column:Direccion"`
	Comuna        *string `gorm:"column:Comuna"`
	Giro          *string `gorm:"column:Giro"`
	ClienteActivo bool    `gorm:"not null;default:true;column:ClienteActivo"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Cliente) TableName() string { return "cliente" }
