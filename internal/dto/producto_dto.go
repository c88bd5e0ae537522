package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required"`
	PrecioSala  decimal.Decimal `json:"precio_sala" validate:"required,gt=0"`
	PrecioDto   decimal.Decimal `json:"precio_dto"  validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required"`
	PrecioSala  decimal.Decimal `json:"precio_sala" validate:"required,gt=0"`
	PrecioDto   decimal.Decimal `json:"precio_dto"  validate:"min=0"`
}

// ProductoFilter is bound from the query string of GET /productos.
type ProductoFilter struct {
	Activo      string `form:"activo"` // "false" | "all" | default activos
	Descripcion string `form:"descripcion"`
}

type ProductoResponse struct {
	CodigoProducto int             `json:"codigo_producto"`
	Descripcion    string          `json:"descripcion"`
	PrecioSala     decimal.Decimal `json:"precio_sala"`
	PrecioDto      decimal.Decimal `json:"precio_dto"`
	ProductoActivo bool            `json:"producto_activo"`
}

// ArticuloResponse is the product catalog reshaped for boleta line selection:
// only active products, only the fields the line editor needs.
type ArticuloResponse struct {
	CodigoProducto int             `json:"codigo_producto"`
	Descripcion    string          `json:"descripcion"`
	PrecioSala     decimal.Decimal `json:"precio_sala"`
	PrecioDto      decimal.Decimal `json:"precio_dto"`
}
