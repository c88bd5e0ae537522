package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DetalleRequest is one incoming boleta line. IdDetalle set = "existing" line
// to update in place; nil = "new" line to insert. Subtotal is recomputed
// server-side as Cantidad * PrecioUnitario before every write.
type DetalleRequest struct {
	IdDetalle           *int            `json:"id_detalle"`
	CodigoProducto      int             `json:"codigo_producto" validate:"required"`
	Cantidad            decimal.Decimal `json:"cantidad"        validate:"required"`
	PrecioUnitario      decimal.Decimal `json:"precio_unitario" validate:"required"`
	DescripcionProducto *string         `json:"descripcion_producto"`
}

type CrearBoletaRequest struct {
	CodigoCliente    int              `json:"codigo_cliente"`
	CodigoUsuario    int              `json:"codigo_usuario"`
	FechaBoleta      string           `json:"fecha_boleta"`      // YYYY-MM-DD
	FechaVencimiento string           `json:"fecha_vencimiento"` // YYYY-MM-DD
	TotalBoleta      decimal.Decimal  `json:"total_boleta"`
	Observaciones    string           `json:"observaciones"`
	Detalles         []DetalleRequest `json:"detalles" validate:"dive"`
}

// ActualizarBoletaRequest carries the full replacement line-item list plus the
// caller-recomputed total. Stored lines absent from Detalles are deleted.
type ActualizarBoletaRequest struct {
	TotalBoleta   decimal.Decimal  `json:"total_boleta" validate:"required"`
	Observaciones string           `json:"observaciones"`
	Detalles      []DetalleRequest `json:"detalles" validate:"dive"`
}

type CompletadaRequest struct {
	Completada *bool `json:"completada" validate:"required"`
}

type CompletadaMultipleRequest struct {
	Numeros    []int `json:"numeros"    validate:"required,min=1"`
	Completada *bool `json:"completada" validate:"required"`
}

// BoletaFilter is bound from the query string of GET /boletas.
type BoletaFilter struct {
	Completada string `form:"completada"` // "true" | "false" | "all" (default)
	Fecha      string `form:"fecha"`      // YYYY-MM-DD
	Cliente    int    `form:"cliente"`
	Vendedor   int    `form:"vendedor"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ReporteFilter is bound from the query string of GET /boletas/reporte.
type ReporteFilter struct {
	Vendedor    int    `form:"vendedor"     validate:"required"`
	FechaInicio string `form:"fecha_inicio" validate:"required"`
	FechaFin    string `form:"fecha_fin"    validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleResponse struct {
	IdDetalle           int             `json:"id_detalle"`
	CodigoProducto      int             `json:"codigo_producto"`
	Producto            string          `json:"producto"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	PrecioUnitario      decimal.Decimal `json:"precio_unitario"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	DescripcionProducto *string         `json:"descripcion_producto"`
}

type BoletaResponse struct {
	NumeroBoleta     int               `json:"numero_boleta"`
	CodigoCliente    int               `json:"codigo_cliente"`
	Cliente          string            `json:"cliente"`
	CodigoUsuario    int               `json:"codigo_usuario"`
	Vendedor         string            `json:"vendedor"`
	FechaBoleta      string            `json:"fecha_boleta"`
	FechaVencimiento string            `json:"fecha_vencimiento"`
	TotalBoleta      decimal.Decimal   `json:"total_boleta"`
	Observaciones    string            `json:"observaciones"`
	Completada       bool              `json:"completada"`
	Detalles         []DetalleResponse `json:"detalles"`
}

type BoletaListResponse struct {
	Data  []BoletaResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// EliminarBoletaResponse reports how many line items the cascade removed.
type EliminarBoletaResponse struct {
	NumeroBoleta       int   `json:"numero_boleta"`
	DetallesEliminados int64 `json:"detalles_eliminados"`
}

// ReporteVentasResponse aggregates a seller's boletas inside a date range.
// An empty result set yields the zero-valued object, never an error.
type ReporteVentasResponse struct {
	Vendedor      int             `json:"vendedor"`
	FechaInicio   string          `json:"fecha_inicio"`
	FechaFin      string          `json:"fecha_fin"`
	NumeroVentas  int64           `json:"numero_ventas"`
	TotalVentas   decimal.Decimal `json:"total_ventas"`
	PromedioVenta decimal.Decimal `json:"promedio_venta"`
	VentaMinima   decimal.Decimal `json:"venta_minima"`
	VentaMaxima   decimal.Decimal `json:"venta_maxima"`
}
