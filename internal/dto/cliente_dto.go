package dto

type CrearClienteRequest struct {
	Rut         string  `json:"rut"          validate:"required"`
	RazonSocial string  `json:"razon_social" validate:"required"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
	Comuna      *string `json:"comuna"`
	Giro        *string `json:"giro"`
}

type ActualizarClienteRequest struct {
	Rut         string  `json:"rut"          validate:"required"`
	RazonSocial string  `json:"razon_social" validate:"required"`
	Telefono    *string `json:"telefono"`
	Direccion   *string `json:"direccion"`
	Comuna      *string `json:"comuna"`
	Giro        *string `json:"giro"`
}

// ClienteFilter is bound from the query string of GET /clientes.
// Activo: "false" = inactivos, "all" = todos, anything else = activos (default).
type ClienteFilter struct {
	Activo string `form:"activo"`
	Rut    string `form:"rut"`
}

type ClienteResponse struct {
	CodigoCliente int     `json:"codigo_cliente"`
	Rut           string  `json:"rut"`
	RazonSocial   string  `json:"razon_social"`
	Telefono      *string `json:"telefono"`
	Direccion     *string `json:"direccion"`
	Comuna        *string `json:"comuna"`
	Giro          *string `json:"giro"`
	ClienteActivo bool    `json:"cliente_activo"`
}

// EliminarResponse reports which branch of the soft/hard delete policy ran,
// so the UI can present an accurate message.
type EliminarResponse struct {
	Tipo string `json:"tipo"` // hard_delete | soft_delete
}

const (
	TipoHardDelete = "hard_delete"
	TipoSoftDelete = "soft_delete"
)
