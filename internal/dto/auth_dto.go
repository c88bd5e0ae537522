package dto

type LoginRequest struct {
	NombreUsuario string `json:"nombre_usuario" validate:"required"`
	Password      string `json:"password"       validate:"required"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	User         UsuarioResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RegisterRequest struct {
	NombreUsuario string `json:"nombre_usuario" validate:"required,min=3"`
	Password      string `json:"password"       validate:"required,min=6"`
	RolAdmin      bool   `json:"rol_admin"`
}

type ActualizarUsuarioRequest struct {
	Password string `json:"password" validate:"omitempty,min=6"`
	// RolAdmin nil = leave unchanged. Demoting the last admin is rejected.
	RolAdmin *bool `json:"rol_admin"`
}

type UsuarioResponse struct {
	CodigoUsuario int    `json:"codigo_usuario"`
	NombreUsuario string `json:"nombre_usuario"`
	RolAdmin      bool   `json:"rol_admin"`
}
