package handler

import (
	"net/http"

	"gestorcn/internal/dto"
	"gestorcn/internal/service"

	"github.com/gin-gonic/gin"
)

// UsuariosHandler exposes the admin-only user management endpoints.
type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, "listar usuarios", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar cambia password y/o rol. Degradar al ultimo administrador
// responde 409, igual que eliminarlo.
func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "actualizar usuario", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.EliminarUsuario(c.Request.Context(), id); err != nil {
		respondError(c, "eliminar usuario", err)
		return
	}
	c.Status(http.StatusNoContent)
}
