package handler

import (
	"net/http"

	"gestorcn/internal/apierror"
	"gestorcn/internal/dto"
	"gestorcn/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, "crear producto", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProductosHandler) Listar(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "listar productos", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "obtener producto", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "actualizar producto", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Eliminar(c.Request.Context(), id)
	if err != nil {
		respondError(c, "eliminar producto", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Articulos godoc
// @Summary      Catalogo para seleccion de lineas
// @Description  Productos activos reformateados para el editor de detalles de boleta.
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ArticuloResponse
// @Router       /articulos [get]
func (h *ProductosHandler) Articulos(c *gin.Context) {
	resp, err := h.svc.Articulos(c.Request.Context())
	if err != nil {
		respondError(c, "listar articulos", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
