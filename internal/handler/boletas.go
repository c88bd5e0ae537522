package handler

import (
	"fmt"
	"net/http"

	"gestorcn/internal/apierror"
	"gestorcn/internal/dto"
	"gestorcn/internal/service"

	"github.com/gin-gonic/gin"
)

type BoletasHandler struct{ svc service.BoletaService }

func NewBoletasHandler(svc service.BoletaService) *BoletasHandler {
	return &BoletasHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear boleta
// @Description  Crea la boleta y sus detalles como unidad atomica; los campos obligatorios faltantes se reportan antes de escribir.
// @Tags         boletas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearBoletaRequest true "Boleta con detalles"
// @Success      201  {object} dto.BoletaResponse
// @Failure      400  {object} apierror.ValidationError
// @Router       /boletas [post]
func (h *BoletasHandler) Crear(c *gin.Context) {
	var req dto.CrearBoletaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, "crear boleta", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BoletasHandler) Listar(c *gin.Context) {
	var filter dto.BoletaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "listar boletas", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoletasHandler) ObtenerPorNumero(c *gin.Context) {
	numero, ok := paramID(c, "numero")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorNumero(c.Request.Context(), numero)
	if err != nil {
		respondError(c, "obtener boleta", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar boleta
// @Description  Reconcilia los detalles contra la lista enviada (elimina, inserta y actualiza) y fija total y observaciones, todo en una transaccion.
// @Tags         boletas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        numero path int true "Numero de boleta"
// @Param        body body dto.ActualizarBoletaRequest true "Lista completa de detalles"
// @Success      200  {object} dto.BoletaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /boletas/{numero} [put]
func (h *BoletasHandler) Actualizar(c *gin.Context) {
	numero, ok := paramID(c, "numero")
	if !ok {
		return
	}
	var req dto.ActualizarBoletaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), numero, req)
	if err != nil {
		respondError(c, "actualizar boleta", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoletasHandler) Eliminar(c *gin.Context) {
	numero, ok := paramID(c, "numero")
	if !ok {
		return
	}
	resp, err := h.svc.Eliminar(c.Request.Context(), numero)
	if err != nil {
		respondError(c, "eliminar boleta", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BoletasHandler) Completada(c *gin.Context) {
	numero, ok := paramID(c, "numero")
	if !ok {
		return
	}
	var req dto.CompletadaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetCompletada(c.Request.Context(), numero, *req.Completada); err != nil {
		respondError(c, "completada boleta", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"numero_boleta": numero, "completada": *req.Completada})
}

func (h *BoletasHandler) CompletadaMultiple(c *gin.Context) {
	var req dto.CompletadaMultipleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	actualizadas, err := h.svc.SetCompletadaMultiple(c.Request.Context(), req)
	if err != nil {
		respondError(c, "completada multiple", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actualizadas": actualizadas, "completada": *req.Completada})
}

// Reporte godoc
// @Summary      Reporte de ventas
// @Description  Agrega cantidad, suma, promedio, minimo y maximo de totales de boleta por vendedor en un rango de fechas.
// @Tags         boletas
// @Produce      json
// @Security     BearerAuth
// @Param        vendedor     query int    true "Codigo del vendedor"
// @Param        fecha_inicio query string true "YYYY-MM-DD"
// @Param        fecha_fin    query string true "YYYY-MM-DD"
// @Success      200 {object} dto.ReporteVentasResponse
// @Router       /boletas/reporte [get]
func (h *BoletasHandler) Reporte(c *gin.Context) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("vendedor, fecha_inicio y fecha_fin son obligatorios"))
		return
	}
	resp, err := h.svc.Reporte(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "reporte ventas", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarPDF renders the boleta synchronously and streams it back.
func (h *BoletasHandler) DescargarPDF(c *gin.Context) {
	numero, ok := paramID(c, "numero")
	if !ok {
		return
	}
	path, err := h.svc.GenerarPDF(c.Request.Context(), numero)
	if err != nil {
		respondError(c, "pdf boleta", err)
		return
	}
	c.FileAttachment(path, fmt.Sprintf("boleta_%d.pdf", numero))
}
