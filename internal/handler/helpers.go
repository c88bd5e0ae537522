package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"gestorcn/internal/apierror"
	"gestorcn/internal/middleware"
	"gestorcn/internal/repository"
	"gestorcn/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// paramID parses a numeric path parameter. Writes the 400 response itself
// when the value is not an integer.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return id, true
}

// respondError maps a service/repository error onto the HTTP taxonomy:
// validation 400, not-found 404, conflict 409, transient 503, everything
// else 500 with a generic message. The full error is logged with operation
// context before responding; clients never see driver details.
func respondError(c *gin.Context, op string, err error) {
	log.Error().
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("op", op).
		Err(err).
		Msg("request failed")

	var faltantes *service.CamposFaltantesError
	switch {
	case errors.As(err, &faltantes):
		c.JSON(http.StatusBadRequest, apierror.MissingFields(faltantes.Campos...))
	case errors.Is(err, service.ErrValidacion):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Registro no encontrado"))
	case errors.Is(err, service.ErrUltimoAdmin):
		c.JSON(http.StatusConflict, apierror.New(service.ErrUltimoAdmin.Error()))
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, apierror.New("Operacion en conflicto: registro duplicado o referenciado"))
	case errors.Is(err, repository.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, apierror.New("Base de datos ocupada, intente nuevamente"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
	}
}
