package service

import (
	"errors"
	"strings"
)

// ErrValidacion marks request-level failures detected before any write:
// malformed dates, empty line lists, bad flags. Mapped to HTTP 400.
var ErrValidacion = errors.New("solicitud invalida")

// ErrUltimoAdmin guards the system against being left with zero admins.
// It fires on both deletion and demotion of the last remaining admin.
var ErrUltimoAdmin = errors.New("no se puede eliminar ni degradar al ultimo administrador")

// CamposFaltantesError identifies every mandatory field absent from a request.
// Raised before any write is attempted.
type CamposFaltantesError struct {
	Campos []string
}

func (e *CamposFaltantesError) Error() string {
	return "faltan campos obligatorios: " + strings.Join(e.Campos, ", ")
}
