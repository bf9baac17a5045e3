// inmo-velar/internal/services/errors.go
package services

import (
	"fmt"
	"time"
)

// Errores de validación del motor de desocupaciones. Son corregibles por el
// operador y se devuelven con su mensaje tal cual; nunca se reintentan
// automáticamente. Los fallos dentro de la transacción de finalización se
// envuelven en ErrTransaccion y sí son seguros de reintentar.

// ErrContratoNoEncontrado indica que el contrato referenciado no existe.
type ErrContratoNoEncontrado struct {
	IDContrato uint
}

func (e *ErrContratoNoEncontrado) Error() string {
	return fmt.Sprintf("Contrato %d no encontrado", e.IDContrato)
}

// ErrContratoNoActivo indica que el contrato no está en estado 'Activo' y
// por tanto no admite iniciar una desocupación. Informa el estado actual
// para que el operador pueda actuar.
type ErrContratoNoActivo struct {
	IDContrato uint
	Estado     string
}

func (e *ErrContratoNoActivo) Error() string {
	return fmt.Sprintf(
		"El contrato %d debe estar Activo para iniciar desocupación (estado actual: %s)",
		e.IDContrato, e.Estado)
}

// ErrDesocupacionDuplicada indica que ya existe una desocupación no
// cancelada para el mismo contrato y fecha programada.
type ErrDesocupacionDuplicada struct {
	IDContrato      uint
	FechaProgramada time.Time
	Estado          string
}

func (e *ErrDesocupacionDuplicada) Error() string {
	return fmt.Sprintf(
		"Este contrato ya tiene una desocupación con estado '%s' para la fecha programada %s. "+
			"Seleccione una fecha diferente o cancele la desocupación existente.",
		e.Estado, e.FechaProgramada.Format("2006-01-02"))
}

// ErrDesocupacionNoEncontrada indica que la desocupación no existe.
type ErrDesocupacionNoEncontrada struct {
	ID uint
}

func (e *ErrDesocupacionNoEncontrada) Error() string {
	return fmt.Sprintf("Desocupación %d no encontrada", e.ID)
}

// ErrTareaNoEncontrada indica que la tarea del checklist no existe.
type ErrTareaNoEncontrada struct {
	ID uint
}

func (e *ErrTareaNoEncontrada) Error() string {
	return fmt.Sprintf("Tarea %d no encontrada", e.ID)
}

// ErrTransicionInvalida indica que la desocupación no está en un estado
// válido para la operación solicitada.
type ErrTransicionInvalida struct {
	ID        uint
	Estado    string
	Operacion string
}

func (e *ErrTransicionInvalida) Error() string {
	return fmt.Sprintf("Estado inválido para %s: %s", e.Operacion, e.Estado)
}

// ErrTransaccion envuelve cualquier fallo dentro del bloque atómico de
// finalización. La transacción completa se revierte, así que el llamador
// puede repetir exactamente la misma llamada sin riesgo.
type ErrTransaccion struct {
	Causa error
}

func (e *ErrTransaccion) Error() string {
	return fmt.Sprintf("Transacción fallida al finalizar desocupación: %v", e.Causa)
}

func (e *ErrTransaccion) Unwrap() error { return e.Causa }
