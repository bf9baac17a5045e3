// inmo-velar/internal/handlers/desocupacion_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JSUARCAR/inmo-velar-sub001/internal/services"
	"github.com/gin-gonic/gin"
)

var desocupaciones *services.DesocupacionService

// SetDesocupacionService inyecta el servicio al registrar las rutas.
func SetDesocupacionService(s *services.DesocupacionService) {
	desocupaciones = s
}

// IniciarDesocupacionInput - datos del formulario de inicio. La fecha llega
// como string para controlar el formato nosotros.
type IniciarDesocupacionInput struct {
	IDContrato      uint   `json:"idContrato" binding:"required"`
	FechaProgramada string `json:"fechaProgramada" binding:"required"`
	Observaciones   string `json:"observaciones"`
}

// CompletarTareaInput - datos para completar una tarea del checklist.
type CompletarTareaInput struct {
	Observaciones *string `json:"observaciones"`
}

// CancelarDesocupacionInput - motivo de la cancelación.
type CancelarDesocupacionInput struct {
	Motivo string `json:"motivo" binding:"required"`
}

// usuarioActual devuelve el login del usuario autenticado, puesto en el
// contexto por el middleware de autenticación.
func usuarioActual(c *gin.Context) string {
	if login := c.GetString("login"); login != "" {
		return login
	}
	return "sistema"
}

// responderError traduce la taxonomía de errores del servicio a códigos
// HTTP. Los errores de validación llevan su mensaje tal cual; los de
// transacción se reportan como transitorios y seguros de reintentar.
func responderError(c *gin.Context, err error) {
	var (
		contratoNoEncontrado *services.ErrContratoNoEncontrado
		noEncontrada         *services.ErrDesocupacionNoEncontrada
		tareaNoEncontrada    *services.ErrTareaNoEncontrada
		noActivo             *services.ErrContratoNoActivo
		duplicada            *services.ErrDesocupacionDuplicada
		transicion           *services.ErrTransicionInvalida
		transaccion          *services.ErrTransaccion
	)

	switch {
	case errors.As(err, &contratoNoEncontrado),
		errors.As(err, &noEncontrada),
		errors.As(err, &tareaNoEncontrada):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &noActivo):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &duplicada), errors.As(err, &transicion):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &transaccion):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":       err.Error(),
			"reintenable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error interno del servidor"})
	}
}

func idDeRuta(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}

// ListDesocupacionesHandler lista desocupaciones con paginación y filtro
// opcional por estado (?estado=En Proceso|Completada|Cancelada).
func ListDesocupacionesHandler(c *gin.Context) {
	page, pageSize := paginacion(c)
	estado := c.Query("estado")

	items, total, err := desocupaciones.ListarPaginado(page, pageSize, estado)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las desocupaciones"})
		return
	}

	c.JSON(http.StatusOK, CreatePaginatedResponse(c, items, total))
}

// IniciarDesocupacionHandler abre un proceso de desocupación nuevo.
func IniciarDesocupacionHandler(c *gin.Context) {
	var input IniciarDesocupacionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fecha, err := time.Parse("2006-01-02", input.FechaProgramada)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de fecha inválido. Se espera YYYY-MM-DD."})
		return
	}

	desocupacion, err := desocupaciones.Iniciar(input.IDContrato, fecha, input.Observaciones, usuarioActual(c))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, desocupacion)
}

// GetDesocupacionHandler devuelve una desocupación por ID.
func GetDesocupacionHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	desocupacion, err := desocupaciones.Obtener(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error de base de datos"})
		return
	}
	if desocupacion == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Desocupación no encontrada"})
		return
	}
	c.JSON(http.StatusOK, desocupacion)
}

// GetChecklistHandler devuelve el checklist completo de una desocupación.
func GetChecklistHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	tareas, err := desocupaciones.Checklist(id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, tareas)
}

// GetProgresoHandler devuelve el avance del checklist.
func GetProgresoHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	progreso, err := desocupaciones.CalcularProgreso(id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, progreso)
}

// GetActaHandler devuelve los datos para llenar el acta de entrega.
func GetActaHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	acta, err := desocupaciones.DatosActa(id)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, acta)
}

// CompletarTareaHandler marca una tarea del checklist como completada.
func CompletarTareaHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	// El cuerpo es opcional: completar sin observaciones es válido.
	var input CompletarTareaInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if err := desocupaciones.CompletarTarea(id, usuarioActual(c), input.Observaciones); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tarea completada"})
}

// FinalizarDesocupacionHandler ejecuta la finalización forzada.
func FinalizarDesocupacionHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	if err := desocupaciones.Finalizar(id, usuarioActual(c)); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Desocupación finalizada"})
}

// CancelarDesocupacionHandler cancela una desocupación en proceso.
func CancelarDesocupacionHandler(c *gin.Context) {
	id, ok := idDeRuta(c)
	if !ok {
		return
	}

	var input CancelarDesocupacionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := desocupaciones.Cancelar(id, input.Motivo, usuarioActual(c)); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Desocupación cancelada"})
}

// ListCandidatosHandler lista los contratos activos elegibles para iniciar
// una desocupación.
func ListCandidatosHandler(c *gin.Context) {
	candidatos, err := desocupaciones.ListarCandidatos()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener los contratos candidatos"})
		return
	}
	c.JSON(http.StatusOK, candidatos)
}
