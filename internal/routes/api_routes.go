// inmo-velar/internal/routes/api_routes.go
package routes

import (
	"github.com/JSUARCAR/inmo-velar-sub001/internal/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registra las rutas del API que requieren sesión.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		// --- DESOCUPACIONES ---
		desocupaciones := apiGroup.Group("/desocupaciones")
		{
			desocupaciones.GET("", handlers.ListDesocupacionesHandler)
			desocupaciones.POST("", handlers.IniciarDesocupacionHandler)
			desocupaciones.GET("/candidatos", handlers.ListCandidatosHandler)
			desocupaciones.GET("/:id", handlers.GetDesocupacionHandler)
			desocupaciones.GET("/:id/checklist", handlers.GetChecklistHandler)
			desocupaciones.GET("/:id/progreso", handlers.GetProgresoHandler)
			desocupaciones.GET("/:id/acta", handlers.GetActaHandler)
			desocupaciones.POST("/:id/finalizar", handlers.FinalizarDesocupacionHandler)
			desocupaciones.POST("/:id/cancelar", handlers.CancelarDesocupacionHandler)
			desocupaciones.POST("/tareas/:id/completar", handlers.CompletarTareaHandler)
		}
	}
}
