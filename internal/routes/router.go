// inmo-velar/internal/routes/router.go
package routes

import (
	"github.com/JSUARCAR/inmo-velar-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes inicializa todas las rutas de la aplicación.
func SetupRoutes(r *gin.Engine) {
	r.Use(middleware.RequestID())

	// Rutas públicas: entrada y salida de sesión.
	RegisterAuthRoutes(r)

	// Todo lo demás exige un token de sesión válido.
	authRequired := r.Group("/")
	authRequired.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(authRequired)
	}
}
