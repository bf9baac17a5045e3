// inmo-velar/internal/routes/auth_routes.go
package routes

import (
	"github.com/JSUARCAR/inmo-velar-sub001/internal/handlers"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registra las rutas públicas de autenticación.
func RegisterAuthRoutes(r *gin.Engine) {
	r.POST("/login", handlers.LoginHandler)
	r.GET("/logout", handlers.LogoutHandler)
}
