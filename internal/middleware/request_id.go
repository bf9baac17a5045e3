// inmo-velar/internal/middleware/request_id.go
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID asigna un identificador a cada petición y la registra con su
// duración. El id se devuelve en la cabecera X-Request-ID para poder
// correlacionar reportes de los operadores con el log.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)

		inicio := time.Now()
		c.Next()

		slog.Info("petición",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duración", time.Since(inicio))
	}
}
