// inmo-velar/config/redis.go
package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis inicializa el cliente de Redis. Redis es opcional: sin
// REDIS_ADDR el cliente queda en nil y las capas que cachean (candidatos a
// desocupación, datos de usuario del middleware) consultan siempre la BD.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR no definida, el caché queda deshabilitado")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("No se pudo conectar a Redis", "error", err)
		RDB = nil
		return
	}

	slog.Info("Conexión a Redis establecida")
}
