// inmo-velar/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/JSUARCAR/inmo-velar-sub001/config"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/eventos"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/handlers"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/migration"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/routes"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env solo existe en desarrollo; en producción las variables vienen
	// del entorno del servicio.
	if err := godotenv.Load(); err == nil {
		slog.Info("Variables cargadas desde .env")
	}

	config.LoadJWTKey()
	config.ConnectDB()
	config.ConnectRedis()

	migrator := migration.NewMigrator(config.DB)
	migration.Registrar(migrator)
	if err := migrator.Up(); err != nil {
		slog.Error("Error aplicando migraciones", "error", err)
		os.Exit(1)
	}

	// La cascada de disponibilidad escucha las finalizaciones de contrato.
	bus := eventos.NewBus()
	eventos.RegistrarDisponibilidadHandler(bus, config.DB)

	servicio := services.NewDesocupacionService(config.DB, config.RDB, bus)
	handlers.SetDesocupacionService(servicio)

	r := gin.Default()
	routes.SetupRoutes(r)

	puerto := os.Getenv("PORT")
	if puerto == "" {
		puerto = "8080"
	}
	slog.Info("Servidor escuchando", "puerto", puerto)
	if err := r.Run(":" + puerto); err != nil {
		slog.Error("El servidor terminó con error", "error", err)
		os.Exit(1)
	}
}
