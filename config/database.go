// inmo-velar/config/database.go
package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB abre la conexión a la base de datos. Con DB_URL definida se usa
// PostgreSQL (Railway/producción); si no, se usa un archivo SQLite local,
// igual que en los entornos de desarrollo de la agencia.
func ConnectDB() {
	var (
		db  *gorm.DB
		err error
	)

	// TranslateError convierte las violaciones de unicidad de ambos
	// backends en gorm.ErrDuplicatedKey, que es lo que el servicio de
	// desocupaciones traduce a su error de duplicado.
	cfg := &gorm.Config{TranslateError: true}

	if dsn := os.Getenv("DB_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		path := os.Getenv("VELAR_DB_PATH")
		if path == "" {
			path = "./inmobiliaria_velar.db"
		}
		slog.Warn("DB_URL no definida, usando SQLite local", "path", path)
		db, err = gorm.Open(sqlite.Open(path), cfg)
	}

	if err != nil {
		slog.Error("Error de conexión a la base de datos", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Conexión a la base de datos establecida")
}
