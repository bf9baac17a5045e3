// inmo-velar/internal/migration/migrations.go
package migration

import (
	"github.com/JSUARCAR/inmo-velar-sub001/models"
	"gorm.io/gorm"
)

// indiceUnicoDesocupacion impide dos desocupaciones no canceladas para el
// mismo par (contrato, fecha programada). Es la guarda autoritativa del
// invariante; el pre-chequeo del servicio solo mejora el mensaje de error.
// La sintaxis de índice parcial es la misma en PostgreSQL y SQLite.
const indiceUnicoDesocupacion = `
	CREATE UNIQUE INDEX IF NOT EXISTS ux_desocupacion_contrato_fecha
	ON desocupaciones (id_contrato, fecha_programada)
	WHERE estado IN ('En Proceso', 'Completada')`

// Registrar inscribe todas las migraciones del esquema en el migrador.
func Registrar(m *Migrator) {
	m.Register(&Migration{
		Version: "20250601000001",
		Name:    "esquema_inicial",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(
				&models.User{},
				&models.Persona{},
				&models.Arrendatario{},
				&models.Propiedad{},
				&models.Contrato{},
				&models.Desocupacion{},
				&models.TareaDesocupacion{},
			)
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(
				&models.TareaDesocupacion{},
				&models.Desocupacion{},
				&models.Contrato{},
				&models.Propiedad{},
				&models.Arrendatario{},
				&models.Persona{},
				&models.User{},
			)
		},
	})

	m.Register(&Migration{
		Version: "20250601000002",
		Name:    "indice_unico_desocupacion",
		Up: func(db *gorm.DB) error {
			return db.Exec(indiceUnicoDesocupacion).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP INDEX IF EXISTS ux_desocupacion_contrato_fecha").Error
		},
	})
}
