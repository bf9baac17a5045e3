// inmo-velar/internal/eventos/disponibilidad.go
package eventos

import (
	"log/slog"
	"time"

	"github.com/JSUARCAR/inmo-velar-sub001/models"
	"gorm.io/gorm"
)

// RegistrarDisponibilidadHandler suscribe la cascada de disponibilidad: al
// finalizar un contrato, la propiedad asociada vuelve a quedar 'Libre'.
// El efecto vive aquí y no en un trigger de la BD para que sea visible y
// testeable.
func RegistrarDisponibilidadHandler(bus *Bus, db *gorm.DB) {
	bus.Suscribir(func(evento ContratoFinalizado) {
		var contrato models.Contrato
		if err := db.Select("id_propiedad").First(&contrato, "id_contrato_a = ?", evento.IDContrato).Error; err != nil {
			slog.Error("Cascada de disponibilidad: contrato no encontrado",
				"id_contrato", evento.IDContrato, "error", err)
			return
		}

		ahora := time.Now()
		err := db.Model(&models.Propiedad{}).
			Where("id_propiedad = ?", contrato.IDPropiedad).
			Updates(map[string]interface{}{
				"disponibilidad": models.PropiedadLibre,
				"updated_at":     ahora,
			}).Error
		if err != nil {
			slog.Error("Cascada de disponibilidad: no se pudo liberar la propiedad",
				"id_propiedad", contrato.IDPropiedad, "error", err)
			return
		}

		slog.Info("Propiedad liberada por finalización de contrato",
			"id_propiedad", contrato.IDPropiedad,
			"id_contrato", evento.IDContrato,
			"id_desocupacion", evento.IDDesocupacion)
	})
}
