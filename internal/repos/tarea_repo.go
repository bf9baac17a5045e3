// inmo-velar/internal/repos/tarea_repo.go
package repos

import (
	"time"

	"github.com/JSUARCAR/inmo-velar-sub001/models"
	"gorm.io/gorm"
)

// TareasPredefinidas es el checklist fijo que se copia a cada desocupación
// nueva. El orden de la lista define el campo orden (1..8) de cada tarea.
var TareasPredefinidas = []string{
	"Inspección de la propiedad",
	"Verificación de servicios públicos cancelados",
	"Revisión de inventario de muebles/electrodomésticos",
	"Evaluación de daños y reparaciones necesarias",
	"Cálculo de descuentos/devoluciones del depósito",
	"Entrega de llaves",
	"Firma de acta de entrega",
	"Liquidación final de cuentas",
}

// NotaAutocompletada se escribe en las tareas que cierra la finalización
// forzada y que no tenían observaciones propias.
const NotaAutocompletada = "Autocompletada por Finalización Forzada"

// TareaRepo persiste las tareas del checklist. Todos los métodos reciben el
// *gorm.DB del llamador para poder participar en sus transacciones.
type TareaRepo struct{}

// CrearLote inserta las tareas del checklist para una desocupación recién
// creada, con orden 1..N y completada=false. Debe ejecutarse dentro de la
// misma transacción que el insert de la desocupación.
func (TareaRepo) CrearLote(db *gorm.DB, idDesocupacion uint, descripciones []string) ([]models.TareaDesocupacion, error) {
	tareas := make([]models.TareaDesocupacion, 0, len(descripciones))
	for i, descripcion := range descripciones {
		tareas = append(tareas, models.TareaDesocupacion{
			IDDesocupacion: idDesocupacion,
			Descripcion:    descripcion,
			Orden:          i + 1,
		})
	}
	if err := db.Create(&tareas).Error; err != nil {
		return nil, err
	}
	return tareas, nil
}

// ListarPorDesocupacion devuelve el checklist completo ordenado por orden.
func (TareaRepo) ListarPorDesocupacion(db *gorm.DB, idDesocupacion uint) ([]models.TareaDesocupacion, error) {
	var tareas []models.TareaDesocupacion
	err := db.Where("id_desocupacion = ?", idDesocupacion).
		Order("orden ASC").
		Find(&tareas).Error
	if err != nil {
		return nil, err
	}
	return tareas, nil
}

// ObtenerPorID devuelve una tarea o nil si no existe.
func (TareaRepo) ObtenerPorID(db *gorm.DB, idTarea uint) (*models.TareaDesocupacion, error) {
	var tarea models.TareaDesocupacion
	err := db.First(&tarea, "id_tarea = ?", idTarea).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tarea, nil
}

// Completar marca una tarea como completada por el usuario indicado. Las
// observaciones solo se escriben si vienen informadas (completado directo,
// distinto del autocompletado masivo de la finalización forzada).
func (TareaRepo) Completar(db *gorm.DB, idTarea uint, responsable string, observaciones *string) error {
	ahora := time.Now()
	valores := map[string]interface{}{
		"completada":       true,
		"fecha_completada": ahora,
		"responsable":      responsable,
	}
	if observaciones != nil {
		valores["observaciones"] = *observaciones
	}

	result := db.Model(&models.TareaDesocupacion{}).
		Where("id_tarea = ?", idTarea).
		Updates(valores)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AutocompletarPendientes cierra todas las tareas aún pendientes de una
// desocupación. A las que no tenían observaciones se les escribe la nota
// centinela; las que ya tenían texto se dejan intactas. Es idempotente:
// una segunda llamada no afecta ninguna fila.
func (TareaRepo) AutocompletarPendientes(db *gorm.DB, idDesocupacion uint, responsable string, timestamp time.Time) error {
	return db.Model(&models.TareaDesocupacion{}).
		Where("id_desocupacion = ? AND completada = ?", idDesocupacion, false).
		Updates(map[string]interface{}{
			"completada":       true,
			"fecha_completada": timestamp,
			"responsable":      responsable,
			"observaciones": gorm.Expr(
				"CASE WHEN observaciones IS NULL OR observaciones = '' THEN ? ELSE observaciones END",
				NotaAutocompletada,
			),
		}).Error
}

// ContarProgreso devuelve cuántas tareas hay y cuántas están completadas.
func (TareaRepo) ContarProgreso(db *gorm.DB, idDesocupacion uint) (completadas int64, total int64, err error) {
	err = db.Model(&models.TareaDesocupacion{}).
		Where("id_desocupacion = ?", idDesocupacion).
		Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = db.Model(&models.TareaDesocupacion{}).
		Where("id_desocupacion = ? AND completada = ?", idDesocupacion, true).
		Count(&completadas).Error
	if err != nil {
		return 0, 0, err
	}
	return completadas, total, nil
}
