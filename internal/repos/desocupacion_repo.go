// inmo-velar/internal/repos/desocupacion_repo.go
package repos

import (
	"time"

	"github.com/JSUARCAR/inmo-velar-sub001/models"
	"gorm.io/gorm"
)

// columnas que necesitan los listados: la desocupación completa más la
// dirección, el inquilino y el progreso calculado sobre el checklist.
const columnasListado = `
	d.*,
	prop.direccion_propiedad AS direccion_propiedad,
	per.nombre_completo AS nombre_inquilino,
	(SELECT CASE WHEN COUNT(*) = 0 THEN 0
	        ELSE SUM(CASE WHEN t.completada THEN 1 ELSE 0 END) * 100 / COUNT(*) END
	   FROM tareas_desocupacion t
	  WHERE t.id_desocupacion = d.id_desocupacion) AS progreso_porcentaje`

// DesocupacionRepo persiste los procesos de desocupación. Igual que
// TareaRepo, recibe el *gorm.DB del llamador en cada método.
type DesocupacionRepo struct{}

func (DesocupacionRepo) consultaListado(db *gorm.DB) *gorm.DB {
	return db.Table("desocupaciones d").
		Joins("JOIN contratos_arrendamientos ca ON d.id_contrato = ca.id_contrato_a").
		Joins("JOIN propiedades prop ON ca.id_propiedad = prop.id_propiedad").
		Joins("JOIN arrendatarios arr ON ca.id_arrendatario = arr.id_arrendatario").
		Joins("JOIN personas per ON arr.id_persona = per.id_persona")
}

// Crear inserta el registro de la desocupación. El índice único parcial
// sobre (id_contrato, fecha_programada) es la guarda autoritativa contra
// duplicados; la violación llega como gorm.ErrDuplicatedKey y el servicio
// la traduce.
func (DesocupacionRepo) Crear(db *gorm.DB, d *models.Desocupacion) error {
	return db.Create(d).Error
}

// BuscarActiva devuelve la desocupación 'En Proceso' o 'Completada' para el
// par (contrato, fecha programada), o nil si no existe. Es el pre-chequeo
// de IniciarDesocupacion; la autoridad final es el índice único.
func (DesocupacionRepo) BuscarActiva(db *gorm.DB, idContrato uint, fechaProgramada time.Time) (*models.Desocupacion, error) {
	var d models.Desocupacion
	err := db.Where(
		"id_contrato = ? AND fecha_programada = ? AND estado IN ?",
		idContrato, fechaProgramada, []string{models.EstadoEnProceso, models.EstadoCompletada},
	).First(&d).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListarTodas devuelve todas las desocupaciones con dirección, inquilino y
// progreso, ordenadas por fecha programada. estado vacío = sin filtro.
func (r DesocupacionRepo) ListarTodas(db *gorm.DB, estado string) ([]models.Desocupacion, error) {
	query := r.consultaListado(db).Select(columnasListado)
	if estado != "" {
		query = query.Where("d.estado = ?", estado)
	}

	var desocupaciones []models.Desocupacion
	err := query.Order("d.fecha_programada ASC").Scan(&desocupaciones).Error
	if err != nil {
		return nil, err
	}
	return desocupaciones, nil
}

// ListarPaginado devuelve una página de desocupaciones y el total de filas
// que satisfacen el filtro.
func (r DesocupacionRepo) ListarPaginado(db *gorm.DB, page, pageSize int, estado string) ([]models.Desocupacion, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 25
	}

	base := r.consultaListado(db)
	if estado != "" {
		base = base.Where("d.estado = ?", estado)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var desocupaciones []models.Desocupacion
	err := base.Select(columnasListado).
		Order("d.fecha_programada ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&desocupaciones).Error
	if err != nil {
		return nil, 0, err
	}
	return desocupaciones, total, nil
}

// ObtenerPorID devuelve una desocupación con sus campos de listado, o nil
// si no existe.
func (r DesocupacionRepo) ObtenerPorID(db *gorm.DB, id uint) (*models.Desocupacion, error) {
	var d models.Desocupacion
	err := r.consultaListado(db).
		Select(columnasListado).
		Where("d.id_desocupacion = ?", id).
		Scan(&d).Error
	if err != nil {
		return nil, err
	}
	if d.ID == 0 {
		return nil, nil
	}
	return &d, nil
}

// ActualizarEstado hace el update parcial de los campos mutables. No valida
// la máquina de estados; eso es responsabilidad del servicio.
func (DesocupacionRepo) ActualizarEstado(db *gorm.DB, id uint, nuevoEstado string, fechaReal *time.Time, observaciones *string, usuario string) error {
	ahora := time.Now()
	valores := map[string]interface{}{
		"estado":     nuevoEstado,
		"updated_at": ahora,
		"updated_by": usuario,
	}
	if fechaReal != nil {
		valores["fecha_real"] = *fechaReal
	}
	if observaciones != nil {
		valores["observaciones"] = *observaciones
	}

	result := db.Model(&models.Desocupacion{}).
		Where("id_desocupacion = ?", id).
		Updates(valores)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CompletarCAS pasa la desocupación a 'Completada' solo si su estado sigue
// siendo 'En Proceso' o 'Completada' (compare-and-swap). Devuelve false si
// ninguna fila coincidió: otro actor la movió a un estado terminal distinto
// en paralelo y el llamador debe abortar. La fecha real solo se escribe la
// primera vez; un reintento conserva la original.
func (DesocupacionRepo) CompletarCAS(db *gorm.DB, id uint, fechaReal time.Time, usuario string) (bool, error) {
	ahora := time.Now()
	result := db.Model(&models.Desocupacion{}).
		Where("id_desocupacion = ? AND estado IN ?", id, []string{models.EstadoEnProceso, models.EstadoCompletada}).
		Updates(map[string]interface{}{
			"estado":     models.EstadoCompletada,
			"fecha_real": gorm.Expr("COALESCE(fecha_real, ?)", fechaReal),
			"updated_at": ahora,
			"updated_by": usuario,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
