// inmo-velar/models/desocupacion.go
package models

import (
	"time"
)

// Estados posibles de una desocupación.
// El flujo es: En Proceso -> Completada | Cancelada (ambos terminales).
const (
	EstadoEnProceso  = "En Proceso"
	EstadoCompletada = "Completada"
	EstadoCancelada  = "Cancelada"
)

// Desocupacion representa el proceso de terminación de un contrato de
// arrendamiento: desde la solicitud hasta la entrega real del inmueble.
//
// Reglas de negocio:
//   - Solo puede iniciarse para contratos en estado 'Activo'.
//   - Requiere fecha programada de entrega.
//   - Al finalizar, el contrato pasa a estado 'Finalizado'.
type Desocupacion struct {
	ID         uint `gorm:"column:id_desocupacion;primaryKey" json:"ID"`
	IDContrato uint `gorm:"column:id_contrato;not null;index" json:"idContrato"`

	FechaSolicitud  time.Time  `gorm:"column:fecha_solicitud;not null"  json:"fechaSolicitud"`
	FechaProgramada time.Time  `gorm:"column:fecha_programada;not null" json:"fechaProgramada"`
	FechaReal       *time.Time `gorm:"column:fecha_real"                json:"fechaReal,omitempty"`

	Estado        string `gorm:"column:estado;default:'En Proceso';index" json:"estado"`
	Observaciones string `gorm:"column:observaciones;type:text"           json:"observaciones"`

	// Auditoría
	CreatedAt time.Time  `gorm:"column:created_at" json:"createdAt"`
	CreatedBy string     `gorm:"column:created_by" json:"createdBy"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt,omitempty"`
	UpdatedBy string     `gorm:"column:updated_by" json:"updatedBy,omitempty"`

	Contrato *Contrato           `gorm:"foreignKey:IDContrato" json:"contrato,omitempty"`
	Tareas   []TareaDesocupacion `gorm:"foreignKey:IDDesocupacion;constraint:OnDelete:CASCADE" json:"tareas,omitempty"`

	// Campos de solo lectura, poblados por joins. Nunca se escriben.
	DireccionPropiedad string `gorm:"->;-:migration" json:"direccionPropiedad,omitempty"`
	NombreInquilino    string `gorm:"->;-:migration" json:"nombreInquilino,omitempty"`
	ProgresoPorcentaje int    `gorm:"->;-:migration" json:"progresoPorcentaje"`
}

func (Desocupacion) TableName() string { return "desocupaciones" }

// EstaEnProceso indica si la desocupación sigue abierta.
func (d *Desocupacion) EstaEnProceso() bool { return d.Estado == EstadoEnProceso }

// EstaCompletada indica si la desocupación ya fue finalizada.
func (d *Desocupacion) EstaCompletada() bool { return d.Estado == EstadoCompletada }

// TareaDesocupacion es una tarea individual del checklist de desocupación.
// El conjunto de tareas se fija al crear la desocupación (8 tareas, orden 1..8)
// y nunca se agregan ni eliminan; solo pasan de pendiente a completada.
type TareaDesocupacion struct {
	ID             uint `gorm:"column:id_tarea;primaryKey"        json:"ID"`
	IDDesocupacion uint `gorm:"column:id_desocupacion;not null;index" json:"idDesocupacion"`

	Descripcion string `gorm:"column:descripcion;not null" json:"descripcion"`
	Orden       int    `gorm:"column:orden;not null"       json:"orden"`

	Completada      bool       `gorm:"column:completada;default:false" json:"completada"`
	FechaCompletada *time.Time `gorm:"column:fecha_completada"         json:"fechaCompletada,omitempty"`
	Responsable     string     `gorm:"column:responsable"              json:"responsable,omitempty"`
	Observaciones   string     `gorm:"column:observaciones;type:text"  json:"observaciones,omitempty"`
}

func (TareaDesocupacion) TableName() string { return "tareas_desocupacion" }
