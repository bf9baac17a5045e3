// inmo-velar/models/contrato.go
package models

import (
	"time"
)

// Estados del contrato de arrendamiento. El motor de desocupaciones solo
// lee y escribe este estado; el resto del ciclo de vida del contrato se
// gestiona en su propio módulo.
const (
	ContratoActivo     = "Activo"
	ContratoFinalizado = "Finalizado"
	ContratoCancelado  = "Cancelado"
)

// Contrato describe un contrato de arrendamiento en la superficie mínima
// que necesita el motor de desocupaciones: estado, propiedad e inquilino.
type Contrato struct {
	ID             uint `gorm:"column:id_contrato_a;primaryKey" json:"ID"`
	IDPropiedad    uint `gorm:"column:id_propiedad;index"       json:"idPropiedad"`
	IDArrendatario uint `gorm:"column:id_arrendatario;index"    json:"idArrendatario"`

	FechaInicio *time.Time `gorm:"column:fecha_inicio_contrato_a" json:"fechaInicio,omitempty"`
	FechaFin    *time.Time `gorm:"column:fecha_fin_contrato_a"    json:"fechaFin,omitempty"`

	Estado            string `gorm:"column:estado_contrato_a;default:'Activo';index" json:"estado"`
	MotivoCancelacion string `gorm:"column:motivo_cancelacion;type:text"             json:"motivoCancelacion,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt,omitempty"`
	UpdatedBy string     `gorm:"column:updated_by" json:"updatedBy,omitempty"`

	Propiedad    *Propiedad    `gorm:"foreignKey:IDPropiedad"    json:"propiedad,omitempty"`
	Arrendatario *Arrendatario `gorm:"foreignKey:IDArrendatario" json:"arrendatario,omitempty"`
}

func (Contrato) TableName() string { return "contratos_arrendamientos" }

// ContratoCandidato es la fila que alimenta el selector de contratos
// elegibles para iniciar una desocupación.
type ContratoCandidato struct {
	IDContrato uint   `json:"idContrato"`
	Direccion  string `json:"direccion"`
	Inquilino  string `json:"inquilino"`
}
