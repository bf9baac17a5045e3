// inmo-velar/models/propiedad.go
package models

import (
	"time"
)

// Disponibilidad de una propiedad. La transición a 'Libre' al finalizar un
// contrato la realiza el suscriptor de eventos de disponibilidad, no el
// motor de desocupaciones.
const (
	PropiedadLibre    = "Libre"
	PropiedadOcupada  = "Ocupada"
	PropiedadRetirada = "Retirada"
)

// Propiedad describe un inmueble administrado. Superficie mínima: el motor
// de desocupaciones solo necesita la dirección para los listados y la
// disponibilidad para el efecto en cascada.
type Propiedad struct {
	ID                    uint   `gorm:"column:id_propiedad;primaryKey"       json:"ID"`
	Direccion             string `gorm:"column:direccion_propiedad;not null"  json:"direccion"`
	MatriculaInmobiliaria string `gorm:"column:matricula_inmobiliaria"        json:"matriculaInmobiliaria,omitempty"`
	Disponibilidad        string `gorm:"column:disponibilidad;default:'Libre'" json:"disponibilidad"`

	CreatedAt time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updatedAt,omitempty"`
}

func (Propiedad) TableName() string { return "propiedades" }
