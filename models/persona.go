// inmo-velar/models/persona.go
package models

import (
	"time"
)

// Persona guarda los datos de identificación y contacto compartidos por
// arrendatarios, propietarios y asesores.
type Persona struct {
	ID                uint   `gorm:"column:id_persona;primaryKey"    json:"ID"`
	NombreCompleto    string `gorm:"column:nombre_completo;not null" json:"nombreCompleto"`
	NumeroDocumento   string `gorm:"column:numero_documento;index"   json:"numeroDocumento,omitempty"`
	TelefonoPrincipal string `gorm:"column:telefono_principal"       json:"telefonoPrincipal,omitempty"`
	CorreoElectronico string `gorm:"column:correo_electronico"       json:"correoElectronico,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Persona) TableName() string { return "personas" }

// Arrendatario vincula una persona con su rol de inquilino.
type Arrendatario struct {
	ID        uint `gorm:"column:id_arrendatario;primaryKey" json:"ID"`
	IDPersona uint `gorm:"column:id_persona;not null;index"  json:"idPersona"`

	Persona *Persona `gorm:"foreignKey:IDPersona" json:"persona,omitempty"`
}

func (Arrendatario) TableName() string { return "arrendatarios" }
