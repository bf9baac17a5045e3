// inmo-velar/internal/services/acta.go
package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ActaDesocupacion reúne los datos del proceso, el contrato, la propiedad
// y el arrendatario que necesita el acta de entrega. Este servicio solo
// entrega los datos; la generación del documento vive en otro módulo.
type ActaDesocupacion struct {
	IDDesocupacion  uint       `json:"idDesocupacion"`
	FechaSolicitud  time.Time  `json:"fechaSolicitud"`
	FechaProgramada time.Time  `json:"fechaProgramada"`
	Estado          string     `json:"estado"`
	Observaciones   string     `json:"observaciones,omitempty"`
	IDContrato      uint       `json:"idContrato"`
	FechaContrato   *time.Time `json:"fechaContrato,omitempty"`
	Direccion       string     `json:"direccion"`
	Matricula       string     `json:"matricula,omitempty"`
	Inquilino       string     `json:"inquilino"`
	Documento       string     `json:"documento,omitempty"`
	Telefono        string     `json:"telefono,omitempty"`
	Email           string     `json:"email,omitempty"`
}

// DatosActa devuelve los datos completos para llenar el acta de entrega de
// una desocupación.
func (s *DesocupacionService) DatosActa(idDesocupacion uint) (*ActaDesocupacion, error) {
	var acta ActaDesocupacion
	err := s.db.Table("desocupaciones d").
		Joins("JOIN contratos_arrendamientos ca ON d.id_contrato = ca.id_contrato_a").
		Joins("JOIN propiedades p ON ca.id_propiedad = p.id_propiedad").
		Joins("JOIN arrendatarios arr ON ca.id_arrendatario = arr.id_arrendatario").
		Joins("JOIN personas per ON arr.id_persona = per.id_persona").
		Where("d.id_desocupacion = ?", idDesocupacion).
		Select(`d.id_desocupacion AS id_desocupacion,
			d.fecha_solicitud AS fecha_solicitud,
			d.fecha_programada AS fecha_programada,
			d.estado AS estado,
			d.observaciones AS observaciones,
			ca.id_contrato_a AS id_contrato,
			ca.fecha_inicio_contrato_a AS fecha_contrato,
			p.direccion_propiedad AS direccion,
			p.matricula_inmobiliaria AS matricula,
			per.nombre_completo AS inquilino,
			per.numero_documento AS documento,
			per.telefono_principal AS telefono,
			per.correo_electronico AS email`).
		Take(&acta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ErrDesocupacionNoEncontrada{ID: idDesocupacion}
	}
	if err != nil {
		return nil, err
	}
	return &acta, nil
}
