// inmo-velar/internal/repos/contrato_repo.go
package repos

import (
	"time"

	"github.com/JSUARCAR/inmo-velar-sub001/models"
	"gorm.io/gorm"
)

// ContratoRepo es la superficie mínima del módulo de contratos que usa el
// motor de desocupaciones: leer el estado, finalizar el contrato y listar
// los candidatos activos. El resto del ciclo de vida del contrato vive en
// su propio módulo.
type ContratoRepo struct{}

// EstadoContrato devuelve el estado actual del contrato, o ErrRecordNotFound
// si el contrato no existe.
func (ContratoRepo) EstadoContrato(db *gorm.DB, idContrato uint) (string, error) {
	var contrato models.Contrato
	err := db.Select("estado_contrato_a").First(&contrato, "id_contrato_a = ?", idContrato).Error
	if err != nil {
		return "", err
	}
	return contrato.Estado, nil
}

// Finalizar marca el contrato como 'Finalizado' registrando el motivo. Debe
// llamarse dentro de la transacción del llamador: la liberación de la
// propiedad la ejecuta después el suscriptor del evento ContratoFinalizado.
func (ContratoRepo) Finalizar(db *gorm.DB, idContrato uint, motivo, usuario string) error {
	ahora := time.Now()
	return db.Model(&models.Contrato{}).
		Where("id_contrato_a = ?", idContrato).
		Updates(map[string]interface{}{
			"estado_contrato_a":  models.ContratoFinalizado,
			"motivo_cancelacion": motivo,
			"updated_at":         ahora,
			"updated_by":         usuario,
		}).Error
}

// ListarCandidatos devuelve los contratos activos con la dirección del
// inmueble y el nombre del inquilino, ordenados por dirección. Alimenta el
// selector para iniciar una desocupación.
func (ContratoRepo) ListarCandidatos(db *gorm.DB) ([]models.ContratoCandidato, error) {
	var candidatos []models.ContratoCandidato
	err := db.Table("contratos_arrendamientos ca").
		Joins("JOIN propiedades p ON ca.id_propiedad = p.id_propiedad").
		Joins("JOIN arrendatarios arr ON ca.id_arrendatario = arr.id_arrendatario").
		Joins("JOIN personas per ON arr.id_persona = per.id_persona").
		Where("ca.estado_contrato_a = ?", models.ContratoActivo).
		Select(`ca.id_contrato_a AS id_contrato,
			p.direccion_propiedad AS direccion,
			per.nombre_completo AS inquilino`).
		Order("p.direccion_propiedad ASC").
		Scan(&candidatos).Error
	if err != nil {
		return nil, err
	}
	return candidatos, nil
}

// PropiedadDeContrato devuelve el id de la propiedad asociada al contrato.
func (ContratoRepo) PropiedadDeContrato(db *gorm.DB, idContrato uint) (uint, error) {
	var contrato models.Contrato
	err := db.Select("id_propiedad").First(&contrato, "id_contrato_a = ?", idContrato).Error
	if err != nil {
		return 0, err
	}
	return contrato.IDPropiedad, nil
}
