// inmo-velar/internal/services/desocupacion_service.go

// Package services contiene la lógica de negocio del motor de
// desocupaciones: validaciones, máquina de estados y el protocolo
// transaccional de finalización.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JSUARCAR/inmo-velar-sub001/internal/eventos"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/repos"
	"github.com/JSUARCAR/inmo-velar-sub001/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	cacheKeyCandidatos = "desocupaciones:candidatos"
	cacheTTLCandidatos = 5 * time.Minute
)

// ContratoStore es la superficie del módulo de contratos que consume el
// motor de desocupaciones. Los métodos de escritura deben poder ejecutarse
// dentro de la transacción del llamador (reciben su *gorm.DB).
type ContratoStore interface {
	EstadoContrato(db *gorm.DB, idContrato uint) (string, error)
	Finalizar(db *gorm.DB, idContrato uint, motivo, usuario string) error
	ListarCandidatos(db *gorm.DB) ([]models.ContratoCandidato, error)
}

// Progreso resume el avance del checklist de una desocupación. Es
// informativo: la finalización no exige PuedeFinalizar, porque la política
// del negocio es la finalización forzada (ver Finalizar).
type Progreso struct {
	Porcentaje     int  `json:"porcentaje"`
	Completadas    int  `json:"completadas"`
	Total          int  `json:"total"`
	PuedeFinalizar bool `json:"puedeFinalizar"`
}

// DesocupacionService orquesta el proceso de desocupación de inmuebles.
type DesocupacionService struct {
	db        *gorm.DB
	cache     *redis.Client // puede ser nil: sin caché
	bus       *eventos.Bus
	procesos  repos.DesocupacionRepo
	tareas    repos.TareaRepo
	contratos ContratoStore
}

func NewDesocupacionService(db *gorm.DB, cache *redis.Client, bus *eventos.Bus) *DesocupacionService {
	return &DesocupacionService{
		db:        db,
		cache:     cache,
		bus:       bus,
		contratos: repos.ContratoRepo{},
	}
}

// ConContratos sustituye la superficie de contratos. Pensado para pruebas.
func (s *DesocupacionService) ConContratos(contratos ContratoStore) *DesocupacionService {
	s.contratos = contratos
	return s
}

// Iniciar abre un proceso de desocupación para un contrato activo y crea
// su checklist de tareas predefinidas. El insert del proceso y el lote de
// tareas van en una sola transacción.
func (s *DesocupacionService) Iniciar(idContrato uint, fechaProgramada time.Time, observaciones, usuario string) (*models.Desocupacion, error) {
	fechaProgramada = soloFecha(fechaProgramada)

	estado, err := s.contratos.EstadoContrato(s.db, idContrato)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &ErrContratoNoEncontrado{IDContrato: idContrato}
	}
	if err != nil {
		return nil, err
	}
	if estado != models.ContratoActivo {
		return nil, &ErrContratoNoActivo{IDContrato: idContrato, Estado: estado}
	}

	// Pre-chequeo de duplicados para dar un mensaje útil; la guarda
	// autoritativa es el índice único parcial de la tabla.
	existente, err := s.procesos.BuscarActiva(s.db, idContrato, fechaProgramada)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, &ErrDesocupacionDuplicada{
			IDContrato:      idContrato,
			FechaProgramada: fechaProgramada,
			Estado:          existente.Estado,
		}
	}

	desocupacion := &models.Desocupacion{
		IDContrato:      idContrato,
		FechaSolicitud:  soloFecha(time.Now()),
		FechaProgramada: fechaProgramada,
		Estado:          models.EstadoEnProceso,
		Observaciones:   observaciones,
		CreatedBy:       usuario,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.procesos.Crear(tx, desocupacion); err != nil {
			return err
		}
		tareas, err := s.tareas.CrearLote(tx, desocupacion.ID, repos.TareasPredefinidas)
		if err != nil {
			return err
		}
		desocupacion.Tareas = tareas
		return nil
	})
	if err != nil {
		if esViolacionUnicidad(err) {
			// Dos inicios concurrentes para el mismo par: el índice decidió.
			return nil, &ErrDesocupacionDuplicada{
				IDContrato:      idContrato,
				FechaProgramada: fechaProgramada,
				Estado:          models.EstadoEnProceso,
			}
		}
		return nil, err
	}

	slog.Info("Desocupación iniciada",
		"id_desocupacion", desocupacion.ID,
		"id_contrato", idContrato,
		"usuario", usuario)
	return desocupacion, nil
}

// CompletarTarea marca una tarea del checklist como hecha. Se rechaza si el
// proceso está cancelado; sobre un proceso ya completado se tolera como red
// de seguridad (la tarea ya quedó cerrada por la finalización forzada).
func (s *DesocupacionService) CompletarTarea(idTarea uint, usuario string, observaciones *string) error {
	tarea, err := s.tareas.ObtenerPorID(s.db, idTarea)
	if err != nil {
		return err
	}
	if tarea == nil {
		return &ErrTareaNoEncontrada{ID: idTarea}
	}

	var proceso models.Desocupacion
	if err := s.db.First(&proceso, "id_desocupacion = ?", tarea.IDDesocupacion).Error; err != nil {
		return err
	}
	if proceso.Estado == models.EstadoCancelada {
		return &ErrTransicionInvalida{ID: proceso.ID, Estado: proceso.Estado, Operacion: "completar tarea"}
	}

	return s.tareas.Completar(s.db, idTarea, usuario, observaciones)
}

// CalcularProgreso devuelve el avance del checklist.
func (s *DesocupacionService) CalcularProgreso(idDesocupacion uint) (*Progreso, error) {
	if err := s.verificarExiste(idDesocupacion); err != nil {
		return nil, err
	}

	completadas, total, err := s.tareas.ContarProgreso(s.db, idDesocupacion)
	if err != nil {
		return nil, err
	}

	porcentaje := 0
	if total > 0 {
		porcentaje = int(completadas * 100 / total)
	}
	return &Progreso{
		Porcentaje:     porcentaje,
		Completadas:    int(completadas),
		Total:          int(total),
		PuedeFinalizar: total > 0 && completadas == total,
	}, nil
}

// Finalizar cierra una desocupación (Finalización Forzada):
//
//  1. Autocompleta las tareas pendientes con nota de auditoría.
//  2. Marca la desocupación como 'Completada' con la fecha real de entrega.
//  3. Si el contrato sigue 'Activo', lo pasa a 'Finalizado'.
//
// Los tres pasos van en una sola transacción: o se aplican todos o ninguno.
// Se admite reintentar sobre una desocupación ya 'Completada': si una
// ejecución anterior actualizó el proceso pero no llegó al contrato, el
// reintento completa el paso que falta sin duplicar efectos. Tras confirmar
// la transacción, y solo si esta ejecución escribió el contrato, se publica
// ContratoFinalizado para que la cascada libere la propiedad.
func (s *DesocupacionService) Finalizar(idDesocupacion uint, usuario string) error {
	var proceso models.Desocupacion
	err := s.db.First(&proceso, "id_desocupacion = ?", idDesocupacion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ErrDesocupacionNoEncontrada{ID: idDesocupacion}
	}
	if err != nil {
		return err
	}

	if proceso.Estado != models.EstadoEnProceso && proceso.Estado != models.EstadoCompletada {
		return &ErrTransicionInvalida{ID: idDesocupacion, Estado: proceso.Estado, Operacion: "finalizar"}
	}

	ahora := time.Now()
	contratoEscrito := false

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.tareas.AutocompletarPendientes(tx, idDesocupacion, usuario, ahora); err != nil {
			return err
		}

		ok, err := s.procesos.CompletarCAS(tx, idDesocupacion, soloFecha(ahora), usuario)
		if err != nil {
			return err
		}
		if !ok {
			// Otro actor la canceló entre la lectura y el update.
			return &ErrTransicionInvalida{ID: idDesocupacion, Estado: models.EstadoCancelada, Operacion: "finalizar"}
		}

		estadoContrato, err := s.contratos.EstadoContrato(tx, proceso.IDContrato)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slog.Warn("Finalización: el contrato referenciado no existe",
				"id_desocupacion", idDesocupacion, "id_contrato", proceso.IDContrato)
			return nil
		}
		if err != nil {
			return err
		}

		if estadoContrato == models.ContratoActivo {
			motivo := fmt.Sprintf("Desocupación completada - ID %d", idDesocupacion)
			if err := s.contratos.Finalizar(tx, proceso.IDContrato, motivo, usuario); err != nil {
				return err
			}
			contratoEscrito = true
		} else {
			// Reintento idempotente, o el contrato lo finalizó otro flujo.
			// Se avisa por si es lo segundo.
			slog.Warn("Finalización: el contrato ya no estaba Activo, se omite su actualización",
				"id_desocupacion", idDesocupacion,
				"id_contrato", proceso.IDContrato,
				"estado_contrato", estadoContrato)
		}
		return nil
	})
	if err != nil {
		var invalida *ErrTransicionInvalida
		if errors.As(err, &invalida) {
			return err
		}
		return &ErrTransaccion{Causa: err}
	}

	if contratoEscrito {
		s.invalidarCandidatos()
		s.bus.Publicar(eventos.ContratoFinalizado{
			IDContrato:     proceso.IDContrato,
			IDDesocupacion: idDesocupacion,
			Usuario:        usuario,
			Fecha:          ahora,
		})
	}

	slog.Info("Desocupación finalizada",
		"id_desocupacion", idDesocupacion,
		"id_contrato", proceso.IDContrato,
		"contrato_actualizado", contratoEscrito,
		"usuario", usuario)
	return nil
}

// Cancelar aborta una desocupación en proceso. El motivo se agrega a las
// observaciones existentes con el marcador CANCELADA, sin tocar las tareas.
func (s *DesocupacionService) Cancelar(idDesocupacion uint, motivo, usuario string) error {
	var proceso models.Desocupacion
	err := s.db.First(&proceso, "id_desocupacion = ?", idDesocupacion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ErrDesocupacionNoEncontrada{ID: idDesocupacion}
	}
	if err != nil {
		return err
	}

	if proceso.Estado != models.EstadoEnProceso {
		return &ErrTransicionInvalida{ID: idDesocupacion, Estado: proceso.Estado, Operacion: "cancelar"}
	}

	observaciones := fmt.Sprintf("%s\n\nCANCELADA: %s", proceso.Observaciones, motivo)
	if err := s.procesos.ActualizarEstado(s.db, idDesocupacion, models.EstadoCancelada, nil, &observaciones, usuario); err != nil {
		return err
	}

	slog.Info("Desocupación cancelada",
		"id_desocupacion", idDesocupacion, "usuario", usuario)
	return nil
}

// Obtener devuelve una desocupación con dirección, inquilino y progreso, o
// nil si no existe.
func (s *DesocupacionService) Obtener(idDesocupacion uint) (*models.Desocupacion, error) {
	return s.procesos.ObtenerPorID(s.db, idDesocupacion)
}

// Listar devuelve todas las desocupaciones; estado vacío = sin filtro.
func (s *DesocupacionService) Listar(estado string) ([]models.Desocupacion, error) {
	return s.procesos.ListarTodas(s.db, estado)
}

// ListarPaginado devuelve una página de desocupaciones y el total.
func (s *DesocupacionService) ListarPaginado(page, pageSize int, estado string) ([]models.Desocupacion, int64, error) {
	return s.procesos.ListarPaginado(s.db, page, pageSize, estado)
}

// Checklist devuelve las tareas de una desocupación, ordenadas.
func (s *DesocupacionService) Checklist(idDesocupacion uint) ([]models.TareaDesocupacion, error) {
	if err := s.verificarExiste(idDesocupacion); err != nil {
		return nil, err
	}
	return s.tareas.ListarPorDesocupacion(s.db, idDesocupacion)
}

// ListarCandidatos devuelve los contratos activos elegibles para iniciar
// una desocupación, con caché corto en Redis cuando está disponible.
func (s *DesocupacionService) ListarCandidatos() ([]models.ContratoCandidato, error) {
	if s.cache != nil {
		if cacheado, err := s.cache.Get(ctxCache(), cacheKeyCandidatos).Result(); err == nil {
			var candidatos []models.ContratoCandidato
			if json.Unmarshal([]byte(cacheado), &candidatos) == nil {
				return candidatos, nil
			}
		} else if err != redis.Nil {
			slog.Error("Redis GET falló para candidatos", "error", err)
		}
	}

	candidatos, err := s.contratos.ListarCandidatos(s.db)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if datos, err := json.Marshal(candidatos); err == nil {
			s.cache.Set(ctxCache(), cacheKeyCandidatos, datos, cacheTTLCandidatos)
		}
	}
	return candidatos, nil
}

func (s *DesocupacionService) verificarExiste(idDesocupacion uint) error {
	var cuenta int64
	err := s.db.Model(&models.Desocupacion{}).
		Where("id_desocupacion = ?", idDesocupacion).
		Count(&cuenta).Error
	if err != nil {
		return err
	}
	if cuenta == 0 {
		return &ErrDesocupacionNoEncontrada{ID: idDesocupacion}
	}
	return nil
}

func (s *DesocupacionService) invalidarCandidatos() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctxCache(), cacheKeyCandidatos).Err(); err != nil {
		slog.Error("No se pudo invalidar el caché de candidatos", "error", err)
	}
}

func ctxCache() context.Context { return context.Background() }

// soloFecha descarta la hora: las fechas de solicitud, programada y real
// son fechas de calendario.
func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// esViolacionUnicidad reconoce la violación del índice único en los dos
// backends soportados.
func esViolacionUnicidad(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
