// inmo-velar/internal/services/desocupacion_service_test.go
package services

import (
	"strings"
	"testing"
	"time"

	"github.com/JSUARCAR/inmo-velar-sub001/internal/eventos"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/migration"
	"github.com/JSUARCAR/inmo-velar-sub001/internal/repos"
	"github.com/JSUARCAR/inmo-velar-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	migrator := migration.NewMigrator(db)
	migration.Registrar(migrator)
	require.NoError(t, migrator.Up())
	return db
}

// seedContrato crea propiedad, persona, arrendatario y un contrato activo
// con el ID indicado. Devuelve el id de la propiedad.
func seedContrato(t *testing.T, db *gorm.DB, idContrato uint, direccion, inquilino string) uint {
	persona := models.Persona{NombreCompleto: inquilino, NumeroDocumento: "100200300"}
	require.NoError(t, db.Create(&persona).Error)

	arrendatario := models.Arrendatario{IDPersona: persona.ID}
	require.NoError(t, db.Create(&arrendatario).Error)

	propiedad := models.Propiedad{Direccion: direccion, Disponibilidad: models.PropiedadOcupada}
	require.NoError(t, db.Create(&propiedad).Error)

	contrato := models.Contrato{
		ID:             idContrato,
		IDPropiedad:    propiedad.ID,
		IDArrendatario: arrendatario.ID,
		Estado:         models.ContratoActivo,
	}
	require.NoError(t, db.Create(&contrato).Error)
	return propiedad.ID
}

func setupServicio(t *testing.T) (*gorm.DB, *DesocupacionService, *eventos.Bus) {
	db := setupDB(t)
	bus := eventos.NewBus()
	eventos.RegistrarDisponibilidadHandler(bus, db)
	return db, NewDesocupacionService(db, nil, bus), bus
}

func fechaProgramada() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func contarFilas(t *testing.T, db *gorm.DB, modelo interface{}) int64 {
	var cuenta int64
	require.NoError(t, db.Model(modelo).Count(&cuenta).Error)
	return cuenta
}

func TestIniciarCreaChecklistFijo(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "entrega acordada", "agent1")
	require.NoError(t, err)
	assert.NotZero(t, desocupacion.ID)
	assert.Equal(t, models.EstadoEnProceso, desocupacion.Estado)
	assert.Equal(t, "agent1", desocupacion.CreatedBy)

	tareas, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)
	require.Len(t, tareas, len(repos.TareasPredefinidas))
	for i, tarea := range tareas {
		assert.Equal(t, i+1, tarea.Orden)
		assert.Equal(t, repos.TareasPredefinidas[i], tarea.Descripcion)
		assert.False(t, tarea.Completada)
	}
}

func TestIniciarContratoNoEncontrado(t *testing.T) {
	db, servicio, _ := setupServicio(t)

	_, err := servicio.Iniciar(99, fechaProgramada(), "", "agent1")
	var noEncontrado *ErrContratoNoEncontrado
	require.ErrorAs(t, err, &noEncontrado)
	assert.Equal(t, uint(99), noEncontrado.IDContrato)

	assert.Zero(t, contarFilas(t, db, &models.Desocupacion{}))
	assert.Zero(t, contarFilas(t, db, &models.TareaDesocupacion{}))
}

func TestIniciarContratoNoActivo(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")
	require.NoError(t, db.Model(&models.Contrato{}).
		Where("id_contrato_a = ?", 1).
		Update("estado_contrato_a", models.ContratoFinalizado).Error)

	_, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	var noActivo *ErrContratoNoActivo
	require.ErrorAs(t, err, &noActivo)
	assert.Equal(t, models.ContratoFinalizado, noActivo.Estado)

	// Ninguna fila escrita en ninguna de las dos tablas.
	assert.Zero(t, contarFilas(t, db, &models.Desocupacion{}))
	assert.Zero(t, contarFilas(t, db, &models.TareaDesocupacion{}))
}

func TestIniciarDuplicadaYReintentoTrasCancelar(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	primera, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	_, err = servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	var duplicada *ErrDesocupacionDuplicada
	require.ErrorAs(t, err, &duplicada)
	assert.Equal(t, models.EstadoEnProceso, duplicada.Estado)

	require.NoError(t, servicio.Cancelar(primera.ID, "el inquilino desistió", "agent1"))

	segunda, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)
	assert.NotEqual(t, primera.ID, segunda.ID)
}

func TestIndiceUnicoEsLaGuardaAutoritativa(t *testing.T) {
	// Simula la carrera de dos inicios concurrentes: el segundo insert
	// esquiva el pre-chequeo y choca contra el índice único parcial.
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	_, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	directa := &models.Desocupacion{
		IDContrato:      1,
		FechaSolicitud:  fechaProgramada(),
		FechaProgramada: fechaProgramada(),
		Estado:          models.EstadoEnProceso,
	}
	err = servicio.procesos.Crear(db, directa)
	require.Error(t, err)
	assert.True(t, esViolacionUnicidad(err))
}

func TestCalcularProgreso(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	progreso, err := servicio.CalcularProgreso(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, &Progreso{Porcentaje: 0, Completadas: 0, Total: 8}, progreso)

	tareas, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)
	require.NoError(t, servicio.CompletarTarea(tareas[5].ID, "agent1", nil))

	progreso, err = servicio.CalcularProgreso(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, progreso.Porcentaje)
	assert.Equal(t, 1, progreso.Completadas)
	assert.Equal(t, 8, progreso.Total)
	assert.False(t, progreso.PuedeFinalizar)
}

func TestCompletarTarea(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)
	tareas, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)

	obs := "llaves entregadas en oficina"
	require.NoError(t, servicio.CompletarTarea(tareas[5].ID, "agent1", &obs))

	tareas, err = servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)
	entrega := tareas[5]
	assert.True(t, entrega.Completada)
	assert.Equal(t, "agent1", entrega.Responsable)
	assert.Equal(t, obs, entrega.Observaciones)
	assert.NotNil(t, entrega.FechaCompletada)

	err = servicio.CompletarTarea(9999, "agent1", nil)
	var tareaNoEncontrada *ErrTareaNoEncontrada
	assert.ErrorAs(t, err, &tareaNoEncontrada)
}

func TestCompletarTareaDeProcesoCancelado(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)
	tareas, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)

	require.NoError(t, servicio.Cancelar(desocupacion.ID, "desistido", "agent1"))

	err = servicio.CompletarTarea(tareas[0].ID, "agent1", nil)
	var transicion *ErrTransicionInvalida
	require.ErrorAs(t, err, &transicion)
}

// contadorContratos envuelve la superficie real de contratos y cuenta las
// escrituras para verificar "a lo sumo una vez por finalización lógica".
type contadorContratos struct {
	ContratoStore
	finalizaciones int
}

func (c *contadorContratos) Finalizar(db *gorm.DB, idContrato uint, motivo, usuario string) error {
	c.finalizaciones++
	return c.ContratoStore.Finalizar(db, idContrato, motivo, usuario)
}

func TestFinalizarForzadaCompletaTodo(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	idPropiedad := seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)
	tareas, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)

	// 3 de 8 completadas a mano, una de ellas con observaciones propias.
	obs := "inventario sin novedades"
	require.NoError(t, servicio.CompletarTarea(tareas[0].ID, "agent1", nil))
	require.NoError(t, servicio.CompletarTarea(tareas[1].ID, "agent1", nil))
	require.NoError(t, servicio.CompletarTarea(tareas[2].ID, "agent1", &obs))

	require.NoError(t, servicio.Finalizar(desocupacion.ID, "agent2"))

	tareas, err = servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)
	forzadas := 0
	for _, tarea := range tareas {
		assert.True(t, tarea.Completada)
		if tarea.Observaciones == repos.NotaAutocompletada {
			forzadas++
		}
	}
	assert.Equal(t, 5, forzadas)

	// La observación escrita a mano no fue pisada por la nota centinela.
	assert.Equal(t, obs, tareas[2].Observaciones)

	actualizada, err := servicio.Obtener(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoCompletada, actualizada.Estado)
	require.NotNil(t, actualizada.FechaReal)
	assert.Equal(t, soloFecha(time.Now()).Day(), actualizada.FechaReal.Day())
	assert.Equal(t, 100, actualizada.ProgresoPorcentaje)

	var contrato models.Contrato
	require.NoError(t, db.First(&contrato, "id_contrato_a = ?", 1).Error)
	assert.Equal(t, models.ContratoFinalizado, contrato.Estado)
	assert.Contains(t, contrato.MotivoCancelacion, "Desocupación completada")

	// La cascada de disponibilidad liberó la propiedad.
	var propiedad models.Propiedad
	require.NoError(t, db.First(&propiedad, "id_propiedad = ?", idPropiedad).Error)
	assert.Equal(t, models.PropiedadLibre, propiedad.Disponibilidad)
}

func TestFinalizarEsIdempotente(t *testing.T) {
	db, servicio, bus := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	contador := &contadorContratos{ContratoStore: repos.ContratoRepo{}}
	servicio.ConContratos(contador)

	publicados := 0
	bus.Suscribir(func(eventos.ContratoFinalizado) { publicados++ })

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	require.NoError(t, servicio.Finalizar(desocupacion.ID, "agent1"))
	primera, err := servicio.Obtener(desocupacion.ID)
	require.NoError(t, err)

	// El reintento es válido desde 'Completada' y no repite la escritura
	// del contrato ni cambia la fecha real.
	require.NoError(t, servicio.Finalizar(desocupacion.ID, "agent1"))
	segunda, err := servicio.Obtener(desocupacion.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, contador.finalizaciones)
	assert.Equal(t, 1, publicados)
	assert.Equal(t, models.EstadoCompletada, segunda.Estado)
	assert.Equal(t, primera.FechaReal.Unix(), segunda.FechaReal.Unix())
}

func TestFinalizarRecuperaEjecucionParcial(t *testing.T) {
	// Una ejecución anterior dejó el proceso 'Completada' pero el contrato
	// quedó 'Activo'. El reintento debe completar el paso que falta.
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Desocupacion{}).
		Where("id_desocupacion = ?", desocupacion.ID).
		Update("estado", models.EstadoCompletada).Error)

	require.NoError(t, servicio.Finalizar(desocupacion.ID, "agent1"))

	var contrato models.Contrato
	require.NoError(t, db.First(&contrato, "id_contrato_a = ?", 1).Error)
	assert.Equal(t, models.ContratoFinalizado, contrato.Estado)
}

func TestFinalizarCancelada(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)
	require.NoError(t, servicio.Cancelar(desocupacion.ID, "desistido", "agent1"))

	err = servicio.Finalizar(desocupacion.ID, "agent1")
	var transicion *ErrTransicionInvalida
	require.ErrorAs(t, err, &transicion)
	assert.Equal(t, models.EstadoCancelada, transicion.Estado)
}

func TestFinalizarNoEncontrada(t *testing.T) {
	_, servicio, _ := setupServicio(t)

	err := servicio.Finalizar(404, "agent1")
	var noEncontrada *ErrDesocupacionNoEncontrada
	require.ErrorAs(t, err, &noEncontrada)
}

// contratosQueFallan hace fallar la escritura del contrato a mitad de la
// transacción de finalización.
type contratosQueFallan struct {
	ContratoStore
}

func (contratosQueFallan) Finalizar(db *gorm.DB, idContrato uint, motivo, usuario string) error {
	return gorm.ErrInvalidTransaction
}

func TestFinalizarEsAtomica(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")
	servicio.ConContratos(contratosQueFallan{ContratoStore: repos.ContratoRepo{}})

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	err = servicio.Finalizar(desocupacion.ID, "agent1")
	var transaccion *ErrTransaccion
	require.ErrorAs(t, err, &transaccion)

	// Nada quedó persistido: ni el autocompletado ni el cambio de estado.
	completadas, total, err := servicio.tareas.ContarProgreso(db, desocupacion.ID)
	require.NoError(t, err)
	assert.Zero(t, completadas)
	assert.EqualValues(t, 8, total)

	actual, err := servicio.Obtener(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoEnProceso, actual.Estado)
	assert.Nil(t, actual.FechaReal)

	var contrato models.Contrato
	require.NoError(t, db.First(&contrato, "id_contrato_a = ?", 1).Error)
	assert.Equal(t, models.ContratoActivo, contrato.Estado)
}

func TestFinalizarConContratoFinalizadoPorOtroFlujo(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	contador := &contadorContratos{ContratoStore: repos.ContratoRepo{}}
	servicio.ConContratos(contador)

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	// Otro flujo (p. ej. una terminación anticipada) cerró el contrato.
	require.NoError(t, db.Model(&models.Contrato{}).
		Where("id_contrato_a = ?", 1).
		Update("estado_contrato_a", models.ContratoCancelado).Error)

	// La finalización sigue siendo válida y omite el contrato sin error.
	require.NoError(t, servicio.Finalizar(desocupacion.ID, "agent1"))
	assert.Zero(t, contador.finalizaciones)

	actual, err := servicio.Obtener(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoCompletada, actual.Estado)
}

func TestCancelar(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "notas iniciales", "agent1")
	require.NoError(t, err)
	tareasAntes, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)

	require.NoError(t, servicio.Cancelar(desocupacion.ID, "el propietario retiró el inmueble", "agent1"))

	actual, err := servicio.Obtener(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoCancelada, actual.Estado)
	assert.True(t, strings.HasPrefix(actual.Observaciones, "notas iniciales"))
	assert.Contains(t, actual.Observaciones, "CANCELADA: el propietario retiró el inmueble")

	// Ninguna tarea fue mutada por la cancelación.
	tareasDespues, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, tareasAntes, tareasDespues)

	// Terminal: ni recancelar ni cancelar una completada.
	err = servicio.Cancelar(desocupacion.ID, "otra vez", "agent1")
	var transicion *ErrTransicionInvalida
	require.ErrorAs(t, err, &transicion)
}

func TestCancelarCompletada(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)
	require.NoError(t, servicio.Finalizar(desocupacion.ID, "agent1"))

	err = servicio.Cancelar(desocupacion.ID, "tarde", "agent1")
	var transicion *ErrTransicionInvalida
	require.ErrorAs(t, err, &transicion)
	assert.Equal(t, models.EstadoCompletada, transicion.Estado)
}

func TestListarCandidatos(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Carrera 7 #10-20", "María Gómez")
	seedContrato(t, db, 2, "Avenida 3 #5-15", "Juan Pérez")

	candidatos, err := servicio.ListarCandidatos()
	require.NoError(t, err)
	require.Len(t, candidatos, 2)

	// Ordenados por dirección.
	assert.Equal(t, "Avenida 3 #5-15", candidatos[0].Direccion)
	assert.Equal(t, "Juan Pérez", candidatos[0].Inquilino)
	assert.Equal(t, "Carrera 7 #10-20", candidatos[1].Direccion)

	// Un contrato no activo sale de la lista.
	require.NoError(t, db.Model(&models.Contrato{}).
		Where("id_contrato_a = ?", 2).
		Update("estado_contrato_a", models.ContratoFinalizado).Error)
	candidatos, err = servicio.ListarCandidatos()
	require.NoError(t, err)
	require.Len(t, candidatos, 1)
	assert.EqualValues(t, 1, candidatos[0].IDContrato)
}

func TestListarPaginadoConProgresoYJoins(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")
	seedContrato(t, db, 2, "Avenida 3 #5-15", "María Gómez")

	primera, err := servicio.Iniciar(1, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), "", "agent1")
	require.NoError(t, err)
	_, err = servicio.Iniciar(2, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "", "agent1")
	require.NoError(t, err)

	tareas, err := servicio.Checklist(primera.ID)
	require.NoError(t, err)
	require.NoError(t, servicio.CompletarTarea(tareas[0].ID, "agent1", nil))
	require.NoError(t, servicio.CompletarTarea(tareas[1].ID, "agent1", nil))

	items, total, err := servicio.ListarPaginado(1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)

	// Ordenadas por fecha programada ascendente.
	assert.EqualValues(t, 2, items[0].IDContrato)
	assert.Equal(t, "Avenida 3 #5-15", items[0].DireccionPropiedad)
	assert.Equal(t, "María Gómez", items[0].NombreInquilino)
	assert.Equal(t, 0, items[0].ProgresoPorcentaje)

	assert.EqualValues(t, 1, items[1].IDContrato)
	assert.Equal(t, 25, items[1].ProgresoPorcentaje)

	// Paginación: página de tamaño 1.
	items, total, err = servicio.ListarPaginado(2, 1, "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0].IDContrato)

	// Filtro por estado.
	require.NoError(t, servicio.Cancelar(primera.ID, "desistido", "agent1"))
	items, total, err = servicio.ListarPaginado(1, 10, models.EstadoEnProceso)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].IDContrato)
}

func TestDatosActa(t *testing.T) {
	db, servicio, _ := setupServicio(t)
	seedContrato(t, db, 1, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(1, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	acta, err := servicio.DatosActa(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, desocupacion.ID, acta.IDDesocupacion)
	assert.EqualValues(t, 1, acta.IDContrato)
	assert.Equal(t, "Calle 12 #34-56", acta.Direccion)
	assert.Equal(t, "Juan Pérez", acta.Inquilino)
	assert.Equal(t, "100200300", acta.Documento)

	_, err = servicio.DatosActa(404)
	var noEncontrada *ErrDesocupacionNoEncontrada
	require.ErrorAs(t, err, &noEncontrada)
}

func TestEscenarioCompleto(t *testing.T) {
	// El recorrido completo: iniciar para el contrato 42, completar la
	// entrega de llaves, revisar el progreso y finalizar.
	db, servicio, _ := setupServicio(t)
	idPropiedad := seedContrato(t, db, 42, "Calle 12 #34-56", "Juan Pérez")

	desocupacion, err := servicio.Iniciar(42, fechaProgramada(), "", "agent1")
	require.NoError(t, err)

	tareas, err := servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)
	require.Equal(t, "Entrega de llaves", tareas[5].Descripcion)
	require.NoError(t, servicio.CompletarTarea(tareas[5].ID, "agent1", nil))

	progreso, err := servicio.CalcularProgreso(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, progreso.Completadas)
	assert.Equal(t, 8, progreso.Total)
	assert.Equal(t, 12, progreso.Porcentaje)

	require.NoError(t, servicio.Finalizar(desocupacion.ID, "agent1"))

	actual, err := servicio.Obtener(desocupacion.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoCompletada, actual.Estado)
	require.NotNil(t, actual.FechaReal)
	hoy := soloFecha(time.Now())
	assert.Equal(t, hoy.Format("2006-01-02"), actual.FechaReal.Format("2006-01-02"))

	tareas, err = servicio.Checklist(desocupacion.ID)
	require.NoError(t, err)
	for _, tarea := range tareas {
		assert.True(t, tarea.Completada)
	}

	var contrato models.Contrato
	require.NoError(t, db.First(&contrato, "id_contrato_a = ?", 42).Error)
	assert.Equal(t, models.ContratoFinalizado, contrato.Estado)

	var propiedad models.Propiedad
	require.NoError(t, db.First(&propiedad, "id_propiedad = ?", idPropiedad).Error)
	assert.Equal(t, models.PropiedadLibre, propiedad.Disponibilidad)
}
