// inmo-velar/internal/eventos/bus.go

// Package eventos publica los eventos de dominio del back-office. Las
// cascadas entre módulos (como liberar la propiedad al finalizar un
// contrato) son eventos explícitos con suscriptores en proceso, no
// triggers de base de datos.
package eventos

import (
	"log/slog"
	"sync"
	"time"
)

// ContratoFinalizado se publica después de confirmar la transacción que
// marca un contrato como 'Finalizado'. Se emite a lo sumo una vez por
// finalización lógica: los reintentos idempotentes no lo vuelven a emitir.
type ContratoFinalizado struct {
	IDContrato     uint
	IDDesocupacion uint
	Usuario        string
	Fecha          time.Time
}

// Bus es un bus de eventos en memoria, síncrono. Los suscriptores se
// registran al arrancar la aplicación; Publicar los invoca en orden de
// registro.
type Bus struct {
	mu           sync.RWMutex
	suscriptores []func(ContratoFinalizado)
}

func NewBus() *Bus {
	return &Bus{}
}

// Suscribir registra un manejador para ContratoFinalizado.
func (b *Bus) Suscribir(handler func(ContratoFinalizado)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.suscriptores = append(b.suscriptores, handler)
}

// Publicar entrega el evento a todos los suscriptores. Un pánico en un
// suscriptor no debe tumbar la petición que finaliza la desocupación.
func (b *Bus) Publicar(evento ContratoFinalizado) {
	b.mu.RLock()
	handlers := make([]func(ContratoFinalizado), len(b.suscriptores))
	copy(handlers, b.suscriptores)
	b.mu.RUnlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Pánico en suscriptor de ContratoFinalizado",
						"id_contrato", evento.IDContrato, "panic", r)
				}
			}()
			handler(evento)
		}()
	}
}
