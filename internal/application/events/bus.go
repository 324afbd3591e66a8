package events

import "sync"

// Kind clasifica los eventos transversales del cliente (sesión, progreso,
// notificaciones). Un canal de publicación explícito e inyectable en lugar
// de estado global.
type Kind string

const (
	SessionChanged       Kind = "session-changed"
	ProgressStarted      Kind = "progress-started"
	ProgressEnded        Kind = "progress-ended"
	NotificationEnqueued Kind = "notification-enqueued"
)

// Event es un aviso publicado en el bus.
type Event struct {
	Kind    Kind
	Key     string // operación (progreso) o email (sesión)
	Message string // texto para el usuario (notificaciones)
	Active  bool   // sesión: true al iniciar, false al cerrar
}

// Handler recibe eventos. Se invoca de forma síncrona en la goroutine del
// publicador; los handlers deben ser baratos.
type Handler func(Event)

// Bus reparte eventos a sus suscriptores. Seguro para uso concurrente.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewBus crea un bus vacío.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registra un handler para todos los eventos.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish entrega el evento a todos los suscriptores en orden de registro.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := b.handlers
	b.mu.RUnlock()
	for _, h := range hs {
		h(e)
	}
}

// Notify encola una notificación para el usuario.
func (b *Bus) Notify(message string) {
	b.Publish(Event{Kind: NotificationEnqueued, Message: message})
}

// StartProgress y EndProgress delimitan una operación en curso.
func (b *Bus) StartProgress(op string) {
	b.Publish(Event{Kind: ProgressStarted, Key: op})
}

func (b *Bus) EndProgress(op string) {
	b.Publish(Event{Kind: ProgressEnded, Key: op})
}

// Session publica un cambio de sesión (inicio o cierre).
func (b *Bus) Session(email string, active bool) {
	b.Publish(Event{Kind: SessionChanged, Key: email, Active: active})
}
