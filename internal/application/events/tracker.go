package events

import "sync"

// Tracker mantiene el conteo de operaciones en curso a partir de los
// eventos de progreso: mientras haya al menos una clave activa se muestra
// el indicador de ocupado.
type Tracker struct {
	mu     sync.Mutex
	active map[string]int
}

// NewTracker crea el tracker y lo suscribe al bus.
func NewTracker(b *Bus) *Tracker {
	t := &Tracker{active: make(map[string]int)}
	b.Subscribe(t.handle)
	return t
}

func (t *Tracker) handle(e Event) {
	switch e.Kind {
	case ProgressStarted:
		t.mu.Lock()
		t.active[e.Key]++
		t.mu.Unlock()
	case ProgressEnded:
		t.mu.Lock()
		if t.active[e.Key] > 1 {
			t.active[e.Key]--
		} else {
			delete(t.active, e.Key)
		}
		t.mu.Unlock()
	}
}

// Busy indica si hay alguna operación en curso.
func (t *Tracker) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active) > 0
}
