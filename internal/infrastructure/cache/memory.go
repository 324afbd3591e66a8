package cache

import (
	"sync"
	"time"
)

// Memory es un caché en memoria con TTL para un índice de búsqueda: una
// entrada por índice (productos, artículos, transacciones) que se invalida
// tras un envío exitoso para que los selectores reflejen el stock nuevo.
//
// Vive y muere con el proceso; no hay persistencia (toda la verdad está en
// el servidor).
type Memory[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	value   T
	loaded  bool
	expires time.Time
	now     func() time.Time // inyectable en tests
}

// New crea un caché vacío. Un ttl de cero significa sin vencimiento (solo
// invalidación explícita).
func New[T any](ttl time.Duration) *Memory[T] {
	return &Memory[T]{ttl: ttl, now: time.Now}
}

// Get devuelve el valor vigente y si existe.
func (c *Memory[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded || (c.ttl > 0 && c.now().After(c.expires)) {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Set guarda el valor y reinicia el vencimiento.
func (c *Memory[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.loaded = true
	if c.ttl > 0 {
		c.expires = c.now().Add(c.ttl)
	}
}

// Invalidate descarta el valor; la siguiente lectura forzará recarga.
func (c *Memory[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.loaded = false
}

// SetClock reemplaza el reloj del caché; solo para tests.
func (c *Memory[T]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
