package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movil/internal/infrastructure/cache"
)

func TestMemory_VacioAlInicio(t *testing.T) {
	c := cache.New[[]string](time.Minute)
	_, ok := c.Get()
	assert.False(t, ok)
}

func TestMemory_SetGet(t *testing.T) {
	c := cache.New[[]string](time.Minute)
	c.Set([]string{"a", "b"})

	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestMemory_ExpiraConTTL(t *testing.T) {
	c := cache.New[int](time.Minute)

	ahora := time.Now()
	c.SetClock(func() time.Time { return ahora })
	c.Set(42)

	_, ok := c.Get()
	require.True(t, ok)

	ahora = ahora.Add(2 * time.Minute)
	_, ok = c.Get()
	assert.False(t, ok, "pasado el TTL la entrada debe vencer")
}

func TestMemory_SinTTLNoVence(t *testing.T) {
	c := cache.New[int](0)

	ahora := time.Now()
	c.SetClock(func() time.Time { return ahora })
	c.Set(7)

	ahora = ahora.Add(24 * time.Hour)
	_, ok := c.Get()
	assert.True(t, ok)
}

func TestMemory_Invalidate(t *testing.T) {
	c := cache.New[int](time.Minute)
	c.Set(42)
	c.Invalidate()

	_, ok := c.Get()
	assert.False(t, ok)
}
