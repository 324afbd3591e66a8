package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movil/internal/application/events"
)

func TestBus_EntregaEnOrdenDeRegistro(t *testing.T) {
	b := events.NewBus()

	var orden []string
	b.Subscribe(func(e events.Event) { orden = append(orden, "a:"+e.Message) })
	b.Subscribe(func(e events.Event) { orden = append(orden, "b:"+e.Message) })

	b.Notify("hola")

	require.Len(t, orden, 2)
	assert.Equal(t, []string{"a:hola", "b:hola"}, orden)
}

func TestBus_SesionYNotificacion(t *testing.T) {
	b := events.NewBus()

	var got []events.Event
	b.Subscribe(func(e events.Event) { got = append(got, e) })

	b.Session("ana@example.com", true)
	b.Notify("transacción enviada")
	b.Session("", false)

	require.Len(t, got, 3)
	assert.Equal(t, events.SessionChanged, got[0].Kind)
	assert.True(t, got[0].Active)
	assert.Equal(t, "ana@example.com", got[0].Key)
	assert.Equal(t, events.NotificationEnqueued, got[1].Kind)
	assert.False(t, got[2].Active)
}

// El tracker replica el store de progreso: ocupado mientras alguna clave
// siga activa, contando repeticiones de la misma clave.
func TestTracker_ConteoPorClave(t *testing.T) {
	b := events.NewBus()
	tr := events.NewTracker(b)

	assert.False(t, tr.Busy())

	b.StartProgress("addUnit")
	b.StartProgress("addUnit")
	b.StartProgress("submit")
	assert.True(t, tr.Busy())

	b.EndProgress("addUnit")
	assert.True(t, tr.Busy(), "queda una repetición de addUnit y submit")

	b.EndProgress("addUnit")
	b.EndProgress("submit")
	assert.False(t, tr.Busy())
}
