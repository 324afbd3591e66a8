package draft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movil/internal/domain/draft"
)

// Los campos opcionales en blanco desaparecen: IDs de referencia quedan en
// nil y los numéricos en cero para que la validación los rechace después.
func TestNormalize_DescartaCamposVacios(t *testing.T) {
	got := draft.Normalize(draft.RawUnit{
		ProductID:   "",
		Name:        "Llave",
		Description: "Llave inglesa",
		ArticleID:   "",
		Barcode:     "123",
		Multiple:    "UNIDAD",
		Factor:      "1",
		Warehouse:   "4",
		Serial:      "",
		Quantity:    "2",
		Afectation:  true,
	})

	assert.Nil(t, got.ProductID, "productId vacío significa crear producto")
	assert.Nil(t, got.ArticleID)
	assert.Empty(t, got.Serial)
	assert.Equal(t, 1, got.Factor)
	assert.Equal(t, 4, got.Warehouse)
	assert.Equal(t, 2, got.Quantity)
	assert.True(t, got.Afectation)
}

func TestNormalize_CoercionNumerica(t *testing.T) {
	casos := []struct {
		nombre string
		raw    string
		want   int
	}{
		{"número válido", "12", 12},
		{"vacío queda en cero", "", 0},
		{"no numérico queda en cero", "doce", 0},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			got := draft.Normalize(draft.RawUnit{Quantity: c.raw})
			assert.Equal(t, c.want, got.Quantity)
		})
	}
}

// Un ID de referencia <= 0 equivale a "sin seleccionar", igual que vacío.
func TestNormalize_IDsNoPositivosSonAusentes(t *testing.T) {
	assert.Nil(t, draft.Normalize(draft.RawUnit{ProductID: "0"}).ProductID)
	assert.Nil(t, draft.Normalize(draft.RawUnit{ProductID: "-3"}).ProductID)

	got := draft.Normalize(draft.RawUnit{ProductID: "7", ArticleID: "9"})
	require.NotNil(t, got.ProductID)
	require.NotNil(t, got.ArticleID)
	assert.Equal(t, 7, *got.ProductID)
	assert.Equal(t, 9, *got.ArticleID)
}

// Normalize no asigna ID de sesión; eso ocurre al insertar en el borrador.
func TestNormalize_SinIDDeSesion(t *testing.T) {
	got := draft.Normalize(draft.RawUnit{Barcode: "123"})
	assert.Zero(t, got.ID)
}
