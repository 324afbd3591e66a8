package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/usecase"
	"github.com/jhoicas/inventario-movil/internal/application/validation"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

type fakeAPI struct {
	created []dto.CreateTransactionRequest
}

func (f *fakeAPI) CreateTransaction(_ context.Context, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	f.created = append(f.created, in)
	return &entity.Transaction{ID: 9, FolioNumber: in.Folio}, nil
}

func (f *fakeAPI) GetTransaction(context.Context, int) (*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeAPI) TransactionReport(context.Context, int) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (f *fakeAPI) SearchProducts(context.Context) ([]entity.Product, error) {
	return []entity.Product{
		{ID: 3, Name: "Tornillo 3mm", Description: "Caja metálica"},
		{ID: 5, Name: "Tuerca 3mm", Description: "Bolsa x100"},
	}, nil
}

func (f *fakeAPI) SearchArticles(context.Context) ([]entity.Article, error) {
	return []entity.Article{{
		ID:        11,
		Barcode:   "750123",
		Multiple:  entity.MultipleUnidad,
		Factor:    1,
		Product:   entity.Product{ID: 3, Name: "Tornillo 3mm", Description: "Caja metálica"},
		Warehouse: &entity.Warehouse{ID: 4, Name: "Central"},
	}}, nil
}

func (f *fakeAPI) SearchTransactions(context.Context) ([]entity.Transaction, error) {
	return nil, nil
}

func newTestDeps(api *fakeAPI) *Deps {
	bus := events.NewBus()
	log := logger.Nop()
	val := validation.New()
	search := usecase.NewSearchUseCase(api, nil, bus, log)
	return &Deps{
		Log:    log,
		Bus:    bus,
		Val:    val,
		Search: search,
		Submit: usecase.NewSubmitUseCase(api, search, val, bus, log),
	}
}

// La sesión de captura completa: cabecera, dos escaneos del mismo barcode
// que se funden en una línea, un serializado aparte, envío y salida.
func TestSesionCaptura_EscaneoMergeYEnvio(t *testing.T) {
	api := &fakeAPI{}
	deps := newTestDeps(api)

	script := strings.Join([]string{
		"cabecera ENTRY Proveedor SA F-9",
		"scan 750123",
		"scan 750123",
		"scan 750123 SN1",
		"listar",
		"enviar",
		"n", // sin acuse
		"salir",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runDraftSession(context.Background(), deps, strings.NewReader(script), &out)
	require.NoError(t, err)

	require.Len(t, api.created, 1)
	got := api.created[0]
	assert.Equal(t, "ENTRY", got.Type)
	assert.Equal(t, "Proveedor SA", got.Emitter)
	assert.Equal(t, "F-9", got.Folio)

	require.Len(t, got.Units, 2, "los dos escaneos sin serial se funden")
	assert.Equal(t, 2, got.Units[0].Quantity)
	assert.Empty(t, got.Units[0].Serial)
	assert.Equal(t, "SN1", got.Units[1].Serial)
	assert.Equal(t, 1, got.Units[1].Quantity)

	assert.Contains(t, out.String(), "Transacción 9 creada")
}

// Repetir un serial no agrega línea; la sesión sigue viva para corregir.
func TestSesionCaptura_SerialRepetidoNoAgrega(t *testing.T) {
	api := &fakeAPI{}
	deps := newTestDeps(api)

	var notices []string
	deps.Bus.Subscribe(func(e events.Event) {
		if e.Kind == events.NotificationEnqueued {
			notices = append(notices, e.Message)
		}
	})

	script := strings.Join([]string{
		"cabecera EXIT Sucursal Norte F-10",
		"scan 750123 SN1",
		"scan 750123 SN1",
		"enviar",
		"n",
		"salir",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runDraftSession(context.Background(), deps, strings.NewReader(script), &out)
	require.NoError(t, err)

	assert.Contains(t, notices, "Serial has been added to the transaction before")
	require.Len(t, api.created, 1)
	assert.Len(t, api.created[0].Units, 1)
}

// Alta manual con barcode nuevo: el selector de producto ('?') lista el
// catálogo y elegir un id precarga nombre y descripción, de modo que la
// línea viaja ligada al producto existente en lugar de crear uno nuevo.
func TestSesionCaptura_AltaManualConSelectorDeProducto(t *testing.T) {
	api := &fakeAPI{}
	deps := newTestDeps(api)

	script := strings.Join([]string{
		"cabecera ENTRY Proveedor SA F-12",
		"agregar",
		"888777",   // barcode sin artículo en catálogo
		"?torni",   // busca productos
		"3",        // elige Tornillo 3mm
		"",         // Nombre precargado
		"",         // Descripción precargada
		"",         // sin serial
		"UNIDAD",   // múltiplo
		"1",        // factor
		"2",        // cantidad
		"4",        // almacén
		"s",        // afecta stock
		"enviar",
		"n",
		"salir",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runDraftSession(context.Background(), deps, strings.NewReader(script), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "3  Tornillo 3mm — Caja metálica")

	require.Len(t, api.created, 1)
	require.Len(t, api.created[0].Units, 1)
	got := api.created[0].Units[0]
	require.NotNil(t, got.ProductID)
	assert.Equal(t, 3, *got.ProductID)
	assert.Equal(t, "Tornillo 3mm", got.Name)
	assert.Equal(t, "Caja metálica", got.Description)
	assert.Nil(t, got.ArticleID)
	assert.Equal(t, "888777", got.Barcode)
	assert.Equal(t, 2, got.Quantity)
}

// Un barcode fuera de catálogo no entra al borrador desde el escáner.
func TestSesionCaptura_BarcodeDesconocido(t *testing.T) {
	api := &fakeAPI{}
	deps := newTestDeps(api)

	script := "scan 999999\nsalir\n"
	var out bytes.Buffer
	err := runDraftSession(context.Background(), deps, strings.NewReader(script), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "sin artículo en catálogo")
	assert.Empty(t, api.created)
}

// Quitar por número elimina la línea del último listado.
func TestSesionCaptura_QuitarPorNumero(t *testing.T) {
	api := &fakeAPI{}
	deps := newTestDeps(api)

	script := strings.Join([]string{
		"cabecera ENTRY Proveedor SA F-11",
		"scan 750123",
		"scan 750123 SN1",
		"listar",
		"quitar 2",
		"listar",
		"salir",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runDraftSession(context.Background(), deps, strings.NewReader(script), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Eliminado 750123 (1 líneas)")
	assert.Empty(t, api.created)
}
