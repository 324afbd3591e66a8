package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/ports"
	"github.com/jhoicas/inventario-movil/internal/application/usecase"
	"github.com/jhoicas/inventario-movil/internal/application/validation"
	"github.com/jhoicas/inventario-movil/internal/domain"
	"github.com/jhoicas/inventario-movil/internal/domain/draft"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks de los puertos del API
// ──────────────────────────────────────────────────────────────────────────────

type fakeTransactionsAPI struct {
	created  []dto.CreateTransactionRequest
	response *entity.Transaction
	err      error
	report   []byte
}

func (f *fakeTransactionsAPI) CreateTransaction(_ context.Context, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	f.created = append(f.created, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeTransactionsAPI) GetTransaction(context.Context, int) (*entity.Transaction, error) {
	return f.response, nil
}

func (f *fakeTransactionsAPI) TransactionReport(context.Context, int) ([]byte, error) {
	return f.report, f.err
}

type fakeSearchAPI struct {
	productCalls int
	articleCalls int
}

func (f *fakeSearchAPI) SearchProducts(context.Context) ([]entity.Product, error) {
	f.productCalls++
	return []entity.Product{{ID: 1, Name: "Llave"}}, nil
}

func (f *fakeSearchAPI) SearchArticles(context.Context) ([]entity.Article, error) {
	f.articleCalls++
	return []entity.Article{{ID: 1, Barcode: "123"}}, nil
}

func (f *fakeSearchAPI) SearchTransactions(context.Context) ([]entity.Transaction, error) {
	return nil, nil
}

type fakeCatalogAPI struct{}

func (fakeCatalogAPI) GetArticles(context.Context, dto.ListParams) ([]entity.Article, error) {
	return nil, nil
}
func (fakeCatalogAPI) CreateArticle(context.Context, dto.CreateArticleRequest) error { return nil }
func (fakeCatalogAPI) UpdateArticle(context.Context, dto.UpdateArticleRequest) error { return nil }
func (fakeCatalogAPI) GetWarehouses(context.Context, dto.ListParams) ([]entity.Warehouse, error) {
	return nil, nil
}
func (fakeCatalogAPI) CreateWarehouse(context.Context, dto.CreateWarehouseRequest) error { return nil }
func (fakeCatalogAPI) UpdateWarehouse(context.Context, int, dto.UpdateWarehouseRequest) error {
	return nil
}
func (fakeCatalogAPI) GetInventory(context.Context, int) ([]entity.Article, error) { return nil, nil }
func (fakeCatalogAPI) GetInventoryProducts(context.Context, dto.ListParams) ([]entity.Product, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	session       *usecase.DraftUseCase
	submit        *usecase.SubmitUseCase
	search        *usecase.SearchUseCase
	api           *fakeTransactionsAPI
	searchAPI     *fakeSearchAPI
	notifications []string
	lastSession   *events.Event
}

func newFixture(t *testing.T, api *fakeTransactionsAPI) *fixture {
	t.Helper()
	bus := events.NewBus()
	log := logger.Nop()
	val := validation.New()

	fx := &fixture{api: api, searchAPI: &fakeSearchAPI{}}
	bus.Subscribe(func(e events.Event) {
		switch e.Kind {
		case events.NotificationEnqueued:
			fx.notifications = append(fx.notifications, e.Message)
		case events.SessionChanged:
			ev := e
			fx.lastSession = &ev
		}
	})

	fx.search = usecase.NewSearchUseCase(fx.searchAPI, fakeCatalogAPI{}, bus, log)
	fx.session = usecase.NewDraftUseCase(val, bus, log)
	fx.submit = usecase.NewSubmitUseCase(api, fx.search, val, bus, log)
	return fx
}

func rawValida(barcode, quantity string) draft.RawUnit {
	return draft.RawUnit{
		Name:        "Tornillo 3mm",
		Description: "Caja metálica",
		Barcode:     barcode,
		Multiple:    "UNIDAD",
		Factor:      "1",
		Warehouse:   "4",
		Quantity:    quantity,
		Afectation:  true,
	}
}

func sesionLista(t *testing.T, fx *fixture) {
	t.Helper()
	fx.session.SetHeader("ENTRY", "Proveedor SA", "F-001")
	added, fe := fx.session.AddUnit(rawValida("123", "2"))
	require.True(t, added)
	require.True(t, fe.Empty())
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

// Una transacción sin unidades se bloquea antes de tocar la red, sin
// importar qué tan válida esté la cabecera.
func TestSubmit_BorradorVacioBloqueado(t *testing.T) {
	api := &fakeTransactionsAPI{}
	fx := newFixture(t, api)
	fx.session.SetHeader("ENTRY", "Proveedor SA", "F-001")

	tx, fe, err := fx.submit.Submit(context.Background(), fx.session)

	require.NoError(t, err)
	assert.Nil(t, tx)
	assert.Contains(t, fe, "units")
	assert.Empty(t, api.created, "no debe salir ninguna petición")
}

// Envío exitoso: el borrador queda en blanco y los índices de stock se
// invalidan para que la siguiente búsqueda recargue.
func TestSubmit_ExitoReiniciaBorradorEInvalidaIndices(t *testing.T) {
	api := &fakeTransactionsAPI{response: &entity.Transaction{ID: 7, FolioNumber: "F-001"}}
	fx := newFixture(t, api)
	sesionLista(t, fx)

	// Calentar el caché de artículos para verificar la invalidación
	_, err := fx.search.Articles(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, fx.searchAPI.articleCalls)

	tx, fe, err := fx.submit.Submit(context.Background(), fx.session)

	require.NoError(t, err)
	require.True(t, fe.Empty())
	require.NotNil(t, tx)
	assert.Equal(t, 7, tx.ID)

	// Borrador en blanco
	assert.Zero(t, fx.session.Len())
	typ, emitter, folio, _ := fx.session.Header()
	assert.Empty(t, typ)
	assert.Empty(t, emitter)
	assert.Empty(t, folio)

	// Índice invalidado: la siguiente lectura vuelve al API
	_, err = fx.search.Articles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fx.searchAPI.articleCalls)
}

// El payload enviado refleja el borrador: cabecera, fecha ISO y unidades.
func TestSubmit_PayloadCompleto(t *testing.T) {
	api := &fakeTransactionsAPI{response: &entity.Transaction{ID: 1}}
	fx := newFixture(t, api)
	sesionLista(t, fx)

	_, _, err := fx.submit.Submit(context.Background(), fx.session)
	require.NoError(t, err)

	require.Len(t, api.created, 1)
	got := api.created[0]
	assert.Equal(t, "ENTRY", got.Type)
	assert.Equal(t, "Proveedor SA", got.Emitter)
	assert.Equal(t, "F-001", got.Folio)
	assert.NotEmpty(t, got.TransactionDate)
	require.Len(t, got.Units, 1)
	assert.Equal(t, "123", got.Units[0].Barcode)
	assert.Equal(t, 2, got.Units[0].Quantity)
}

// Con mensaje del servidor la notificación lo pasa tal cual; el borrador
// queda intacto para reintentar.
func TestSubmit_FalloConMensajeDelServidor(t *testing.T) {
	api := &fakeTransactionsAPI{
		err: &ports.APIError{Status: 422, Message: "folio ya registrado"},
	}
	fx := newFixture(t, api)
	sesionLista(t, fx)

	tx, fe, err := fx.submit.Submit(context.Background(), fx.session)

	require.Error(t, err)
	assert.Nil(t, tx)
	assert.True(t, fe.Empty())
	assert.Contains(t, fx.notifications, "folio ya registrado")
	assert.Equal(t, 1, fx.session.Len(), "el borrador sobrevive al fallo")
}

// Sin payload legible se muestra el mensaje genérico.
func TestSubmit_FalloSinMensajeUsaGenerico(t *testing.T) {
	api := &fakeTransactionsAPI{err: errors.New("connection refused")}
	fx := newFixture(t, api)
	sesionLista(t, fx)

	_, _, err := fx.submit.Submit(context.Background(), fx.session)

	require.Error(t, err)
	assert.Contains(t, fx.notifications, "An error occurred while creating the transaction")
	assert.Equal(t, 1, fx.session.Len())
}

// Un 401 del API dispara la invalidación global de sesión.
func TestSubmit_NoAutorizadoPublicaCierreDeSesion(t *testing.T) {
	api := &fakeTransactionsAPI{err: &ports.APIError{Status: 401}}
	fx := newFixture(t, api)
	sesionLista(t, fx)

	_, _, err := fx.submit.Submit(context.Background(), fx.session)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	require.NotNil(t, fx.lastSession)
	assert.False(t, fx.lastSession.Active)
	assert.Empty(t, fx.lastSession.Key)
}

// ──────────────────────────────────────────────────────────────────────────────
// DraftUseCase
// ──────────────────────────────────────────────────────────────────────────────

// El serial duplicado no escapa como error: se convierte en notificación y
// el borrador no cambia.
func TestDraftUseCase_SerialDuplicadoNotifica(t *testing.T) {
	fx := newFixture(t, &fakeTransactionsAPI{})

	raw := rawValida("123", "1")
	raw.Serial = "SN1"
	added, fe := fx.session.AddUnit(raw)
	require.True(t, added)
	require.True(t, fe.Empty())

	added, fe = fx.session.AddUnit(raw)
	assert.False(t, added)
	assert.True(t, fe.Empty(), "no es un error de validación")
	assert.Contains(t, fx.notifications, "Serial has been added to the transaction before")
	assert.Equal(t, 1, fx.session.Len())
}

// Una unidad inválida no entra al borrador y los errores llegan por campo.
func TestDraftUseCase_UnidadInvalidaNoEntra(t *testing.T) {
	fx := newFixture(t, &fakeTransactionsAPI{})

	raw := rawValida("123", "2")
	raw.Factor = "3" // UNIDAD con factor 3
	added, fe := fx.session.AddUnit(raw)

	assert.False(t, added)
	assert.Contains(t, fe, "factor")
	assert.Zero(t, fx.session.Len())
}

// Editar una unidad la valida igual que un alta.
func TestDraftUseCase_UpdateValidaYConserva(t *testing.T) {
	fx := newFixture(t, &fakeTransactionsAPI{})

	added, _ := fx.session.AddUnit(rawValida("123", "2"))
	require.True(t, added)
	id := fx.session.Units()[0].ID

	editada := rawValida("123", "5")
	ok, fe := fx.session.UpdateUnit(id, editada)
	require.True(t, ok)
	require.True(t, fe.Empty())
	assert.Equal(t, 5, fx.session.Units()[0].Quantity)
}
