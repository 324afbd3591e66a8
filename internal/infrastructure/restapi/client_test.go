package restapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/application/ports"
	"github.com/jhoicas/inventario-movil/internal/domain"
	"github.com/jhoicas/inventario-movil/internal/infrastructure/restapi"
	"github.com/jhoicas/inventario-movil/pkg/config"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

// newTestClient apunta un Client real contra un servidor httptest.
func newTestClient(t *testing.T, token string, handler http.Handler) *restapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := config.APIConfig{
		Host:     host,
		Port:     port,
		Scheme:   "http",
		Timeout:  5 * time.Second,
		Lang:     "es",
		TimeZone: "America/Mexico_City",
	}
	return restapi.NewClient(cfg, staticToken(token), logger.Nop())
}

func TestLogin_EnviaCredencialesYHeaders(t *testing.T) {
	var gotLang, gotTZ, gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		gotLang = r.Header.Get("Lang")
		gotTZ = r.Header.Get("Time-Zone")
		gotAuth = r.Header.Get("Authorization")

		var body dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@acme.com", body.Email)

		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})

	c := newTestClient(t, "", handler)
	token, err := c.Login(context.Background(), "ana@acme.com", "secreta")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "es", gotLang)
	assert.Equal(t, "America/Mexico_City", gotTZ)
	assert.Empty(t, gotAuth, "el login sale sin Authorization")
}

func TestCreateTransaction_BearerYDecodificacion(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/transactions/create", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var in dto.CreateTransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ENTRY", in.Type)

		json.NewEncoder(w).Encode(map[string]any{
			"id":           42,
			"folio_number": in.Folio,
		})
	})

	c := newTestClient(t, "tok-123", handler)
	tx, err := c.CreateTransaction(context.Background(), dto.CreateTransactionRequest{
		Type:  "ENTRY",
		Folio: "F-42",
		Units: []dto.UnitPayload{{Barcode: "123", Quantity: 1, Factor: 1, Warehouse: 4, Multiple: "UNIDAD"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 42, tx.ID)
	assert.Equal(t, "F-42", tx.FolioNumber)
}

func TestAPIError_MensajeDelServidorTalCual(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "folio ya registrado"})
	})

	c := newTestClient(t, "tok", handler)
	_, err := c.CreateTransaction(context.Background(), dto.CreateTransactionRequest{})

	require.Error(t, err)
	var apiErr *ports.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "folio ya registrado", apiErr.Message)
}

func TestAPIError_401SatisfaceErrUnauthorized(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := newTestClient(t, "expirado", handler)
	_, err := c.SearchArticles(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestTransactionReport_DevuelveBytesCrudos(t *testing.T) {
	pdf := []byte("%PDF-1.7 acuse")
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/transactions/report/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	})

	c := newTestClient(t, "tok", handler)
	raw, err := c.TransactionReport(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, pdf, raw)
}
