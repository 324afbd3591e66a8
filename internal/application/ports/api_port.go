package ports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/domain"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
)

// Puertos de salida hacia el API remoto de inventario. La implementación
// concreta vive en infrastructure/restapi; para tests se inyectan mocks.

// APIError es el sobre de error del puerto: un fallo de negocio o de
// protocolo devuelto por el servidor. Message se muestra al usuario tal
// cual cuando viene poblado. Vive aquí y no en la infraestructura para que
// los casos de uso no dependan del cliente HTTP concreto.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d", e.Status)
}

// Unwrap hace que un 401 satisfaga errors.Is(err, domain.ErrUnauthorized),
// para que el flujo global de invalidación de sesión lo reconozca.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	return nil
}

// AuthAPI autenticación.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// TransactionsAPI creación y consulta de transacciones.
type TransactionsAPI interface {
	CreateTransaction(ctx context.Context, in dto.CreateTransactionRequest) (*entity.Transaction, error)
	GetTransaction(ctx context.Context, id int) (*entity.Transaction, error)
	TransactionReport(ctx context.Context, id int) ([]byte, error)
}

// SearchAPI índices de búsqueda para los selectores.
type SearchAPI interface {
	SearchProducts(ctx context.Context) ([]entity.Product, error)
	SearchArticles(ctx context.Context) ([]entity.Article, error)
	SearchTransactions(ctx context.Context) ([]entity.Transaction, error)
}

// CatalogAPI listados y CRUD de catálogo.
type CatalogAPI interface {
	GetArticles(ctx context.Context, p dto.ListParams) ([]entity.Article, error)
	CreateArticle(ctx context.Context, in dto.CreateArticleRequest) error
	UpdateArticle(ctx context.Context, in dto.UpdateArticleRequest) error
	GetWarehouses(ctx context.Context, p dto.ListParams) ([]entity.Warehouse, error)
	CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) error
	UpdateWarehouse(ctx context.Context, id int, in dto.UpdateWarehouseRequest) error
	GetInventory(ctx context.Context, productID int) ([]entity.Article, error)
	GetInventoryProducts(ctx context.Context, p dto.ListParams) ([]entity.Product, error)
}
