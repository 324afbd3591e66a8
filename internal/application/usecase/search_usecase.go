package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/ports"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
	"github.com/jhoicas/inventario-movil/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// searchTTL vencimiento de los índices de búsqueda dentro de una sesión.
const searchTTL = 5 * time.Minute

// SearchUseCase sirve los índices de productos, artículos, almacenes y
// transacciones con caché por sesión. Tras un envío exitoso el coordinador
// de envío invalida los índices de stock para que los selectores reflejen
// el inventario nuevo.
type SearchUseCase struct {
	api ports.SearchAPI
	cat ports.CatalogAPI
	bus *events.Bus
	log *logger.Logger

	products     *cache.Memory[[]entity.Product]
	articles     *cache.Memory[[]entity.Article]
	warehouses   *cache.Memory[[]entity.Warehouse]
	transactions *cache.Memory[[]entity.Transaction]
}

// NewSearchUseCase construye el caso de uso.
func NewSearchUseCase(api ports.SearchAPI, cat ports.CatalogAPI, bus *events.Bus, log *logger.Logger) *SearchUseCase {
	return &SearchUseCase{
		api:          api,
		cat:          cat,
		bus:          bus,
		log:          log,
		products:     cache.New[[]entity.Product](searchTTL),
		articles:     cache.New[[]entity.Article](searchTTL),
		warehouses:   cache.New[[]entity.Warehouse](searchTTL),
		transactions: cache.New[[]entity.Transaction](searchTTL),
	}
}

// Products devuelve el índice de productos, cargándolo si hace falta.
func (uc *SearchUseCase) Products(ctx context.Context) ([]entity.Product, error) {
	if v, ok := uc.products.Get(); ok {
		return v, nil
	}
	uc.bus.StartProgress("productsSearch")
	defer uc.bus.EndProgress("productsSearch")

	v, err := uc.api.SearchProducts(ctx)
	if err != nil {
		return nil, err
	}
	uc.products.Set(v)
	return v, nil
}

// Articles devuelve el índice de artículos, cargándolo si hace falta.
func (uc *SearchUseCase) Articles(ctx context.Context) ([]entity.Article, error) {
	if v, ok := uc.articles.Get(); ok {
		return v, nil
	}
	uc.bus.StartProgress("articlesSearch")
	defer uc.bus.EndProgress("articlesSearch")

	v, err := uc.api.SearchArticles(ctx)
	if err != nil {
		return nil, err
	}
	uc.articles.Set(v)
	return v, nil
}

// warehousePage tamaño de página al recorrer el listado de almacenes.
const warehousePage = 100

// Warehouses devuelve los almacenes disponibles para el selector del
// formulario de unidad. El listado remoto es paginado, así que se recorre
// completo: el selector debe ofrecer todos los almacenes, no la primera
// página.
func (uc *SearchUseCase) Warehouses(ctx context.Context) ([]entity.Warehouse, error) {
	if v, ok := uc.warehouses.Get(); ok {
		return v, nil
	}
	uc.bus.StartProgress("warehouses")
	defer uc.bus.EndProgress("warehouses")

	var all []entity.Warehouse
	for offset := 0; ; offset += warehousePage {
		page, err := uc.cat.GetWarehouses(ctx, dto.ListParams{Limit: warehousePage, Offset: offset})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < warehousePage {
			break
		}
	}
	uc.warehouses.Set(all)
	return all, nil
}

// Transactions devuelve el índice de transacciones existentes.
func (uc *SearchUseCase) Transactions(ctx context.Context) ([]entity.Transaction, error) {
	if v, ok := uc.transactions.Get(); ok {
		return v, nil
	}
	uc.bus.StartProgress("transactionsSearch")
	defer uc.bus.EndProgress("transactionsSearch")

	v, err := uc.api.SearchTransactions(ctx)
	if err != nil {
		return nil, err
	}
	uc.transactions.Set(v)
	return v, nil
}

// FindArticleByBarcode busca un artículo exacto por código de barras; es el
// camino del escáner para precargar el formulario de unidad.
func (uc *SearchUseCase) FindArticleByBarcode(ctx context.Context, barcode string) (*entity.Article, error) {
	articles, err := uc.Articles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].Barcode == barcode {
			return &articles[i], nil
		}
	}
	return nil, nil
}

// FindProducts filtra el índice de productos por nombre (subcadena, sin
// distinguir mayúsculas).
func (uc *SearchUseCase) FindProducts(ctx context.Context, query string) ([]entity.Product, error) {
	products, err := uc.Products(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}
	q := strings.ToLower(query)
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// InvalidateStock descarta los índices de artículos y productos; se invoca
// tras crear una transacción para que las siguientes búsquedas vean el
// stock actualizado.
func (uc *SearchUseCase) InvalidateStock() {
	uc.articles.Invalidate()
	uc.products.Invalidate()
	uc.log.Debug().Msg("índices de búsqueda invalidados")
}
