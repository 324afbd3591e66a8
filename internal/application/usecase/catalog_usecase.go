package usecase

import (
	"context"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/application/events"
	"github.com/jhoicas/inventario-movil/internal/application/ports"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
	"github.com/jhoicas/inventario-movil/pkg/logger"
)

// CatalogUseCase listados y altas/ediciones de catálogo (artículos,
// almacenes, inventario). Operaciones de paso directo al API; el cliente
// no guarda catálogo propio.
type CatalogUseCase struct {
	api ports.CatalogAPI
	bus *events.Bus
	log *logger.Logger
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(api ports.CatalogAPI, bus *events.Bus, log *logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{api: api, bus: bus, log: log}
}

// Articles lista artículos paginados.
func (uc *CatalogUseCase) Articles(ctx context.Context, p dto.ListParams) ([]entity.Article, error) {
	uc.bus.StartProgress("articles")
	defer uc.bus.EndProgress("articles")
	return uc.api.GetArticles(ctx, p)
}

// Warehouses lista almacenes paginados.
func (uc *CatalogUseCase) Warehouses(ctx context.Context, p dto.ListParams) ([]entity.Warehouse, error) {
	uc.bus.StartProgress("warehouses")
	defer uc.bus.EndProgress("warehouses")
	return uc.api.GetWarehouses(ctx, p)
}

// CreateWarehouse da de alta un almacén.
func (uc *CatalogUseCase) CreateWarehouse(ctx context.Context, name string) error {
	uc.bus.StartProgress("createWarehouse")
	defer uc.bus.EndProgress("createWarehouse")
	return uc.api.CreateWarehouse(ctx, dto.CreateWarehouseRequest{Name: name})
}

// CreateArticle da de alta un artículo.
func (uc *CatalogUseCase) CreateArticle(ctx context.Context, in dto.CreateArticleRequest) error {
	uc.bus.StartProgress("createArticle")
	defer uc.bus.EndProgress("createArticle")
	return uc.api.CreateArticle(ctx, in)
}

// Inventory consulta las existencias de un producto por almacén.
func (uc *CatalogUseCase) Inventory(ctx context.Context, productID int) ([]entity.Article, error) {
	uc.bus.StartProgress("inventory")
	defer uc.bus.EndProgress("inventory")
	return uc.api.GetInventory(ctx, productID)
}

// InventoryProducts lista los productos con existencias.
func (uc *CatalogUseCase) InventoryProducts(ctx context.Context, p dto.ListParams) ([]entity.Product, error) {
	uc.bus.StartProgress("inventoryProducts")
	defer uc.bus.EndProgress("inventoryProducts")
	return uc.api.GetInventoryProducts(ctx, p)
}

// UpdateArticle edita parcialmente un artículo (solo viajan los campos
// presentes).
func (uc *CatalogUseCase) UpdateArticle(ctx context.Context, in dto.UpdateArticleRequest) error {
	uc.bus.StartProgress("updateArticle")
	defer uc.bus.EndProgress("updateArticle")
	return uc.api.UpdateArticle(ctx, in)
}

// RenameWarehouse cambia el nombre de un almacén.
func (uc *CatalogUseCase) RenameWarehouse(ctx context.Context, id int, name string) error {
	uc.bus.StartProgress("updateWarehouse")
	defer uc.bus.EndProgress("updateWarehouse")
	return uc.api.UpdateWarehouse(ctx, id, dto.UpdateWarehouseRequest{Name: name})
}
