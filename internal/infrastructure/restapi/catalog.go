package restapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
)

func pageQuery(p dto.ListParams) url.Values {
	p.DefaultPage()
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("offset", strconv.Itoa(p.Offset))
	return q
}

// GetArticles lista artículos paginados.
func (c *Client) GetArticles(ctx context.Context, p dto.ListParams) ([]entity.Article, error) {
	var out []entity.Article
	if err := c.do(ctx, fiber.MethodGet, "articles", pageQuery(p), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateArticle da de alta un artículo.
func (c *Client) CreateArticle(ctx context.Context, in dto.CreateArticleRequest) error {
	return c.do(ctx, fiber.MethodPost, "articles", nil, in, nil)
}

// UpdateArticle edita un artículo existente.
func (c *Client) UpdateArticle(ctx context.Context, in dto.UpdateArticleRequest) error {
	return c.do(ctx, fiber.MethodPatch, "articles", nil, in, nil)
}

// GetWarehouses lista almacenes paginados.
func (c *Client) GetWarehouses(ctx context.Context, p dto.ListParams) ([]entity.Warehouse, error) {
	var out []entity.Warehouse
	if err := c.do(ctx, fiber.MethodGet, "warehouses", pageQuery(p), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWarehouse da de alta un almacén.
func (c *Client) CreateWarehouse(ctx context.Context, in dto.CreateWarehouseRequest) error {
	return c.do(ctx, fiber.MethodPost, "warehouses", nil, in, nil)
}

// UpdateWarehouse edita un almacén.
func (c *Client) UpdateWarehouse(ctx context.Context, id int, in dto.UpdateWarehouseRequest) error {
	return c.do(ctx, fiber.MethodPatch, fmt.Sprintf("warehouses/%d", id), nil, in, nil)
}

// GetInventory consulta el inventario de un producto por almacén.
func (c *Client) GetInventory(ctx context.Context, productID int) ([]entity.Article, error) {
	var out []entity.Article
	if err := c.do(ctx, fiber.MethodGet, fmt.Sprintf("inventory/product/%d", productID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInventoryProducts lista los productos con existencias.
func (c *Client) GetInventoryProducts(ctx context.Context, p dto.ListParams) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, fiber.MethodGet, "inventory/products", pageQuery(p), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
