package restapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movil/internal/domain/entity"
)

// Los endpoints de búsqueda devuelven catálogos completos pensados para
// seleccionar desde el cliente; el caché local evita repetir la descarga
// dentro de una misma sesión.

// SearchProducts lista los productos buscables.
func (c *Client) SearchProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := c.do(ctx, fiber.MethodGet, "searchs/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchArticles lista los artículos buscables con su producto.
func (c *Client) SearchArticles(ctx context.Context) ([]entity.Article, error) {
	var out []entity.Article
	if err := c.do(ctx, fiber.MethodGet, "searchs/articles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchTransactions lista las transacciones existentes.
func (c *Client) SearchTransactions(ctx context.Context) ([]entity.Transaction, error) {
	var out []entity.Transaction
	if err := c.do(ctx, fiber.MethodGet, "searchs/transactions/list", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
