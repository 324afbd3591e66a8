package restapi

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movil/internal/application/dto"
	"github.com/jhoicas/inventario-movil/internal/domain/entity"
)

// CreateTransaction envía el borrador validado y devuelve la transacción
// con id, folio y timestamps asignados por el servidor.
func (c *Client) CreateTransaction(ctx context.Context, in dto.CreateTransactionRequest) (*entity.Transaction, error) {
	var out entity.Transaction
	if err := c.do(ctx, fiber.MethodPost, "transactions/create", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTransaction obtiene una transacción creada.
func (c *Client) GetTransaction(ctx context.Context, id int) (*entity.Transaction, error) {
	var out entity.Transaction
	if err := c.do(ctx, fiber.MethodGet, fmt.Sprintf("transactions/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransactionReport descarga el acuse PDF de una transacción. El documento
// lo renderiza el servidor; el cliente solo lo guarda o comparte.
func (c *Client) TransactionReport(ctx context.Context, id int) ([]byte, error) {
	return c.doRaw(ctx, fiber.MethodGet, fmt.Sprintf("transactions/report/%d", id), nil, nil)
}
