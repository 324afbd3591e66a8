package dto

import (
	"time"

	"github.com/jhoicas/inventario-movil/internal/domain/draft"
)

// UnitPayload es la línea tal como la espera POST /api/transactions/create.
// Los opcionales ausentes se omiten del JSON; el servidor crea el producto
// o artículo cuando no llega el ID.
type UnitPayload struct {
	ProductID   *int   `json:"productId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ArticleID   *int   `json:"articleId,omitempty"`
	Barcode     string `json:"barcode"`
	Multiple    string `json:"multiple"`
	Factor      int    `json:"factor"`
	Warehouse   int    `json:"warehouse"`
	Serial      string `json:"serial,omitempty"`
	Quantity    int    `json:"quantity"`
	Afectation  bool   `json:"afectation"`
}

// CreateTransactionRequest body de creación de transacción.
type CreateTransactionRequest struct {
	TransactionDate string        `json:"transactionDate"`
	Type            string        `json:"type"`
	Emitter         string        `json:"emitter"`
	Folio           string        `json:"folio"`
	Units           []UnitPayload `json:"units"`
}

// FromDraft empaqueta el borrador validado con la fecha resuelta en ISO.
func FromDraft(d *draft.Draft) CreateTransactionRequest {
	units := d.Units()
	payload := make([]UnitPayload, 0, len(units))
	for _, u := range units {
		payload = append(payload, UnitPayload{
			ProductID:   u.ProductID,
			Name:        u.Name,
			Description: u.Description,
			ArticleID:   u.ArticleID,
			Barcode:     u.Barcode,
			Multiple:    u.Multiple,
			Factor:      u.Factor,
			Warehouse:   u.Warehouse,
			Serial:      u.Serial,
			Quantity:    u.Quantity,
			Afectation:  u.Afectation,
		})
	}
	return CreateTransactionRequest{
		TransactionDate: d.Date.Format(time.RFC3339),
		Type:            d.Type,
		Emitter:         d.Emitter,
		Folio:           d.Folio,
		Units:           payload,
	}
}
