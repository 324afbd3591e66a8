package entity

import "time"

// Multiplicidades de empaque de un artículo. Factor indica cuántas unidades
// sueltas representa cada múltiplo (UNIDAD siempre factor 1).
const (
	MultipleUnidad  = "UNIDAD"
	MultiplePaquete = "PAQUETE"
	MultipleCaja    = "CAJA"
	MultipleOtro    = "OTRO"
)

// Article representa un artículo (SKU con código de barras) de un producto.
// En las respuestas de búsqueda el almacén puede venir vacío.
type Article struct {
	ID          int        `json:"id"`
	Barcode     string     `json:"barcode"`
	Multiple    string     `json:"multiple"`
	Factor      int        `json:"factor"`
	Product     Product    `json:"product"`
	Warehouse   *Warehouse `json:"warehouse,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int        `json:"version"`
	DeletedDate *time.Time `json:"deletedDate"`
}
