package entity

import "time"

// Product representa un producto del catálogo remoto. El cliente nunca lo
// persiste: llega por los endpoints de búsqueda y listado.
type Product struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int        `json:"version"`
	DeletedDate *time.Time `json:"deletedDate"`
}
