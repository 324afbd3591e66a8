package entity

import "time"

// Warehouse representa un almacén donde se guarda inventario. Los borradores
// de transacción lo referencian solo por ID.
type Warehouse struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int        `json:"version"`
	DeletedDate *time.Time `json:"deletedDate"`
}
