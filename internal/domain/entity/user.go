package entity

import "time"

// User representa al usuario remoto tal como lo devuelve el API dentro de
// las transacciones y las búsquedas.
type User struct {
	ID          int        `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Roles       []string   `json:"roles,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int        `json:"version"`
	DeletedDate *time.Time `json:"deletedDate"`
}
