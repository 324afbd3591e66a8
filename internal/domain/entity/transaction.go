package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento de stock.
const (
	TransactionEntry = "ENTRY" // ingreso: emitter es quien envía
	TransactionExit  = "EXIT"  // egreso: emitter es quien recibe
)

// Transaction es la transacción ya creada tal como la devuelve el servidor
// (con id, folio y timestamps asignados).
type Transaction struct {
	ID              int                 `json:"id"`
	TransactionType string              `json:"transaction_type"`
	TransactionDate string              `json:"transaction_date"`
	FolioNumber     string              `json:"folio_number"`
	PersonName      string              `json:"person_name"`
	User            User                `json:"user"`
	Details         []TransactionDetail `json:"transactionDetails"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Version         int                 `json:"version"`
	DeletedDate     *time.Time          `json:"deletedDate"`
}

// TransactionDetail es una línea de la transacción creada.
type TransactionDetail struct {
	ID           int             `json:"id"`
	SerialNumber *string         `json:"serialNumber"`
	Afectation   bool            `json:"afectation"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Article      Article         `json:"article"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Version      int             `json:"version"`
	DeletedDate  *time.Time      `json:"deletedDate"`
}
