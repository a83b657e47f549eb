package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesTransaction es el registro inmutable de una venta completada.
// Se crea exactamente una vez por checkout exitoso; nunca se muta.
type SalesTransaction struct {
	ID              int64
	EmployeeID      string
	TotalAmount     decimal.Decimal
	TransactionDate time.Time
	Items           []SalesTransactionItem
}

// SalesTransactionItem es una línea de la venta. Se inserta una fila por
// línea del carrito, aun cuando dos líneas refieran al mismo ítem.
type SalesTransactionItem struct {
	TransactionID int64
	ItemID        int64
	Quantity      int64
	UnitPrice     decimal.Decimal
	Subtotal      decimal.Decimal
	ProductName   string // enriquecido para el recibo; vacío fuera de consultas
}
