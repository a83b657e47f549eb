package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineRequest una línea del carrito en POST /api/sales/checkout.
type CartLineRequest struct {
	ItemID    int64           `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CheckoutRequest body para POST /api/sales/checkout.
// El employee_id sale del JWT, no del body.
type CheckoutRequest struct {
	Items []CartLineRequest `json:"items"`
}

// CheckoutResponse confirmación de venta.
type CheckoutResponse struct {
	TransactionID int64           `json:"transaction_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	LineCount     int             `json:"line_count"`
}

// TransactionItemResponse una línea de venta en consultas.
type TransactionItemResponse struct {
	ItemID      int64           `json:"item_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// TransactionResponse venta completa con líneas.
type TransactionResponse struct {
	TransactionID   int64                     `json:"transaction_id"`
	EmployeeID      string                    `json:"employee_id"`
	TotalAmount     decimal.Decimal           `json:"total_amount"`
	TransactionDate time.Time                 `json:"transaction_date"`
	Items           []TransactionItemResponse `json:"items"`
}
