package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveItemRequest body para POST /api/inventory/receive.
// Si el barcode ya existe y pertenece al mismo empleado, la cantidad se suma.
type ReceiveItemRequest struct {
	ProductID         int64   `json:"product_id"`
	LotID             int64   `json:"lot_id"`
	Barcode           string  `json:"barcode"`
	Quantity          int64   `json:"quantity"`
	ManufacturingDate *string `json:"manufacturing_date,omitempty"` // YYYY-MM-DD
	ExpiryDate        *string `json:"expiry_date,omitempty"`        // YYYY-MM-DD
	BatchNumber       *string `json:"batch_number,omitempty"`
}

// InventoryItemResponse ítem enriquecido con producto y lote.
type InventoryItemResponse struct {
	ItemID            int64           `json:"item_id"`
	ProductID         int64           `json:"product_id"`
	LotID             int64           `json:"lot_id"`
	Barcode           string          `json:"barcode"`
	Quantity          int64           `json:"quantity"`
	ManufacturingDate *time.Time      `json:"manufacturing_date,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	BatchNumber       *string         `json:"batch_number,omitempty"`
	ProductName       string          `json:"product_name"`
	ProductCategory   string          `json:"product_category"`
	ProductPrice      decimal.Decimal `json:"product_price"`
	LotName           string          `json:"lot_name"`
	SupplierName      *string         `json:"supplier_name,omitempty"`
	CreatedBy         string          `json:"created_by,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
