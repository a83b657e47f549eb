package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa una unidad de stock física y rastreable,
// identificada por código de barras. Quantity nunca baja de cero:
// el transactor de checkout es el único que decrementa y lo hace
// bajo bloqueo de fila.
type InventoryItem struct {
	ID                  int64
	ProductID           int64
	LotID               int64
	Barcode             string
	Quantity            int64
	ManufacturingDate   *time.Time
	ExpiryDate          *time.Time
	BatchNumber         *string
	CreatedByEmployeeID string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ScannedItem es un InventoryItem enriquecido con datos de producto y lote,
// tal como lo consume la pantalla de escaneo y el POS.
type ScannedItem struct {
	InventoryItem
	ProductName     string
	ProductCategory string
	ProductPrice    decimal.Decimal // precio estándar; el POS lo usa como precio sugerido
	LotName         string
	SupplierName    *string
}
