package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo del supermercado.
// El precio estándar es referencial: el precio de venta real queda
// congelado en cada línea de SalesTransactionItem al momento del cobro.
type Product struct {
	ID            int64
	Name          string
	Description   string
	StandardPrice decimal.Decimal
	Category      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
