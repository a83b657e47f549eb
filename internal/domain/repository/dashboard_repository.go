package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult agrega las ventas de un día.
type DailySalesResult struct {
	Day              time.Time
	TransactionCount int64
	UnitsSold        int64
	Revenue          decimal.Decimal
}

// TopProductResult agrega unidades vendidas e ingresos por producto.
type TopProductResult struct {
	ProductID   int64
	ProductName string
	UnitsSold   int64
	Revenue     decimal.Decimal
}

// LowStockResult señala ítems con cantidad por debajo del umbral.
type LowStockResult struct {
	ItemID      int64
	Barcode     string
	ProductName string
	Quantity    int64
}

// ExpiryAlertResult señala ítems que vencen dentro de la ventana consultada.
type ExpiryAlertResult struct {
	ItemID      int64
	Barcode     string
	ProductName string
	Quantity    int64
	ExpiryDate  time.Time
}

// DashboardRepository consultas de solo lectura para los tableros por rol.
// A diferencia del transactor, estas lecturas toleran datos levemente
// desactualizados: no toman bloqueos.
type DashboardRepository interface {
	GetDailySales(ctx context.Context, since time.Time) ([]DailySalesResult, error)
	GetTopProducts(ctx context.Context, since time.Time, limit int) ([]TopProductResult, error)
	GetLowStock(ctx context.Context, threshold int64) ([]LowStockResult, error)
	GetExpiryAlerts(ctx context.Context, within time.Duration) ([]ExpiryAlertResult, error)
}
