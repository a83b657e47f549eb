package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesDTO ventas agregadas por día.
type DailySalesDTO struct {
	Day              string          `json:"day"` // YYYY-MM-DD
	TransactionCount int64           `json:"transaction_count"`
	UnitsSold        int64           `json:"units_sold"`
	Revenue          decimal.Decimal `json:"revenue"`
}

// TopProductDTO producto más vendido en el rango consultado.
type TopProductDTO struct {
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// LowStockDTO ítem por debajo del umbral de stock.
type LowStockDTO struct {
	ItemID      int64  `json:"item_id"`
	Barcode     string `json:"barcode"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

// ExpiryAlertDTO ítem próximo a vencer.
type ExpiryAlertDTO struct {
	ItemID      int64     `json:"item_id"`
	Barcode     string    `json:"barcode"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	ExpiryDate  time.Time `json:"expiry_date"`
	DaysLeft    int       `json:"days_left"`
}
