package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	StandardPrice decimal.Decimal `json:"standard_price"`
	Category      string          `json:"category"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	StandardPrice decimal.Decimal `json:"standard_price"`
	Category      string          `json:"category"`
}

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	DateOfJoining string `json:"date_of_joining"` // YYYY-MM-DD
	POC           string `json:"poc"`
	ContactNumber string `json:"contact_number"`
	ProductCount  int64  `json:"product_count,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	SupplierID    int64     `json:"supplier_id"`
	Name          string    `json:"name"`
	DateOfJoining time.Time `json:"date_of_joining"`
	POC           string    `json:"poc"`
	ContactNumber string    `json:"contact_number"`
	ProductCount  int64     `json:"product_count"`
}

// CreateLotRequest body para POST /api/lots.
type CreateLotRequest struct {
	SupplierID    int64  `json:"supplier_id"`
	LotName       string `json:"lot_name"`
	DateOfArrival string `json:"date_of_arrival"` // YYYY-MM-DD
	ProductCount  int64  `json:"product_count"`
	Quantity      int64  `json:"quantity"`
}

// LotResponse lote en respuestas (incluye proveedor en listados).
type LotResponse struct {
	LotID         int64     `json:"lot_id"`
	SupplierID    int64     `json:"supplier_id"`
	LotName       string    `json:"lot_name"`
	DateOfArrival time.Time `json:"date_of_arrival"`
	ProductCount  int64     `json:"product_count"`
	Quantity      int64     `json:"quantity"`
	SupplierName  string    `json:"supplier_name,omitempty"`
}
