package entity

import "time"

// Lot representa un lote de mercancía recibido de un proveedor.
// Quantity es el agregado del lote y se decrementa en lockstep con los
// ítems de inventario durante cada venta (no se recalcula como suma).
type Lot struct {
	ID            int64
	SupplierID    int64
	Name          string
	DateOfArrival time.Time
	ProductCount  int64
	Quantity      int64
	SupplierName  string // enriquecido en listados (LEFT JOIN)
}
