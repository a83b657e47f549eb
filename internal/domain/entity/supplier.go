package entity

import "time"

// Supplier representa un proveedor del supermercado.
type Supplier struct {
	ID            int64
	Name          string
	DateOfJoining time.Time
	POC           string // persona de contacto
	ContactNumber string
	ProductCount  int64
	CreatedAt     time.Time
}
