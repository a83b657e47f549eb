package repository

import (
	"context"

	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para ítems de inventario.
//
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y la mantiene bloqueada
// hasta el Commit/Rollback de la transacción que envuelve al Querier.
// DecrementQuantity devuelve las filas afectadas para que el transactor
// verifique que el decremento tocó exactamente una fila.
type InventoryItemRepository interface {
	GetForUpdate(ctx context.Context, itemID int64) (*entity.InventoryItem, error)
	DecrementQuantity(ctx context.Context, itemID, quantity int64) (int64, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.InventoryItem, error)
	ScanByBarcode(ctx context.Context, barcode string) (*entity.ScannedItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error
	AddQuantityByBarcode(ctx context.Context, barcode, employeeID string, quantity int64) (int64, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*entity.ScannedItem, error)
	ListAll(ctx context.Context) ([]*entity.ScannedItem, error)
}
