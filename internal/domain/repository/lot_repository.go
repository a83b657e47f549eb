package repository

import (
	"context"

	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes.
// DecrementQuantity devuelve filas afectadas (ver InventoryItemRepository).
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id int64) (*entity.Lot, error)
	List(ctx context.Context) ([]*entity.Lot, error)
	DecrementQuantity(ctx context.Context, lotID, quantity int64) (int64, error)
	AddQuantity(ctx context.Context, lotID, quantity int64) (int64, error)
}
