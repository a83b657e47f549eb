package checkout

import (
	"context"

	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el checkout:
// o se persisten la venta, sus líneas y todos los decrementos, o nada.
//
// La implementación debe envolver fallos de Begin/Commit con
// domain.ErrStoreUnavailable (único error que el caller puede reintentar).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		lotRepo repository.LotRepository,
		salesRepo repository.SalesRepository,
	) error) error
}
