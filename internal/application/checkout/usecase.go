package checkout

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
	"github.com/tu-usuario/supermarket-pos/pkg/logger"
)

// CartLine es una petición de venta: un ítem de inventario, una cantidad
// y el precio unitario al momento del cobro.
type CartLine struct {
	ItemID    int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CheckoutInput entrada del transactor. EmployeeID viene del proveedor de
// identidad (claim del JWT); aquí solo se registra, no se verifica.
type CheckoutInput struct {
	EmployeeID string
	Items      []CartLine
}

// CheckoutResult confirmación de una venta comprometida.
type CheckoutResult struct {
	TransactionID int64
	TotalAmount   decimal.Decimal
	LineCount     int
}

// UseCase es el transactor de checkout: valida el carrito, bloquea las
// filas de inventario en orden ascendente de ID (evita deadlocks entre
// cajas concurrentes), verifica disponibilidad, persiste la venta y
// decrementa ítem y lote dentro de una sola transacción.
//
// Líneas duplicadas del mismo ítem se aceptan: cada línea conserva su
// propia fila en SalesTransactionItems con su propio precio, pero la
// validación de stock y el decremento se hacen una sola vez por ítem
// sobre la cantidad agregada.
//
// Ante la primera violación (ítem inexistente o stock insuficiente) la
// operación aborta completa; no se acumulan los problemas de todas las
// líneas.
type UseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewUseCase construye el transactor.
func NewUseCase(txRunner TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, log: log}
}

// Checkout ejecuta la venta de forma atómica. En fallo no queda ningún
// efecto observable: ni venta parcial, ni decrementos huérfanos.
func (uc *UseCase) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutResult, error) {
	if input.EmployeeID == "" {
		return nil, fmt.Errorf("%w: employee_id requerido", domain.ErrInvalidInput)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidInput)
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cantidad inválida %d para el ítem %d",
				domain.ErrInvalidInput, line.Quantity, line.ItemID)
		}
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: precio negativo para el ítem %d",
				domain.ErrInvalidInput, line.ItemID)
		}
	}

	// Cantidad agregada por ítem distinto e IDs en orden ascendente:
	// el orden total de adquisición de bloqueos es lo que evita que dos
	// carritos que comparten dos ítems en orden opuesto se bloqueen entre sí.
	required := make(map[int64]int64, len(input.Items))
	for _, line := range input.Items {
		required[line.ItemID] += line.Quantity
	}
	itemIDs := make([]int64, 0, len(required))
	for id := range required {
		itemIDs = append(itemIDs, id)
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	totalAmount := decimal.Zero
	for _, line := range input.Items {
		totalAmount = totalAmount.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}

	now := time.Now()
	var result *CheckoutResult

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		lotRepo repository.LotRepository,
		salesRepo repository.SalesRepository,
	) error {
		// Fase 1: bloquear cada fila (SELECT FOR UPDATE) y validar
		// disponibilidad con el valor leído bajo bloqueo. Nada de caché:
		// la cantidad vista aquí es la viva hasta el Commit.
		lockedLots := make(map[int64]int64, len(itemIDs)) // itemID -> lotID
		for _, id := range itemIDs {
			item, err := itemRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if item == nil {
				return fmt.Errorf("%w: ítem de inventario %d", domain.ErrNotFound, id)
			}
			if item.Quantity < required[id] {
				return fmt.Errorf("%w: ítem %d: disponibles %d, solicitados %d",
					domain.ErrInsufficientStock, id, item.Quantity, required[id])
			}
			lockedLots[id] = item.LotID
		}

		// Fase 2: persistir la venta y sus líneas.
		txID, err := salesRepo.CreateTransaction(ctx, &entity.SalesTransaction{
			EmployeeID:      input.EmployeeID,
			TotalAmount:     totalAmount,
			TransactionDate: now,
		})
		if err != nil {
			return err
		}
		for _, line := range input.Items {
			qty := decimal.NewFromInt(line.Quantity)
			if err := salesRepo.CreateTransactionItem(ctx, &entity.SalesTransactionItem{
				TransactionID: txID,
				ItemID:        line.ItemID,
				Quantity:      line.Quantity,
				UnitPrice:     line.UnitPrice,
				Subtotal:      line.UnitPrice.Mul(qty),
			}); err != nil {
				return err
			}
		}

		// Fase 3: decrementar los ítems (un decremento por ítem distinto).
		// Con las filas bloqueadas desde la fase 1 los UPDATE no pueden
		// afectar cero filas; si ocurre, algo externo borró la fila entre
		// el bloqueo y la escritura y se aborta todo.
		for _, id := range itemIDs {
			rows, err := itemRepo.DecrementQuantity(ctx, id, required[id])
			if err != nil {
				return err
			}
			if rows != 1 {
				uc.log.Error().
					Int64("item_id", id).
					Int64("quantity", required[id]).
					Msg("checkout: decremento de ítem afectó cero filas pese al bloqueo")
				return fmt.Errorf("%w: ítem %d desapareció durante la venta",
					domain.ErrConcurrentModification, id)
			}
		}

		// Los UPDATE sobre lots toman sus propios bloqueos de fila, así que
		// el orden total de adquisición aplica igual que con los ítems:
		// agregado por lote distinto y IDs de lote en orden ascendente. Dos
		// carritos con ítems disjuntos pueden compartir lotes; tocarlos en
		// el orden que dicta el mapeo ítem→lote los tocaría en órdenes
		// opuestos.
		requiredByLot := make(map[int64]int64, len(itemIDs))
		for _, id := range itemIDs {
			requiredByLot[lockedLots[id]] += required[id]
		}
		lotIDs := make([]int64, 0, len(requiredByLot))
		for lotID := range requiredByLot {
			lotIDs = append(lotIDs, lotID)
		}
		sort.Slice(lotIDs, func(i, j int) bool { return lotIDs[i] < lotIDs[j] })
		for _, lotID := range lotIDs {
			rows, err := lotRepo.DecrementQuantity(ctx, lotID, requiredByLot[lotID])
			if err != nil {
				return err
			}
			if rows != 1 {
				uc.log.Error().
					Int64("lot_id", lotID).
					Int64("quantity", requiredByLot[lotID]).
					Msg("checkout: decremento de lote afectó cero filas")
				return fmt.Errorf("%w: lote %d desapareció durante la venta",
					domain.ErrConcurrentModification, lotID)
			}
		}

		result = &CheckoutResult{
			TransactionID: txID,
			TotalAmount:   totalAmount,
			LineCount:     len(input.Items),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("transaction_id", result.TransactionID).
		Str("employee_id", input.EmployeeID).
		Str("total", result.TotalAmount.String()).
		Int("lines", result.LineCount).
		Msg("venta registrada")
	return result, nil
}
