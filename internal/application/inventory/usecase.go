package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
	"github.com/tu-usuario/supermarket-pos/pkg/logger"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Misma firma que checkout.TxRunner: la
// recepción también mantiene ítem y lote en lockstep dentro de una tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		lotRepo repository.LotRepository,
		salesRepo repository.SalesRepository,
	) error) error
}

// ReceiveUseCase cubre el flujo del recepcionista: escanear un código de
// barras y recibir mercancía. Fuera del checkout, el inventario solo crece.
type ReceiveUseCase struct {
	txRunner    TxRunner
	itemRepo    repository.InventoryItemRepository
	productRepo repository.ProductRepository
	lotRepo     repository.LotRepository
	log         *logger.Logger
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(
	txRunner TxRunner,
	itemRepo repository.InventoryItemRepository,
	productRepo repository.ProductRepository,
	lotRepo repository.LotRepository,
	log *logger.Logger,
) *ReceiveUseCase {
	return &ReceiveUseCase{
		txRunner:    txRunner,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		lotRepo:     lotRepo,
		log:         log,
	}
}

// Scan busca un ítem con stock por código de barras, enriquecido con
// producto y lote. Devuelve ErrNotFound si no existe o está agotado.
func (uc *ReceiveUseCase) Scan(ctx context.Context, barcode string) (*entity.ScannedItem, error) {
	if barcode == "" {
		return nil, fmt.Errorf("%w: barcode requerido", domain.ErrInvalidInput)
	}
	item, err := uc.itemRepo.ScanByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: barcode %s sin stock o inexistente", domain.ErrNotFound, barcode)
	}
	return item, nil
}

// Receive registra mercancía recibida. Si el barcode ya existe y pertenece
// al mismo empleado, suma la cantidad; si pertenece a otro recepcionista,
// rechaza con ErrBarcodeOwnedByOther. El agregado del lote sube en la misma
// transacción para no desalinearse del ítem.
func (uc *ReceiveUseCase) Receive(ctx context.Context, employeeID string, in dto.ReceiveItemRequest) (*entity.InventoryItem, bool, error) {
	if employeeID == "" {
		return nil, false, fmt.Errorf("%w: employee_id requerido", domain.ErrInvalidInput)
	}
	if in.ProductID <= 0 || in.LotID <= 0 || in.Barcode == "" {
		return nil, false, fmt.Errorf("%w: product_id, lot_id y barcode son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity <= 0 {
		return nil, false, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	manufacturingDate, err := parseDate(in.ManufacturingDate)
	if err != nil {
		return nil, false, fmt.Errorf("%w: manufacturing_date inválida", domain.ErrInvalidInput)
	}
	expiryDate, err := parseDate(in.ExpiryDate)
	if err != nil {
		return nil, false, fmt.Errorf("%w: expiry_date inválida", domain.ErrInvalidInput)
	}

	// Validar referencias antes de abrir la transacción.
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, false, err
	}
	if product == nil {
		return nil, false, fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}
	lot, err := uc.lotRepo.GetByID(ctx, in.LotID)
	if err != nil {
		return nil, false, err
	}
	if lot == nil {
		return nil, false, fmt.Errorf("%w: lote %d", domain.ErrNotFound, in.LotID)
	}

	var (
		item    *entity.InventoryItem
		created bool
	)
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		lotRepo repository.LotRepository,
		_ repository.SalesRepository,
	) error {
		existing, err := itemRepo.GetByBarcode(ctx, in.Barcode)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.CreatedByEmployeeID != employeeID {
				return fmt.Errorf("%w: barcode %s", domain.ErrBarcodeOwnedByOther, in.Barcode)
			}
			rows, err := itemRepo.AddQuantityByBarcode(ctx, in.Barcode, employeeID, in.Quantity)
			if err != nil {
				return err
			}
			if rows != 1 {
				return fmt.Errorf("%w: ítem del barcode %s", domain.ErrConcurrentModification, in.Barcode)
			}
			if _, err := lotRepo.AddQuantity(ctx, existing.LotID, in.Quantity); err != nil {
				return err
			}
			item, err = itemRepo.GetByBarcode(ctx, in.Barcode)
			return err
		}

		item = &entity.InventoryItem{
			ProductID:           in.ProductID,
			LotID:               in.LotID,
			Barcode:             in.Barcode,
			Quantity:            in.Quantity,
			ManufacturingDate:   manufacturingDate,
			ExpiryDate:          expiryDate,
			BatchNumber:         in.BatchNumber,
			CreatedByEmployeeID: employeeID,
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		created = true
		_, err = lotRepo.AddQuantity(ctx, in.LotID, in.Quantity)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	uc.log.Info().
		Str("barcode", in.Barcode).
		Str("employee_id", employeeID).
		Int64("quantity", in.Quantity).
		Bool("created", created).
		Msg("mercancía recibida")
	return item, created, nil
}

// ListByEmployee lista los ítems registrados por un empleado.
func (uc *ReceiveUseCase) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.ScannedItem, error) {
	if employeeID == "" {
		return nil, fmt.Errorf("%w: employee_id requerido", domain.ErrInvalidInput)
	}
	return uc.itemRepo.ListByEmployee(ctx, employeeID)
}

// ListAll lista todo el inventario enriquecido.
func (uc *ReceiveUseCase) ListAll(ctx context.Context) ([]*entity.ScannedItem, error) {
	return uc.itemRepo.ListAll(ctx)
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
