package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo implementación de InventoryItemRepository sobre PostgreSQL (usable con pool o tx).
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE) hasta
// el fin de la transacción. Devuelve nil, nil si el ítem no existe.
func (r *InventoryItemRepo) GetForUpdate(ctx context.Context, itemID int64) (*entity.InventoryItem, error) {
	query := `
		SELECT item_id, product_id, lot_id, barcode, quantity,
		       manufacturing_date, expiry_date, batch_number,
		       created_by_employee_id, created_at, updated_at
		FROM inventory_items WHERE item_id = $1
		FOR UPDATE`
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, itemID).Scan(
		&it.ID, &it.ProductID, &it.LotID, &it.Barcode, &it.Quantity,
		&it.ManufacturingDate, &it.ExpiryDate, &it.BatchNumber,
		&it.CreatedByEmployeeID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return &it, nil
}

// DecrementQuantity resta quantity al ítem y devuelve las filas afectadas.
// El WHERE redundante quantity >= $1 protege el invariante quantity >= 0
// incluso si alguien llama sin el bloqueo previo.
func (r *InventoryItemRepo) DecrementQuantity(ctx context.Context, itemID, quantity int64) (int64, error) {
	query := `
		UPDATE inventory_items
		SET quantity = quantity - $1, updated_at = now()
		WHERE item_id = $2 AND quantity >= $1`
	tag, err := r.q.Exec(ctx, query, quantity, itemID)
	if err != nil {
		return 0, fmt.Errorf("decrement item quantity: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetByBarcode obtiene el ítem crudo por código de barras (incluye agotados).
func (r *InventoryItemRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.InventoryItem, error) {
	query := `
		SELECT item_id, product_id, lot_id, barcode, quantity,
		       manufacturing_date, expiry_date, batch_number,
		       created_by_employee_id, created_at, updated_at
		FROM inventory_items WHERE barcode = $1`
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, barcode).Scan(
		&it.ID, &it.ProductID, &it.LotID, &it.Barcode, &it.Quantity,
		&it.ManufacturingDate, &it.ExpiryDate, &it.BatchNumber,
		&it.CreatedByEmployeeID, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by barcode: %w", err)
	}
	return &it, nil
}

const scannedItemColumns = `
	ii.item_id, ii.product_id, ii.lot_id, ii.barcode, ii.quantity,
	ii.manufacturing_date, ii.expiry_date, ii.batch_number,
	ii.created_by_employee_id, ii.created_at, ii.updated_at,
	p.name, p.category, p.standard_price,
	l.name, s.name`

func scanScannedItem(row pgx.Row) (*entity.ScannedItem, error) {
	var it entity.ScannedItem
	err := row.Scan(
		&it.ID, &it.ProductID, &it.LotID, &it.Barcode, &it.Quantity,
		&it.ManufacturingDate, &it.ExpiryDate, &it.BatchNumber,
		&it.CreatedByEmployeeID, &it.CreatedAt, &it.UpdatedAt,
		&it.ProductName, &it.ProductCategory, &it.ProductPrice,
		&it.LotName, &it.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ScanByBarcode busca un ítem con stock por código de barras, enriquecido
// con producto y lote (pantalla de escaneo y POS).
func (r *InventoryItemRepo) ScanByBarcode(ctx context.Context, barcode string) (*entity.ScannedItem, error) {
	query := `
		SELECT ` + scannedItemColumns + `
		FROM inventory_items ii
		INNER JOIN products p ON p.product_id = ii.product_id
		INNER JOIN lots l ON l.lot_id = ii.lot_id
		LEFT JOIN suppliers s ON s.supplier_id = l.supplier_id
		WHERE ii.barcode = $1 AND ii.quantity > 0
		LIMIT 1`
	it, err := scanScannedItem(r.q.QueryRow(ctx, query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan item by barcode: %w", err)
	}
	return it, nil
}

// Create registra un nuevo ítem de inventario y asigna su ID generado.
func (r *InventoryItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory_items
			(product_id, lot_id, barcode, quantity, manufacturing_date,
			 expiry_date, batch_number, created_by_employee_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING item_id`
	err := r.q.QueryRow(ctx, query,
		item.ProductID, item.LotID, item.Barcode, item.Quantity,
		item.ManufacturingDate, item.ExpiryDate, item.BatchNumber,
		item.CreatedByEmployeeID,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// AddQuantityByBarcode suma quantity al ítem del barcode registrado por el
// mismo empleado (recepción aditiva). Devuelve filas afectadas.
func (r *InventoryItemRepo) AddQuantityByBarcode(ctx context.Context, barcode, employeeID string, quantity int64) (int64, error) {
	query := `
		UPDATE inventory_items
		SET quantity = quantity + $1, updated_at = now()
		WHERE barcode = $2 AND created_by_employee_id = $3`
	tag, err := r.q.Exec(ctx, query, quantity, barcode, employeeID)
	if err != nil {
		return 0, fmt.Errorf("add quantity by barcode: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByEmployee lista los ítems registrados por un empleado, enriquecidos.
func (r *InventoryItemRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.ScannedItem, error) {
	query := `
		SELECT ` + scannedItemColumns + `
		FROM inventory_items ii
		INNER JOIN products p ON p.product_id = ii.product_id
		INNER JOIN lots l ON l.lot_id = ii.lot_id
		LEFT JOIN suppliers s ON s.supplier_id = l.supplier_id
		WHERE ii.created_by_employee_id = $1
		ORDER BY ii.updated_at DESC`
	return r.listScanned(ctx, query, employeeID)
}

// ListAll lista todo el inventario enriquecido (tablero de stock).
func (r *InventoryItemRepo) ListAll(ctx context.Context) ([]*entity.ScannedItem, error) {
	query := `
		SELECT ` + scannedItemColumns + `
		FROM inventory_items ii
		INNER JOIN products p ON p.product_id = ii.product_id
		INNER JOIN lots l ON l.lot_id = ii.lot_id
		LEFT JOIN suppliers s ON s.supplier_id = l.supplier_id
		ORDER BY ii.updated_at DESC`
	return r.listScanned(ctx, query)
}

func (r *InventoryItemRepo) listScanned(ctx context.Context, query string, args ...any) ([]*entity.ScannedItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var items []*entity.ScannedItem
	for rows.Next() {
		it, err := scanScannedItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory items: %w", err)
	}
	return items, nil
}
