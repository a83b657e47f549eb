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

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create registra un lote y asigna su ID generado.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	query := `
		INSERT INTO lots (supplier_id, name, date_of_arrival, product_count, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING lot_id`
	err := r.q.QueryRow(ctx, query,
		lot.SupplierID, lot.Name, lot.DateOfArrival, lot.ProductCount, lot.Quantity,
	).Scan(&lot.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil, nil si no existe.
func (r *LotRepo) GetByID(ctx context.Context, id int64) (*entity.Lot, error) {
	query := `
		SELECT lot_id, supplier_id, name, date_of_arrival, product_count, quantity
		FROM lots WHERE lot_id = $1`
	var l entity.Lot
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.SupplierID, &l.Name, &l.DateOfArrival, &l.ProductCount, &l.Quantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// List lista los lotes con el nombre del proveedor, más recientes primero.
func (r *LotRepo) List(ctx context.Context) ([]*entity.Lot, error) {
	query := `
		SELECT l.lot_id, l.supplier_id, l.name, l.date_of_arrival,
		       l.product_count, l.quantity, COALESCE(s.name, '')
		FROM lots l
		LEFT JOIN suppliers s ON s.supplier_id = l.supplier_id
		ORDER BY l.date_of_arrival DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()

	var lots []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(
			&l.ID, &l.SupplierID, &l.Name, &l.DateOfArrival,
			&l.ProductCount, &l.Quantity, &l.SupplierName,
		); err != nil {
			return nil, fmt.Errorf("scan lot row: %w", err)
		}
		lots = append(lots, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lots: %w", err)
	}
	return lots, nil
}

// DecrementQuantity resta quantity al agregado del lote y devuelve filas afectadas.
func (r *LotRepo) DecrementQuantity(ctx context.Context, lotID, quantity int64) (int64, error) {
	query := `
		UPDATE lots
		SET quantity = quantity - $1
		WHERE lot_id = $2`
	tag, err := r.q.Exec(ctx, query, quantity, lotID)
	if err != nil {
		return 0, fmt.Errorf("decrement lot quantity: %w", err)
	}
	return tag.RowsAffected(), nil
}

// AddQuantity suma quantity al agregado del lote (recepción).
func (r *LotRepo) AddQuantity(ctx context.Context, lotID, quantity int64) (int64, error) {
	query := `
		UPDATE lots
		SET quantity = quantity + $1
		WHERE lot_id = $2`
	tag, err := r.q.Exec(ctx, query, quantity, lotID)
	if err != nil {
		return 0, fmt.Errorf("add lot quantity: %w", err)
	}
	return tag.RowsAffected(), nil
}
