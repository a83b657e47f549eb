package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo implementación de SalesRepository sobre PostgreSQL (usable con pool o tx).
// Las tablas de ventas solo reciben INSERT desde el transactor; nunca UPDATE ni DELETE.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSalesRepository(q Querier) *SalesRepo {
	return &SalesRepo{q: q}
}

// CreateTransaction inserta la cabecera de la venta y devuelve el ID generado.
func (r *SalesRepo) CreateTransaction(ctx context.Context, tx *entity.SalesTransaction) (int64, error) {
	query := `
		INSERT INTO sales_transactions (employee_id, total_amount, transaction_date)
		VALUES ($1, $2, $3)
		RETURNING transaction_id`
	var id int64
	err := r.q.QueryRow(ctx, query, tx.EmployeeID, tx.TotalAmount, tx.TransactionDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert sales transaction: %w", err)
	}
	return id, nil
}

// CreateTransactionItem inserta una línea de venta.
func (r *SalesRepo) CreateTransactionItem(ctx context.Context, item *entity.SalesTransactionItem) error {
	query := `
		INSERT INTO sales_transaction_items (transaction_id, item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		item.TransactionID, item.ItemID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sales transaction item: %w", err)
	}
	return nil
}

// GetTransaction obtiene una venta con sus líneas (enriquecidas con el nombre
// del producto para el recibo). Devuelve nil, nil si no existe.
func (r *SalesRepo) GetTransaction(ctx context.Context, transactionID int64) (*entity.SalesTransaction, error) {
	query := `
		SELECT transaction_id, employee_id, total_amount, transaction_date
		FROM sales_transactions WHERE transaction_id = $1`
	var t entity.SalesTransaction
	err := r.q.QueryRow(ctx, query, transactionID).Scan(
		&t.ID, &t.EmployeeID, &t.TotalAmount, &t.TransactionDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales transaction: %w", err)
	}

	itemsQuery := `
		SELECT sti.transaction_id, sti.item_id, sti.quantity, sti.unit_price, sti.subtotal, p.name
		FROM sales_transaction_items sti
		INNER JOIN inventory_items ii ON ii.item_id = sti.item_id
		INNER JOIN products p ON p.product_id = ii.product_id
		WHERE sti.transaction_id = $1
		ORDER BY sti.item_id ASC`
	rows, err := r.q.Query(ctx, itemsQuery, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.SalesTransactionItem
		if err := rows.Scan(
			&it.TransactionID, &it.ItemID, &it.Quantity, &it.UnitPrice, &it.Subtotal, &it.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan transaction item row: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction items: %w", err)
	}
	return &t, nil
}
