package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para los tableros por rol.
// Opera directo sobre el pool: estas lecturas no necesitan transacción
// ni bloqueos, a diferencia del transactor de checkout.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador de tableros.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// GetDailySales agrupa las ventas por día desde la fecha indicada.
func (r *DashboardRepo) GetDailySales(ctx context.Context, since time.Time) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT
	    date_trunc('day', st.transaction_date)          AS day,
	    COUNT(DISTINCT st.transaction_id)               AS transaction_count,
	    COALESCE(SUM(sti.quantity), 0)                  AS units_sold,
	    COALESCE(SUM(sti.subtotal), 0)                  AS revenue
	FROM sales_transactions st
	JOIN sales_transaction_items sti ON sti.transaction_id = st.transaction_id
	WHERE st.transaction_date >= $1
	GROUP BY 1
	ORDER BY 1 DESC`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetDailySales: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Day, &row.TransactionCount, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("dashboard.GetDailySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts lista los productos más vendidos desde la fecha indicada.
func (r *DashboardRepo) GetTopProducts(ctx context.Context, since time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.product_id,
	    p.name,
	    COALESCE(SUM(sti.quantity), 0)  AS units_sold,
	    COALESCE(SUM(sti.subtotal), 0)  AS revenue
	FROM sales_transaction_items sti
	JOIN sales_transactions st ON st.transaction_id = sti.transaction_id
	JOIN inventory_items ii    ON ii.item_id        = sti.item_id
	JOIN products p            ON p.product_id      = ii.product_id
	WHERE st.transaction_date >= $1
	GROUP BY p.product_id, p.name
	ORDER BY units_sold DESC
	LIMIT $2`

	rows, err := r.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitsSold, &row.Revenue); err != nil {
			return nil, fmt.Errorf("dashboard.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetLowStock lista los ítems con cantidad igual o inferior al umbral.
func (r *DashboardRepo) GetLowStock(ctx context.Context, threshold int64) ([]repository.LowStockResult, error) {
	const query = `
	SELECT ii.item_id, ii.barcode, p.name, ii.quantity
	FROM inventory_items ii
	JOIN products p ON p.product_id = ii.product_id
	WHERE ii.quantity <= $1
	ORDER BY ii.quantity ASC`

	rows, err := r.pool.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetLowStock: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockResult
	for rows.Next() {
		var row repository.LowStockResult
		if err := rows.Scan(&row.ItemID, &row.Barcode, &row.ProductName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("dashboard.GetLowStock scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetExpiryAlerts lista los ítems con stock que vencen dentro de la ventana.
func (r *DashboardRepo) GetExpiryAlerts(ctx context.Context, within time.Duration) ([]repository.ExpiryAlertResult, error) {
	const query = `
	SELECT ii.item_id, ii.barcode, p.name, ii.quantity, ii.expiry_date
	FROM inventory_items ii
	JOIN products p ON p.product_id = ii.product_id
	WHERE ii.expiry_date IS NOT NULL
	  AND ii.quantity > 0
	  AND ii.expiry_date <= $1
	ORDER BY ii.expiry_date ASC`

	deadline := time.Now().Add(within)
	rows, err := r.pool.Query(ctx, query, deadline)
	if err != nil {
		return nil, fmt.Errorf("dashboard.GetExpiryAlerts: %w", err)
	}
	defer rows.Close()

	var results []repository.ExpiryAlertResult
	for rows.Next() {
		var row repository.ExpiryAlertResult
		if err := rows.Scan(&row.ItemID, &row.Barcode, &row.ProductName, &row.Quantity, &row.ExpiryDate); err != nil {
			return nil, fmt.Errorf("dashboard.GetExpiryAlerts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
