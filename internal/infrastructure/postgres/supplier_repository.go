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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create registra un proveedor y asigna su ID generado.
func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (name, date_of_joining, poc, contact_number, product_count, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING supplier_id`
	err := r.q.QueryRow(ctx, query,
		supplier.Name, supplier.DateOfJoining, supplier.POC,
		supplier.ContactNumber, supplier.ProductCount,
	).Scan(&supplier.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve nil, nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	query := `
		SELECT supplier_id, name, date_of_joining, poc, contact_number, product_count, created_at
		FROM suppliers WHERE supplier_id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.DateOfJoining, &s.POC, &s.ContactNumber, &s.ProductCount, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista los proveedores en orden alfabético.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	query := `
		SELECT supplier_id, name, date_of_joining, poc, contact_number, product_count, created_at
		FROM suppliers ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.DateOfJoining, &s.POC, &s.ContactNumber, &s.ProductCount, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier row: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return suppliers, nil
}
