package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/supermarket-pos/internal/application/checkout"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

// Códigos SQLSTATE que indican que la transacción perdió contra otra y
// puede reintentarse tal cual: deadlock detectado y fallo de serialización.
const (
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
)

func isRetryablePgError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgDeadlockDetected || pgErr.Code == pgSerializationFailure
}

// Ensure TxRunner implements checkout.TxRunner.
var _ checkout.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los bloqueos de fila tomados por los repos (SELECT FOR UPDATE) se
// mantienen hasta el Commit o Rollback de esa transacción.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Fallos de Begin/Commit, deadlocks y fallos de serialización se reportan
// como domain.ErrStoreUnavailable: nada quedó comprometido y el caller
// puede reintentar.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.InventoryItemRepository,
	lotRepo repository.LotRepository,
	salesRepo repository.SalesRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	itemRepo := NewInventoryItemRepository(tx)
	lotRepo := NewLotRepository(tx)
	salesRepo := NewSalesRepository(tx)

	if err := fn(itemRepo, lotRepo, salesRepo); err != nil {
		if isRetryablePgError(err) {
			return fmt.Errorf("%w: transaction aborted by postgres: %v", domain.ErrStoreUnavailable, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
