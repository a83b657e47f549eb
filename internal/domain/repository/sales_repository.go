package repository

import (
	"context"

	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// SalesRepository define el puerto de persistencia para ventas.
// CreateTransaction devuelve el ID generado por la base de datos.
type SalesRepository interface {
	CreateTransaction(ctx context.Context, tx *entity.SalesTransaction) (int64, error)
	CreateTransactionItem(ctx context.Context, item *entity.SalesTransactionItem) error
	GetTransaction(ctx context.Context, transactionID int64) (*entity.SalesTransaction, error)
}
