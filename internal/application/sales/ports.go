package sales

import (
	"context"

	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// ReceiptPDFGenerator genera el recibo imprimible de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, tx *entity.SalesTransaction, cashier *entity.Employee) ([]byte, error)
}
