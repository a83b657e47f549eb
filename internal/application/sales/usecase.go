package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

// UseCase consultas de ventas comprometidas y generación del recibo.
// Solo lectura: las ventas son inmutables una vez comprometidas por el
// transactor de checkout.
type UseCase struct {
	salesRepo    repository.SalesRepository
	employeeRepo repository.EmployeeRepository
	generator    ReceiptPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	salesRepo repository.SalesRepository,
	employeeRepo repository.EmployeeRepository,
	generator ReceiptPDFGenerator,
) *UseCase {
	return &UseCase{salesRepo: salesRepo, employeeRepo: employeeRepo, generator: generator}
}

// GetTransaction obtiene una venta con sus líneas.
func (uc *UseCase) GetTransaction(ctx context.Context, transactionID int64) (*dto.TransactionResponse, error) {
	tx, err := uc.salesRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: venta %d", domain.ErrNotFound, transactionID)
	}
	items := make([]dto.TransactionItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, dto.TransactionItemResponse{
			ItemID:      it.ItemID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return &dto.TransactionResponse{
		TransactionID:   tx.ID,
		EmployeeID:      tx.EmployeeID,
		TotalAmount:     tx.TotalAmount,
		TransactionDate: tx.TransactionDate,
		Items:           items,
	}, nil
}

// DownloadReceiptPDF genera el recibo imprimible de una venta.
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound si la venta no existe.
func (uc *UseCase) DownloadReceiptPDF(ctx context.Context, transactionID int64) ([]byte, string, error) {
	tx, err := uc.salesRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener venta: %w", err)
	}
	if tx == nil {
		return nil, "", fmt.Errorf("%w: venta %d", domain.ErrNotFound, transactionID)
	}
	// El cajero puede haber sido eliminado después de la venta; el recibo
	// sale igual con el ID registrado.
	cashier, err := uc.employeeRepo.GetByID(ctx, tx.EmployeeID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener cajero: %w", err)
	}
	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, tx, cashier)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("recibo-%d.pdf", tx.ID)
	return pdfBytes, filename, nil
}
