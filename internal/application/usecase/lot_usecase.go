package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

// LotUseCase casos de uso CRUD para lotes.
type LotUseCase struct {
	repo         repository.LotRepository
	supplierRepo repository.SupplierRepository
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(repo repository.LotRepository, supplierRepo repository.SupplierRepository) *LotUseCase {
	return &LotUseCase{repo: repo, supplierRepo: supplierRepo}
}

// Create registra un lote. El proveedor debe existir.
func (uc *LotUseCase) Create(ctx context.Context, in dto.CreateLotRequest) (*dto.LotResponse, error) {
	if in.SupplierID <= 0 || in.LotName == "" {
		return nil, fmt.Errorf("%w: supplier_id y lot_name son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 || in.ProductCount < 0 {
		return nil, fmt.Errorf("%w: quantity y product_count no pueden ser negativos", domain.ErrInvalidInput)
	}
	dateOfArrival, err := time.Parse("2006-01-02", in.DateOfArrival)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_arrival inválida", domain.ErrInvalidInput)
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, in.SupplierID)
	}
	lot := &entity.Lot{
		SupplierID:    in.SupplierID,
		Name:          in.LotName,
		DateOfArrival: dateOfArrival,
		ProductCount:  in.ProductCount,
		Quantity:      in.Quantity,
	}
	if err := uc.repo.Create(ctx, lot); err != nil {
		return nil, err
	}
	resp := toLotResponse(lot)
	resp.SupplierName = supplier.Name
	return resp, nil
}

// List lista los lotes con el nombre de su proveedor.
func (uc *LotUseCase) List(ctx context.Context) ([]*dto.LotResponse, error) {
	lots, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		resp := toLotResponse(l)
		resp.SupplierName = l.SupplierName
		out = append(out, resp)
	}
	return out, nil
}

func toLotResponse(l *entity.Lot) *dto.LotResponse {
	return &dto.LotResponse{
		LotID:         l.ID,
		SupplierID:    l.SupplierID,
		LotName:       l.Name,
		DateOfArrival: l.DateOfArrival,
		ProductCount:  l.ProductCount,
		Quantity:      l.Quantity,
	}
}
