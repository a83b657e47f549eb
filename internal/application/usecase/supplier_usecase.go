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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.POC == "" || in.ContactNumber == "" {
		return nil, fmt.Errorf("%w: name, poc y contact_number son requeridos", domain.ErrInvalidInput)
	}
	dateOfJoining, err := time.Parse("2006-01-02", in.DateOfJoining)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_joining inválida", domain.ErrInvalidInput)
	}
	supplier := &entity.Supplier{
		Name:          in.Name,
		DateOfJoining: dateOfJoining,
		POC:           in.POC,
		ContactNumber: in.ContactNumber,
		ProductCount:  in.ProductCount,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*dto.SupplierResponse, error) {
	suppliers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		SupplierID:    s.ID,
		Name:          s.Name,
		DateOfJoining: s.DateOfJoining,
		POC:           s.POC,
		ContactNumber: s.ContactNumber,
		ProductCount:  s.ProductCount,
	}
}
