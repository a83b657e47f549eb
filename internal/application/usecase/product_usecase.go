package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Category == "" {
		return nil, fmt.Errorf("%w: name y category son requeridos", domain.ErrInvalidInput)
	}
	if in.StandardPrice.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	product := &entity.Product{
		Name:          in.Name,
		Description:   in.Description,
		StandardPrice: in.StandardPrice,
		Category:      in.Category,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   p.Description,
		StandardPrice: p.StandardPrice,
		Category:      p.Category,
	}
}
