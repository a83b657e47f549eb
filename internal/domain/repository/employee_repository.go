package repository

import (
	"context"

	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para empleados.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	List(ctx context.Context) ([]*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
