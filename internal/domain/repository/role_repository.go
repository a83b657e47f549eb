package repository

import (
	"context"

	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// RoleRepository define el puerto de persistencia para roles y sus permisos.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, id int64) (*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	ListNames(ctx context.Context) ([]string, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id int64) error
}
