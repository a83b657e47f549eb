package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

// RoleUseCase casos de uso CRUD para roles con permisos de ruta.
// Los roles de sistema no se pueden modificar ni eliminar.
type RoleUseCase struct {
	repo repository.RoleRepository
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository) *RoleUseCase {
	return &RoleUseCase{repo: repo}
}

// Create registra un rol con sus permisos.
func (uc *RoleUseCase) Create(ctx context.Context, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if in.RoleName == "" {
		return nil, fmt.Errorf("%w: role_name requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByName(ctx, in.RoleName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrDuplicate, in.RoleName)
	}
	role := &entity.Role{
		Name:        in.RoleName,
		Description: in.RoleDescription,
		Permissions: toPermissionEntities(in.Permissions),
	}
	if err := uc.repo.Create(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// List lista los roles con sus permisos.
func (uc *RoleUseCase) List(ctx context.Context) ([]*dto.RoleResponse, error) {
	roles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return out, nil
}

// ListNames devuelve los nombres de rol (dropdown de login; sin auth).
func (uc *RoleUseCase) ListNames(ctx context.Context) ([]string, error) {
	return uc.repo.ListNames(ctx)
}

// Update modifica un rol no-sistema y reemplaza sus permisos.
func (uc *RoleUseCase) Update(ctx context.Context, id int64, in dto.RoleRequest) (*dto.RoleResponse, error) {
	if in.RoleName == "" {
		return nil, fmt.Errorf("%w: role_name requerido", domain.ErrInvalidInput)
	}
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: rol %d", domain.ErrNotFound, id)
	}
	if role.IsSystemRole {
		return nil, fmt.Errorf("%w: los roles de sistema no se modifican", domain.ErrForbidden)
	}
	role.Name = in.RoleName
	role.Description = in.RoleDescription
	role.Permissions = toPermissionEntities(in.Permissions)
	if err := uc.repo.Update(ctx, role); err != nil {
		return nil, err
	}
	return toRoleResponse(role), nil
}

// Delete elimina un rol no-sistema.
func (uc *RoleUseCase) Delete(ctx context.Context, id int64) error {
	role, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("%w: rol %d", domain.ErrNotFound, id)
	}
	if role.IsSystemRole {
		return fmt.Errorf("%w: los roles de sistema no se eliminan", domain.ErrForbidden)
	}
	return uc.repo.Delete(ctx, id)
}

func toPermissionEntities(in []dto.RolePermissionDTO) []entity.RolePermission {
	out := make([]entity.RolePermission, 0, len(in))
	for _, p := range in {
		out = append(out, entity.RolePermission{RoutePath: p.RoutePath, RouteName: p.RouteName})
	}
	return out
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	perms := make([]dto.RolePermissionDTO, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, dto.RolePermissionDTO{
			PermissionID: p.ID,
			RoutePath:    p.RoutePath,
			RouteName:    p.RouteName,
		})
	}
	return &dto.RoleResponse{
		RoleID:          r.ID,
		RoleName:        r.Name,
		RoleDescription: r.Description,
		IsSystemRole:    r.IsSystemRole,
		Permissions:     perms,
	}
}
