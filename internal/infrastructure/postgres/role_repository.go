package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementación de RoleRepository sobre PostgreSQL (usable con pool o tx).
// Los permisos se reemplazan completos en Create/Update (delete + insert).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de roles. Pasar pool o tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create registra un rol con sus permisos.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	query := `
		INSERT INTO roles (name, description, is_system_role)
		VALUES ($1, $2, false)
		RETURNING role_id`
	if err := r.q.QueryRow(ctx, query, role.Name, role.Description).Scan(&role.ID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return r.replacePermissions(ctx, role)
}

func (r *RoleRepo) replacePermissions(ctx context.Context, role *entity.Role) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, role.ID); err != nil {
		return fmt.Errorf("clear role permissions: %w", err)
	}
	for i := range role.Permissions {
		p := &role.Permissions[i]
		err := r.q.QueryRow(ctx, `
			INSERT INTO role_permissions (role_id, route_path, route_name)
			VALUES ($1, $2, $3)
			RETURNING permission_id`,
			role.ID, p.RoutePath, p.RouteName,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert role permission: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un rol con sus permisos. Devuelve nil, nil si no existe.
func (r *RoleRepo) GetByID(ctx context.Context, id int64) (*entity.Role, error) {
	query := `
		SELECT role_id, name, description, is_system_role
		FROM roles WHERE role_id = $1`
	var role entity.Role
	err := r.q.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.Description, &role.IsSystemRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	if err := r.loadPermissions(ctx, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// GetByName obtiene un rol por nombre (sin permisos). Devuelve nil, nil si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	query := `
		SELECT role_id, name, description, is_system_role
		FROM roles WHERE name = $1`
	var role entity.Role
	err := r.q.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name, &role.Description, &role.IsSystemRole)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role by name: %w", err)
	}
	return &role, nil
}

func (r *RoleRepo) loadPermissions(ctx context.Context, role *entity.Role) error {
	rows, err := r.q.Query(ctx, `
		SELECT permission_id, route_path, route_name
		FROM role_permissions WHERE role_id = $1
		ORDER BY route_name ASC`, role.ID)
	if err != nil {
		return fmt.Errorf("list role permissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.RolePermission
		if err := rows.Scan(&p.ID, &p.RoutePath, &p.RouteName); err != nil {
			return fmt.Errorf("scan role permission row: %w", err)
		}
		role.Permissions = append(role.Permissions, p)
	}
	return rows.Err()
}

// List lista los roles con sus permisos, en orden alfabético.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `
		SELECT role_id, name, description, is_system_role
		FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.IsSystemRole); err != nil {
			return nil, fmt.Errorf("scan role row: %w", err)
		}
		roles = append(roles, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}
	for _, role := range roles {
		if err := r.loadPermissions(ctx, role); err != nil {
			return nil, err
		}
	}
	return roles, nil
}

// ListNames devuelve solo los nombres de rol (dropdown de login; público).
func (r *RoleRepo) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT name FROM roles ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list role names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan role name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Update actualiza nombre, descripción y permisos de un rol.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE roles SET name = $1, description = $2 WHERE role_id = $3`,
		role.Name, role.Description, role.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return r.replacePermissions(ctx, role)
}

// Delete elimina un rol y sus permisos (cascade en la FK).
func (r *RoleRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM roles WHERE role_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
