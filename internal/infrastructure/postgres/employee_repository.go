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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `
	employee_id, name, phone_number, email, address, role, password_hash, created_at, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.PhoneNumber, &e.Email, &e.Address,
		&e.Role, &e.PasswordHash, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste un nuevo empleado (ID generado por la aplicación).
func (r *EmployeeRepo) Create(ctx context.Context, employee *entity.Employee) error {
	query := `
		INSERT INTO employees (employee_id, name, phone_number, email, address, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(ctx, query,
		employee.ID, employee.Name, employee.PhoneNumber, employee.Email,
		employee.Address, employee.Role, employee.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID. Devuelve nil, nil si no existe.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// GetByEmail obtiene un empleado por email. Devuelve nil, nil si no existe.
func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1`
	e, err := scanEmployee(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by email: %w", err)
	}
	return e, nil
}

// List lista los empleados en orden alfabético.
func (r *EmployeeRepo) List(ctx context.Context) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var employees []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

// Update actualiza los datos básicos del empleado (no la contraseña).
func (r *EmployeeRepo) Update(ctx context.Context, employee *entity.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, phone_number = $2, email = $3, address = $4, role = $5, updated_at = now()
		WHERE employee_id = $6`
	tag, err := r.q.Exec(ctx, query,
		employee.Name, employee.PhoneNumber, employee.Email,
		employee.Address, employee.Role, employee.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePassword reemplaza el hash bcrypt del empleado.
func (r *EmployeeRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `
		UPDATE employees SET password_hash = $1, updated_at = now() WHERE employee_id = $2`
	tag, err := r.q.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update employee password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un empleado.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
