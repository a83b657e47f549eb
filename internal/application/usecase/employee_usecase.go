package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// DefaultEmployeePassword se usa cuando el gerente crea un empleado sin
// contraseña; el empleado debe cambiarla en /api/profile/password.
const DefaultEmployeePassword = "ChangeMe123!"

// EmployeeUseCase casos de uso CRUD para empleados (solo Store Manager).
type EmployeeUseCase struct {
	repo     repository.EmployeeRepository
	roleRepo repository.RoleRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, roleRepo repository.RoleRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, roleRepo: roleRepo}
}

// Create registra un empleado con rol válido y contraseña hasheada.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" || in.PhoneNumber == "" || in.Email == "" || in.Address == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: name, phone_number, email, address y role son requeridos", domain.ErrInvalidInput)
	}
	role, err := uc.roleRepo.GetByName(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrNotFound, in.Role)
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	password := in.Password
	if password == "" {
		password = DefaultEmployeePassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		Name:         in.Name,
		PhoneNumber:  in.PhoneNumber,
		Email:        in.Email,
		Address:      in.Address,
		Role:         in.Role,
		PasswordHash: string(hash),
	}
	if err := uc.repo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List lista los empleados sin campos sensibles.
func (uc *EmployeeUseCase) List(ctx context.Context) ([]*dto.EmployeeResponse, error) {
	employees, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// Update actualiza los datos básicos de un empleado.
func (uc *EmployeeUseCase) Update(ctx context.Context, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" || in.PhoneNumber == "" || in.Email == "" || in.Address == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: name, phone_number, email, address y role son requeridos", domain.ErrInvalidInput)
	}
	employee, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: empleado %s", domain.ErrNotFound, id)
	}
	role, err := uc.roleRepo.GetByName(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrNotFound, in.Role)
	}
	employee.Name = in.Name
	employee.PhoneNumber = in.PhoneNumber
	employee.Email = in.Email
	employee.Address = in.Address
	employee.Role = in.Role
	if err := uc.repo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Delete elimina un empleado.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		EmployeeID:  e.ID,
		Name:        e.Name,
		PhoneNumber: e.PhoneNumber,
		Email:       e.Email,
		Address:     e.Address,
		Role:        e.Role,
	}
}
