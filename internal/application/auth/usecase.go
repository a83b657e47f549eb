package auth

import (
	"context"
	"fmt"

	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
	"github.com/tu-usuario/supermarket-pos/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: login y cambio de contraseña.
// El rol viaja como claim firmado del JWT; el middleware RBAC lo verifica
// en cada petición en lugar de confiar en headers del cliente.
type UseCase struct {
	employeeRepo repository.EmployeeRepository
	jwtCfg       JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(employeeRepo repository.EmployeeRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{employeeRepo: employeeRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password (bcrypt), valida el rol elegido si viene en
// la petición y genera el JWT.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son requeridos", domain.ErrInvalidInput)
	}
	employee, err := uc.employeeRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if in.Role != "" && employee.Role != in.Role {
		return nil, fmt.Errorf("%w: el rol no corresponde al usuario", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, employee.ID, employee.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:    token,
		Employee: toEmployeeResponse(employee),
	}, nil
}

// ChangePassword verifica la contraseña actual y guarda el hash de la nueva.
func (uc *UseCase) ChangePassword(ctx context.Context, employeeID string, in dto.ChangePasswordRequest) error {
	if in.CurrentPassword == "" || in.NewPassword == "" {
		return fmt.Errorf("%w: current_password y new_password son requeridos", domain.ErrInvalidInput)
	}
	if len(in.NewPassword) < 8 {
		return fmt.Errorf("%w: la nueva contraseña debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	employee, err := uc.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.employeeRepo.UpdatePassword(ctx, employeeID, string(hash))
}

func toEmployeeResponse(e *entity.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		EmployeeID:  e.ID,
		Name:        e.Name,
		PhoneNumber: e.PhoneNumber,
		Email:       e.Email,
		Address:     e.Address,
		Role:        e.Role,
	}
}
