package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/supermarket-pos/internal/application/auth"
	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/supermarket-pos/pkg/jwt"
)

type memEmployeeRepo struct {
	byEmail map[string]*entity.Employee
	byID    map[string]*entity.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{
		byEmail: make(map[string]*entity.Employee),
		byID:    make(map[string]*entity.Employee),
	}
}

func (r *memEmployeeRepo) add(e *entity.Employee) {
	r.byEmail[e.Email] = e
	r.byID[e.ID] = e
}

func (r *memEmployeeRepo) GetByEmail(_ context.Context, email string) (*entity.Employee, error) {
	return r.byEmail[email], nil
}

func (r *memEmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	return r.byID[id], nil
}

func (r *memEmployeeRepo) UpdatePassword(_ context.Context, id, hash string) error {
	e, ok := r.byID[id]
	if !ok {
		return errors.New("empleado inexistente")
	}
	e.PasswordHash = hash
	return nil
}

func (r *memEmployeeRepo) Create(context.Context, *entity.Employee) error {
	return errors.New("no implementado")
}
func (r *memEmployeeRepo) List(context.Context) ([]*entity.Employee, error) {
	return nil, errors.New("no implementado")
}
func (r *memEmployeeRepo) Update(context.Context, *entity.Employee) error {
	return errors.New("no implementado")
}
func (r *memEmployeeRepo) Delete(context.Context, string) error {
	return errors.New("no implementado")
}

const (
	testSecret   = "auth-test-secret"
	testPassword = "contraseña-segura"
)

func buildUseCase(t *testing.T) (*auth.UseCase, *memEmployeeRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newMemEmployeeRepo()
	repo.add(&entity.Employee{
		ID:           "emp-1",
		Name:         "Ana",
		Email:        "ana@tienda.co",
		Role:         entity.RoleCashier,
		PasswordHash: string(hash),
	})
	uc := auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "test",
	})
	return uc, repo
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _ := buildUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@tienda.co",
		Password: testPassword,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "emp-1", out.Employee.EmployeeID)
	assert.Equal(t, entity.RoleCashier, out.Employee.Role)

	// El token lleva el rol como claim firmado.
	employeeID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employeeID)
	assert.Equal(t, entity.RoleCashier, role)
}

func TestLogin_ConRolCoincidente(t *testing.T) {
	uc, _ := buildUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@tienda.co",
		Password: testPassword,
		Role:     entity.RoleCashier,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_RolNoCoincide(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@tienda.co",
		Password: testPassword,
		Role:     entity.RoleStoreManager,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "ana@tienda.co",
		Password: "incorrecta",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistente(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@tienda.co",
		Password: testPassword,
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc, _ := buildUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChangePassword_Exitoso(t *testing.T) {
	uc, repo := buildUseCase(t)

	err := uc.ChangePassword(context.Background(), "emp-1", dto.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "otra-contraseña-larga",
	})
	require.NoError(t, err)

	// La nueva contraseña queda hasheada, nunca en claro.
	e := repo.byID["emp-1"]
	assert.NotEqual(t, "otra-contraseña-larga", e.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte("otra-contraseña-larga")))
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	uc, _ := buildUseCase(t)

	err := uc.ChangePassword(context.Background(), "emp-1", dto.ChangePasswordRequest{
		CurrentPassword: "incorrecta",
		NewPassword:     "otra-contraseña-larga",
	})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_MuyCorta(t *testing.T) {
	uc, _ := buildUseCase(t)

	err := uc.ChangePassword(context.Background(), "emp-1", dto.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "corta",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
