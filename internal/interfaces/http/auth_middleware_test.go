package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	apphttp "github.com/tu-usuario/supermarket-pos/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/supermarket-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testEmployeeID = "00000000-0000-0000-0000-000000000001"
	testIssuer     = "supermarket-pos-test"
	testExpMin     = 60
)

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testEmployeeID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El empleado tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_GerenteAccedeRutaGerente(t *testing.T) {
	app := buildTestApp(entity.RoleStoreManager)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleStoreManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el gerente debe poder acceder a ruta restringida a gerentes")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleStoreManager, body["role"])
}

// Caso 1b: Uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_CajeroAccedeRutaPOS(t *testing.T) {
	app := buildTestApp(entity.RoleCashier, entity.RoleStoreManager)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleCashier))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el cajero debe poder acceder a ruta que permite cajero o gerente")
}

// Caso 2: Rol distinto al requerido → HTTP 403 Forbidden.
func TestRequireRole_BodegueroBloqueadoEnCheckout(t *testing.T) {
	app := buildTestApp(entity.RoleCashier, entity.RoleStoreManager)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleReceivingClerk))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"el bodeguero no debe poder acceder a rutas del POS")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 2b: Cajero bloqueado en administración de empleados → HTTP 403.
func TestRequireRole_CajeroBloqueadoEnAdministracion(t *testing.T) {
	app := buildTestApp(entity.RoleStoreManager)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleCashier))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Caso 3: Token sin claim de rol → HTTP 401.
func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleStoreManager)
	tok, err := pkgjwt.Generate(testJWTSecret, testEmployeeID, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token sin rol debe retornar 401")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

// Caso 4: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleStoreManager)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 5: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleStoreManager)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: Firma con otro secreto → HTTP 401.
func TestRequireRole_FirmaIncorrecta_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleStoreManager)
	tok, err := pkgjwt.Generate("otro-secreto", testEmployeeID, entity.RoleStoreManager, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"employee_id": apphttp.GetEmployeeID(c),
			"role":        apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleCashier))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testEmployeeID, body["employee_id"])
	assert.Equal(t, entity.RoleCashier, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testEmployeeID, entity.RoleReceivingClerk, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	employeeID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, employeeID)
	assert.Equal(t, entity.RoleReceivingClerk, role)
}

func TestJWT_Parse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testEmployeeID, entity.RoleCashier, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("secreto-equivocado", tok)
	assert.Error(t, err)
}
