package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermarket-pos/internal/application/checkout"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
	"github.com/tu-usuario/supermarket-pos/internal/domain/repository"
	apphttp "github.com/tu-usuario/supermarket-pos/internal/interfaces/http"
	"github.com/tu-usuario/supermarket-pos/pkg/logger"
)

// errRunner simula una transacción que falla con un error fijo.
// Sirve para verificar la traducción de la taxonomía de errores a HTTP.
type errRunner struct{ err error }

func (r errRunner) Run(context.Context, func(
	repository.InventoryItemRepository,
	repository.LotRepository,
	repository.SalesRepository,
) error) error {
	return r.err
}

// okRunner ejecuta el cierre con repos mínimos que siempre tienen stock.
// Los métodos no sobreescritos de las interfaces embebidas no se invocan.
type okRunner struct{}

type stubItemRepo struct{ repository.InventoryItemRepository }

func (stubItemRepo) GetForUpdate(_ context.Context, itemID int64) (*entity.InventoryItem, error) {
	return &entity.InventoryItem{ID: itemID, LotID: 1, Quantity: 1000}, nil
}
func (stubItemRepo) DecrementQuantity(context.Context, int64, int64) (int64, error) { return 1, nil }

type stubLotRepo struct{ repository.LotRepository }

func (stubLotRepo) DecrementQuantity(context.Context, int64, int64) (int64, error) { return 1, nil }

type stubSalesRepo struct{ repository.SalesRepository }

func (stubSalesRepo) CreateTransaction(context.Context, *entity.SalesTransaction) (int64, error) {
	return 42, nil
}
func (stubSalesRepo) CreateTransactionItem(context.Context, *entity.SalesTransactionItem) error {
	return nil
}

func (okRunner) Run(_ context.Context, fn func(
	repository.InventoryItemRepository,
	repository.LotRepository,
	repository.SalesRepository,
) error) error {
	return fn(stubItemRepo{}, stubLotRepo{}, stubSalesRepo{})
}

func buildCheckoutApp(runner checkout.TxRunner) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewCheckoutHandler(checkout.NewUseCase(runner, logger.Nop()))
	app.Post("/api/sales/checkout",
		apphttp.AuthMiddleware(testJWTSecret),
		handler.Checkout,
	)
	return app
}

func postCheckout(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/sales/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleCashier))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

const validCart = `{"items":[{"item_id":1,"quantity":2,"unit_price":"3.50"}]}`

func TestCheckoutHandler_VentaExitosa_201(t *testing.T) {
	app := buildCheckoutApp(okRunner{})
	resp := postCheckout(t, app, validCart)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(42), body["transaction_id"])
	assert.Equal(t, "7.00", body["total_amount"])
	assert.Equal(t, float64(1), body["line_count"])
}

func TestCheckoutHandler_CarritoVacio_400(t *testing.T) {
	app := buildCheckoutApp(okRunner{})
	resp := postCheckout(t, app, `{"items":[]}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutHandler_BodyInvalido_400(t *testing.T) {
	app := buildCheckoutApp(okRunner{})
	resp := postCheckout(t, app, `{esto no es json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckoutHandler_SinToken_401(t *testing.T) {
	app := buildCheckoutApp(okRunner{})
	req := httptest.NewRequest(http.MethodPost, "/api/sales/checkout", strings.NewReader(validCart))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckoutHandler_ItemInexistente_404(t *testing.T) {
	app := buildCheckoutApp(errRunner{err: domain.ErrNotFound})
	resp := postCheckout(t, app, validCart)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCheckoutHandler_StockInsuficiente_409(t *testing.T) {
	app := buildCheckoutApp(errRunner{err: domain.ErrInsufficientStock})
	resp := postCheckout(t, app, validCart)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
}

func TestCheckoutHandler_ModificacionConcurrente_500(t *testing.T) {
	app := buildCheckoutApp(errRunner{err: domain.ErrConcurrentModification})
	resp := postCheckout(t, app, validCart)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCheckoutHandler_AlmacenNoDisponible_503(t *testing.T) {
	app := buildCheckoutApp(errRunner{err: domain.ErrStoreUnavailable})
	resp := postCheckout(t, app, validCart)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "STORE_UNAVAILABLE", body["code"])
}
