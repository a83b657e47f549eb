package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermarket-pos/internal/application/checkout"
	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
)

// CheckoutHandler expone el transactor de checkout sobre HTTP.
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Checkout godoc
// @Summary      Registrar venta (checkout atómico)
// @Description  Valida el carrito, verifica stock con bloqueo de filas y registra la venta en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/sales/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "employee_id requerido"})
	}
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]checkout.CartLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, checkout.CartLine{ItemID: it.ItemID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	out, err := h.uc.Checkout(c.Context(), checkout.CheckoutInput{EmployeeID: employeeID, Items: lines})
	if err != nil {
		return checkoutError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CheckoutResponse{
		TransactionID: out.TransactionID,
		TotalAmount:   out.TotalAmount,
		LineCount:     out.LineCount,
	})
}

// checkoutError traduce la taxonomía de errores del transactor a HTTP.
func checkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrentModification):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "conflicto de concurrencia, reintente la venta"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: "almacén no disponible, reintente más tarde"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
