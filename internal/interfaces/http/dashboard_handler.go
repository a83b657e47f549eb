package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/application/usecase"
)

// DashboardHandler agregados de solo lectura para el panel del gerente.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// DailySales godoc
// @Summary      Ventas por día
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Rango en días"  default(30)
// @Success      200   {array}  dto.DailySalesDTO
// @Router       /api/dashboard/daily-sales [get]
func (h *DashboardHandler) DailySales(c *fiber.Ctx) error {
	out, err := h.uc.DailySales(c.Context(), c.QueryInt("days"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days   query  int  false  "Rango en días"  default(30)
// @Param        limit  query  int  false  "Máximo de productos"  default(10)
// @Success      200    {array}  dto.TopProductDTO
// @Router       /api/dashboard/top-products [get]
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context(), c.QueryInt("days"), c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Ítems con stock bajo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de cantidad"  default(10)
// @Success      200        {array}  dto.LowStockDTO
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), int64(c.QueryInt("threshold")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ExpiryAlerts godoc
// @Summary      Ítems próximos a vencer
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días hacia adelante"  default(7)
// @Success      200   {array}  dto.ExpiryAlertDTO
// @Router       /api/dashboard/expiry-alerts [get]
func (h *DashboardHandler) ExpiryAlerts(c *fiber.Ctx) error {
	out, err := h.uc.ExpiryAlerts(c.Context(), c.QueryInt("days"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
