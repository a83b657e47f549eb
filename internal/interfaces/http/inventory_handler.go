package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermarket-pos/internal/application/dto"
	"github.com/tu-usuario/supermarket-pos/internal/application/inventory"
	"github.com/tu-usuario/supermarket-pos/internal/domain"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// InventoryHandler maneja escaneo, recepción y listados de inventario.
type InventoryHandler struct {
	uc *inventory.ReceiveUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.ReceiveUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Scan godoc
// @Summary      Escanear código de barras
// @Description  Devuelve el ítem de inventario con producto, lote y proveedor.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        barcode  path  string  true  "Código de barras"
// @Success      200  {object}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/scan/{barcode} [get]
func (h *InventoryHandler) Scan(c *fiber.Ctx) error {
	barcode := c.Params("barcode")
	if barcode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_BARCODE", Message: "barcode es requerido"})
	}
	out, err := h.uc.Scan(c.Context(), barcode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código de barras no registrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toInventoryItemResponse(out))
}

// Receive godoc
// @Summary      Recibir mercancía
// @Description  Registra un ítem nuevo o suma cantidad a un barcode existente del mismo empleado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveItemRequest  true  "Recepción"
// @Success      200   {object}  dto.InventoryItemResponse  "Cantidad sumada a ítem existente"
// @Success      201   {object}  dto.InventoryItemResponse  "Ítem creado"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "employee_id requerido"})
	}
	var in dto.ReceiveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, created, err := h.uc.Receive(c.Context(), employeeID, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		case errors.Is(err, domain.ErrBarcodeOwnedByOther):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BARCODE_TAKEN", Message: "el código de barras pertenece a otro empleado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.InventoryItemResponse{
		ItemID:            item.ID,
		ProductID:         item.ProductID,
		LotID:             item.LotID,
		Barcode:           item.Barcode,
		Quantity:          item.Quantity,
		ManufacturingDate: item.ManufacturingDate,
		ExpiryDate:        item.ExpiryDate,
		BatchNumber:       item.BatchNumber,
		CreatedBy:         item.CreatedByEmployeeID,
		UpdatedAt:         item.UpdatedAt,
	})
}

// ListMine godoc
// @Summary      Listar ítems registrados por el empleado autenticado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) ListMine(c *fiber.Ctx) error {
	employeeID := GetEmployeeID(c)
	if employeeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "employee_id requerido"})
	}
	items, err := h.uc.ListByEmployee(c.Context(), employeeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toInventoryItemResponses(items))
}

// ListAll godoc
// @Summary      Listar todos los ítems de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryItemResponse
// @Router       /api/inventory/items/all [get]
func (h *InventoryHandler) ListAll(c *fiber.Ctx) error {
	items, err := h.uc.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toInventoryItemResponses(items))
}

func toInventoryItemResponse(s *entity.ScannedItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ItemID:            s.ID,
		ProductID:         s.ProductID,
		LotID:             s.LotID,
		Barcode:           s.Barcode,
		Quantity:          s.Quantity,
		ManufacturingDate: s.ManufacturingDate,
		ExpiryDate:        s.ExpiryDate,
		BatchNumber:       s.BatchNumber,
		ProductName:       s.ProductName,
		ProductCategory:   s.ProductCategory,
		ProductPrice:      s.ProductPrice,
		LotName:           s.LotName,
		SupplierName:      s.SupplierName,
		CreatedBy:         s.CreatedByEmployeeID,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toInventoryItemResponses(items []*entity.ScannedItem) []dto.InventoryItemResponse {
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, s := range items {
		out = append(out, toInventoryItemResponse(s))
	}
	return out
}
