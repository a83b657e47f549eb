package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermarket-pos/internal/application/auth"
	"github.com/tu-usuario/supermarket-pos/internal/application/checkout"
	"github.com/tu-usuario/supermarket-pos/internal/application/inventory"
	"github.com/tu-usuario/supermarket-pos/internal/application/sales"
	"github.com/tu-usuario/supermarket-pos/internal/application/usecase"
	"github.com/tu-usuario/supermarket-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CheckoutUC  *checkout.UseCase
	InventoryUC *inventory.ReceiveUseCase
	SalesUC     *sales.UseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	LotUC       *usecase.LotUseCase
	EmployeeUC  *usecase.EmployeeUseCase
	RoleUC      *usecase.RoleUseCase
	DashboardUC *usecase.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Público: login y lista de roles para la pantalla de ingreso.
	authHandler := NewAuthHandler(deps.AuthUC)
	roleHandler := NewRoleHandler(deps.RoleUC)
	api.Post("/auth/login", authHandler.Login)
	api.Get("/roles/list", roleHandler.ListNames)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Put("/profile/password", authHandler.ChangePassword)

	// Checkout y ventas: cajeros y gerentes.
	posOnly := RequireRole(entity.RoleCashier, entity.RoleStoreManager)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/checkout", posOnly, checkoutHandler.Checkout)
	salesGroup.Get("/:id", posOnly, salesHandler.GetTransaction)
	salesGroup.Get("/:id/receipt", posOnly, salesHandler.DownloadReceipt)

	// Inventario: recepción para bodega y gerencia; escaneo también para cajas.
	receivingOnly := RequireRole(entity.RoleReceivingClerk, entity.RoleStoreManager)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/scan/:barcode", inventoryHandler.Scan)
	invGroup.Post("/receive", receivingOnly, inventoryHandler.Receive)
	invGroup.Get("/items", receivingOnly, inventoryHandler.ListMine)
	invGroup.Get("/items/all", receivingOnly, inventoryHandler.ListAll)

	// Catálogo: productos, proveedores y lotes.
	catalogHandler := NewCatalogHandler(deps.ProductUC, deps.SupplierUC, deps.LotUC)
	products := protected.Group("/products")
	products.Post("/", receivingOnly, catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)

	suppliers := protected.Group("/suppliers", receivingOnly)
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)

	lots := protected.Group("/lots", receivingOnly)
	lots.Post("/", catalogHandler.CreateLot)
	lots.Get("/", catalogHandler.ListLots)

	// Administración: solo Store Manager.
	managerOnly := RequireRole(entity.RoleStoreManager)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := protected.Group("/employees", managerOnly)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	roles := protected.Group("/roles", managerOnly)
	roles.Get("/", roleHandler.List)
	roles.Post("/", roleHandler.Create)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)

	// Dashboard: solo Store Manager.
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard", managerOnly)
	dashboard.Get("/daily-sales", dashboardHandler.DailySales)
	dashboard.Get("/top-products", dashboardHandler.TopProducts)
	dashboard.Get("/low-stock", dashboardHandler.LowStock)
	dashboard.Get("/expiry-alerts", dashboardHandler.ExpiryAlerts)
}
