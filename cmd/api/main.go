package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/supermarket-pos/internal/application/auth"
	"github.com/tu-usuario/supermarket-pos/internal/application/checkout"
	"github.com/tu-usuario/supermarket-pos/internal/application/inventory"
	"github.com/tu-usuario/supermarket-pos/internal/application/sales"
	"github.com/tu-usuario/supermarket-pos/internal/application/usecase"
	infrapdf "github.com/tu-usuario/supermarket-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/supermarket-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/supermarket-pos/internal/interfaces/http"
	"github.com/tu-usuario/supermarket-pos/pkg/config"
	"github.com/tu-usuario/supermarket-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios fuera de transacción (lecturas y CRUD simple).
	itemRepo := postgres.NewInventoryItemRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)

	// El transactor de checkout y la recepción corren dentro de TxRunner,
	// que les entrega repositorios ligados a la transacción.
	txRunner := postgres.NewTxRunner(pool)
	checkoutUC := checkout.NewUseCase(txRunner, log)
	inventoryUC := inventory.NewReceiveUseCase(txRunner, itemRepo, productRepo, lotRepo, log)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	salesUC := sales.NewUseCase(salesRepo, employeeRepo, receiptGenerator)

	authUC := auth.NewUseCase(employeeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	lotUC := usecase.NewLotUseCase(lotRepo, supplierRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, roleRepo)
	roleUC := usecase.NewRoleUseCase(roleRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Supermarket POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CheckoutUC:  checkoutUC,
		InventoryUC: inventoryUC,
		SalesUC:     salesUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		LotUC:       lotUC,
		EmployeeUC:  employeeUC,
		RoleUC:      roleUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
