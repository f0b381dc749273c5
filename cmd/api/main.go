package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-shop-pos/internal/export"
	"go-shop-pos/internal/handler"
	"go-shop-pos/internal/middleware"
	"go-shop-pos/internal/model"
	"go-shop-pos/internal/repository"
	"go-shop-pos/internal/service"
	"go-shop-pos/internal/ws"
	"go-shop-pos/pkg/config"
	"go-shop-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Setup Database (schema is applied idempotently)
	db := database.Connect(cfg.DatabaseURL, cfg.SQLitePath)
	if err := db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.User{},
		&model.Sale{},
		&model.Purchase{},
		&model.JournalEntry{},
	); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db, cfg.LowStockThreshold)
	categoryRepo := repository.NewCategoryRepo(db)
	userRepo := repository.NewUserRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	journalRepo := repository.NewJournalRepo(db)

	catalogService := service.NewCatalogService(db, productRepo, categoryRepo, cfg.ProductDeletePolicy, wsHub)
	ledgerService := service.NewLedgerService(db, productRepo, saleRepo, purchaseRepo, journalRepo, wsHub)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(db, userRepo, journalRepo)

	renderer := export.NewRenderer(cfg.ShopName, cfg.ExportDir)
	reportService := service.NewReportService(renderer, ledgerService, catalogService, journalRepo, saleRepo)

	// 5. Bootstrap default administrator. The generated password is shown
	// exactly once; change it after the first login.
	if password, created, err := userService.BootstrapAdmin(); err != nil {
		log.Fatal("Bootstrap failed: ", err)
	} else if created {
		log.Printf("Default administrator created: %s / %s (change this password now)",
			service.BootstrapAdminName, password)
	}

	catalogHandler := handler.NewCatalogHandler(catalogService, cfg)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	authHandler := handler.NewAuthHandler(authService, userService, cfg)
	userHandler := handler.NewUserHandler(userService, cfg)
	reportHandler := handler.NewReportHandler(reportService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.ShopName + " POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Catalog
	protected.Get("/products", middleware.Authorize(model.OpProductRead), catalogHandler.GetProducts)
	protected.Get("/products/low-stock", middleware.Authorize(model.OpProductRead), catalogHandler.GetLowStock)
	protected.Get("/products/:id", middleware.Authorize(model.OpProductRead), catalogHandler.GetProduct)
	protected.Post("/products", middleware.Authorize(model.OpProductWrite), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.Authorize(model.OpProductWrite), catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.Authorize(model.OpProductWrite), catalogHandler.DeleteProduct)

	protected.Get("/categories", middleware.Authorize(model.OpProductRead), catalogHandler.GetCategories)
	protected.Get("/categories/:id", middleware.Authorize(model.OpProductRead), catalogHandler.GetCategory)
	protected.Post("/categories", middleware.Authorize(model.OpCategoryWrite), catalogHandler.CreateCategory)
	protected.Put("/categories/:id", middleware.Authorize(model.OpCategoryWrite), catalogHandler.RenameCategory)
	protected.Delete("/categories/:id", middleware.Authorize(model.OpCategoryWrite), catalogHandler.DeleteCategory)

	// Stock ledger
	protected.Post("/sales", middleware.Authorize(model.OpSaleCreate), ledgerHandler.CreateSale)
	protected.Post("/sales/cart", middleware.Authorize(model.OpSaleCreate), ledgerHandler.CreateCartSale)
	protected.Get("/sales", middleware.Authorize(model.OpSaleRead), ledgerHandler.GetSales)
	protected.Get("/sales/:id", middleware.Authorize(model.OpSaleRead), ledgerHandler.GetSale)
	protected.Post("/purchases", middleware.Authorize(model.OpPurchaseWrite), ledgerHandler.CreatePurchase)
	protected.Get("/purchases", middleware.Authorize(model.OpPurchaseRead), ledgerHandler.GetPurchases)
	protected.Get("/stats", middleware.Authorize(model.OpProductRead), ledgerHandler.GetStats)

	// Users
	protected.Get("/users", middleware.Authorize(model.OpUserManage), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.Authorize(model.OpUserManage), userHandler.GetUser)
	protected.Post("/users", middleware.Authorize(model.OpUserManage), userHandler.CreateUser)
	protected.Put("/users/:id/password", middleware.Authorize(model.OpUserManage), userHandler.SetPassword)
	protected.Delete("/users/:id", middleware.Authorize(model.OpUserManage), userHandler.DeleteUser)

	// Reports
	protected.Post("/reports/inventory", middleware.Authorize(model.OpReportRun), reportHandler.Inventory)
	protected.Post("/reports/sales", middleware.Authorize(model.OpReportRun), reportHandler.DailySales)
	protected.Post("/reports/low-stock", middleware.Authorize(model.OpReportRun), reportHandler.LowStock)
	protected.Post("/reports/journal", middleware.Authorize(model.OpJournalRead), reportHandler.Journal)
	protected.Post("/receipts/sale/:id", middleware.Authorize(model.OpReceiptRun), reportHandler.SaleReceipt)
	protected.Post("/receipts/cart", middleware.Authorize(model.OpReceiptRun), reportHandler.CartReceipt)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
