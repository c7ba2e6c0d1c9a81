package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-sales-api/internal/handler"
	"go-sales-api/internal/model"
	"go-sales-api/internal/repository"
	"go-sales-api/internal/service"
	"go-sales-api/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

const apiVersion = "1.0.0"

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.SalesTransaction{}); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}

	// 3. Dependency Injection (Wiring Layers)
	salesRepo := repository.NewSalesRepo(db)
	salesService := service.NewSalesService(salesRepo)
	salesHandler := handler.NewSalesHandler(salesService)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sales Management API v" + apiVersion,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: frontendOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// 5. Routes
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Sales Management API",
			"version": apiVersion,
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	sales := app.Group("/api/sales")
	sales.Post("/search", salesHandler.SearchSales)
	sales.Get("/filter-options", salesHandler.GetFilterOptions)

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8000"
		}
		if err := app.Listen(":" + port); err != nil {
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

func frontendOrigins() string {
	if origins := os.Getenv("FRONTEND_ORIGINS"); origins != "" {
		return origins
	}
	return "http://localhost:3000, http://127.0.0.1:3000"
}
