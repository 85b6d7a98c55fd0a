package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"tradejournal/configs"
	"tradejournal/internal/database"
	delivery "tradejournal/internal/delivery/http"
	"tradejournal/internal/infra"
	"tradejournal/internal/repository"
	"tradejournal/internal/service"
	"tradejournal/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// The schema manager runs before anything else touches the store.
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	setupRepo := repository.NewSetupRepository(db)

	// Ownership gate over the closed set of entity kinds. Screenshots
	// resolve through their parent setup.
	ownership := service.NewOwnershipService(
		projectRepo,
		tradeRepo,
		setupRepo,
		service.OwnerResolverFunc(setupRepo.ScreenshotOwnerOf),
	)

	// Initialize services
	projectService := usecase.NewProjectService(ownership, projectRepo)
	tradeService := usecase.NewTradeService(ownership, tradeRepo)
	setupService := usecase.NewSetupService(ownership, setupRepo)
	adminService := service.NewAdminService(userRepo, tradeRepo, setupRepo)

	// Initialize HTTP delivery
	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:    delivery.NewAuthHandler(userRepo),
		ProjectHandler: delivery.NewProjectHandler(projectService, tradeService),
		TradeHandler:   delivery.NewTradeHandler(tradeService),
		SetupHandler:   delivery.NewSetupHandler(setupService),
		AdminHandler:   delivery.NewAdminHandler(adminService),
	})

	addr := ":" + cfg.Server.Port
	log.Printf("🚀 Trade Journal starting on %s", addr)
	log.Printf("📊 Environment: %s", cfg.Server.Env)

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server exited gracefully")
}
