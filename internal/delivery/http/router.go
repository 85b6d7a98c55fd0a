package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "tradejournal/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler    *AuthHandler
	ProjectHandler *ProjectHandler
	TradeHandler   *TradeHandler
	SetupHandler   *SetupHandler
	AdminHandler   *AdminHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "tradejournal-api",
		})
	})

	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
	}

	// Journal routes (protected with AuthMiddleware)
	protected := api.Group("", custommiddleware.AuthMiddleware)
	{
		protected.GET("/projects", config.ProjectHandler.List)
		protected.POST("/projects", config.ProjectHandler.Create)
		protected.GET("/projects/:id", config.ProjectHandler.Get)
		protected.PUT("/projects/:id", config.ProjectHandler.Update)
		protected.DELETE("/projects/:id", config.ProjectHandler.Delete)
		protected.GET("/projects/:id/dashboard", config.ProjectHandler.Dashboard)

		protected.POST("/projects/:id/trades", config.TradeHandler.Create)
		protected.GET("/projects/:id/trades", config.TradeHandler.List)
		protected.GET("/trades", config.TradeHandler.ListAll)
		protected.GET("/trades/:id", config.TradeHandler.Get)
		protected.PUT("/trades/:id", config.TradeHandler.Update)
		protected.DELETE("/trades/:id", config.TradeHandler.Delete)
		protected.GET("/trades/:id/screenshot", config.TradeHandler.Screenshot)

		protected.POST("/setups", config.SetupHandler.Create)
		protected.GET("/setups", config.SetupHandler.List)
		protected.GET("/setups/:id", config.SetupHandler.Get)
		protected.PUT("/setups/:id", config.SetupHandler.Update)
		protected.DELETE("/setups/:id", config.SetupHandler.Delete)
		protected.GET("/setups/screenshots/:id", config.SetupHandler.Screenshot)
	}

	// Admin routes (protected with Auth + Admin middleware)
	admin := api.Group("/admin", custommiddleware.AuthMiddleware, custommiddleware.AdminMiddleware)
	{
		admin.GET("/users", config.AdminHandler.ListUsers)
		admin.POST("/users/:id/toggle-role", config.AdminHandler.ToggleRole)
		admin.DELETE("/users/:id", config.AdminHandler.DeleteUser)
		admin.GET("/users/:id/activity", config.AdminHandler.UserActivity)
	}
}
