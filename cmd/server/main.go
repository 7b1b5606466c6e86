package main

import (
	"time"

	"pharmapos/internal/auth"
	"pharmapos/internal/config"
	"pharmapos/internal/database"
	"pharmapos/internal/handlers"
	"pharmapos/internal/middleware"
	"pharmapos/internal/models"
	"pharmapos/internal/pos"
	"pharmapos/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.Init("pharmapos", gin.Mode() != gin.ReleaseMode)
	logger.SetLevel(cfg.LogLevel)

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to open database")
	}
	if err := database.Seed(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("failed to seed database")
	}
	logger.Logger.Info().Str("dsn", cfg.DatabaseDSN).Msg("database ready")

	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	engine := pos.NewEngine(db)
	h := handlers.New(db, engine, tokens, cfg)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", h.Login)

	// Only opens if we explicitly allow it in .env
	if cfg.AllowRegistration {
		r.POST("/register", h.Register)
		logger.Logger.Warn().Msg("registration route is OPEN; disable this in production")
	}

	api := r.Group("/api")
	api.Use(middleware.Authenticate(tokens))
	{
		// Inventory
		api.GET("/items", h.GetItems)
		api.GET("/items/:id", h.GetItem)
		api.POST("/items", h.AddItem)
		api.PUT("/items/:id", h.UpdateItem)
		api.DELETE("/items/:id", h.DeleteItem)

		// Point of sale
		api.GET("/cart", h.GetCart)
		api.POST("/cart/items", h.AddToCart)
		api.PATCH("/cart/items/:id", h.UpdateCartLine)
		api.DELETE("/cart/items/:id", h.RemoveCartLine)
		api.DELETE("/cart", h.ClearCart)
		api.POST("/checkout", h.Checkout)

		// Reporting
		api.GET("/reports/dashboard", h.GetDashboard)
		api.GET("/reports/sales", h.GetSalesReport)
		api.GET("/reports/valuation", h.GetStockValuation)
		api.GET("/sales", h.GetSales)
		api.GET("/sales/:id", h.GetSale)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", h.GetUsers)
			admin.POST("/users", h.AddUser)
			admin.PUT("/users/:id", h.UpdateUser)
			admin.DELETE("/users/:id", h.DeleteUser)
		}
	}

	logger.Logger.Info().Str("addr", cfg.Server.Addr).Msg("server starting")
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Logger.Fatal().Err(err).Msg("server failed to start")
	}
}
