package main

import (
	"fmt"
	"net/http"
	"os"

	"meubolso/internal/auth"
	"meubolso/internal/config"
	"meubolso/internal/database"
	"meubolso/internal/handlers"
	"meubolso/internal/logger"
	"meubolso/internal/middleware"
	"meubolso/internal/services"
	"meubolso/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "meubolso/internal/docs" // Import swagger docs
)

// @title           Meu Bolso API
// @version         1.0
// @description     Meu Bolso is a personal finance tracker: recurring bills, installment purchases, daily expenses, and monthly balance snapshots.

// @host      localhost:8080
// @BasePath  /

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	hasher := auth.NewBcryptHasher()
	userService := services.NewUserService(db, hasher)
	billService := services.NewFixedBillService(db)
	installmentService := services.NewInstallmentService(db)
	entryService := services.NewDailyEntryService(db)
	ledgerService := services.NewLedgerService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	billHandler := handlers.NewFixedBillHandler(billService)
	installmentHandler := handlers.NewInstallmentHandler(installmentService)
	entryHandler := handlers.NewDailyEntryHandler(entryService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Account routes
	authRoutes := router.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/info", authHandler.GetInfo)
	authRoutes.PUT("/alterar", authHandler.UpdateUser)
	authRoutes.DELETE("/deletar/:user_id", authHandler.DeleteUser)

	// Dashboard routes
	dashboard := router.Group("/dashboard")
	dashboard.GET("/salariomensal", ledgerHandler.GetSalary)
	dashboard.GET("/somacontasfixas", ledgerHandler.GetFixedBillsSum)

	// Fixed bill routes
	bills := router.Group("/contas-fixas")
	bills.POST("/create", billHandler.Create)
	bills.GET("/minhascontas", billHandler.List)
	bills.PUT("/alterar/:id", billHandler.Update)
	bills.DELETE("/deletar/:id", billHandler.Delete)

	// Installment routes
	installments := router.Group("/parcelamentos")
	installments.POST("/adicionar", installmentHandler.Create)
	installments.GET("/meusparcelamentos", installmentHandler.List)
	installments.PUT("/alterar/:id", installmentHandler.Update)
	installments.DELETE("/deletar/:id", installmentHandler.Delete)

	// Daily entry routes, including the monthly spending statistics
	entries := router.Group("/registro")
	entries.POST("/adicionar", entryHandler.Create)
	entries.GET("/mostrar/:user_id", entryHandler.List)
	entries.PUT("/alterar/:id", entryHandler.Update)
	entries.DELETE("/deletar/:id", entryHandler.Delete)
	entries.GET("/total-gasto-mes/:user_id/:mes/:ano", ledgerHandler.GetMonthTotal)
	entries.GET("/total-gasto-categoria/:user_id/:mes/:ano", ledgerHandler.GetCategoryTotals)
	entries.GET("/percentual-gasto-categoria/:user_id/:mes/:ano", ledgerHandler.GetCategoryPercentages)

	// Monthly snapshot routes
	summaries := router.Group("/fatura")
	summaries.POST("/fechar", ledgerHandler.CloseMonth)
	summaries.GET("/consultar/:user_id/:ano/:mes", ledgerHandler.GetSummary)
	summaries.GET("/historico/:user_id", ledgerHandler.GetHistory)

	log.Infof("Starting Meu Bolso backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
