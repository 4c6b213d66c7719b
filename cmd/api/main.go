package main

import (
	"fmt"
	"net/http"
	"os"

	"dreinfinity/internal/config"
	"dreinfinity/internal/database"
	"dreinfinity/internal/handlers"
	"dreinfinity/internal/logger"
	"dreinfinity/internal/middleware"
	"dreinfinity/internal/scheduler"
	"dreinfinity/internal/services"
	"dreinfinity/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "dreinfinity/internal/docs" // Import swagger docs
)

// @title           DRE Infinity API
// @version         1.0
// @description     DRE Infinity computes income statements, vertical and horizontal analysis, and unit-economics metrics for small businesses under Brazilian tax regimes.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	companyService := services.NewCompanyService(db)
	auditService := services.NewAuditService(db)
	taxConfigService := services.NewTaxConfigService(db, companyService)
	metricsService := services.NewMetricsService(db, companyService)
	reportService := services.NewReportService(db, companyService, taxConfigService)
	transactionService := services.NewTransactionService(db, companyService, metricsService)
	categoryService := services.NewCategoryService(db, companyService)
	clientService := services.NewClientService(db, companyService)
	goalService := services.NewGoalService(db, companyService, metricsService, reportService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	clientHandler := handlers.NewClientHandler(clientService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	taxConfigHandler := handlers.NewTaxConfigHandler(taxConfigService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	reportHandler := handlers.NewReportHandler(reportService, metricsService)

	// Nightly metrics snapshot refresh
	metricsScheduler, err := scheduler.New(metricsService, appConfig.MetricsRefreshCron)
	if err != nil {
		return fmt.Errorf("failed to create metrics scheduler: %w", err)
	}
	metricsScheduler.Start()
	defer metricsScheduler.Stop()

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

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Company routes
	companies := protected.Group("/companies")
	companies.POST("", companyHandler.CreateCompany)
	companies.GET("", companyHandler.GetCompanies)
	companies.GET("/:company_id", companyHandler.GetCompany)
	companies.PUT("/:company_id", companyHandler.UpdateCompany)
	companies.DELETE("/:company_id", companyHandler.DeleteCompany)

	// Company-scoped resources
	company := companies.Group("/:company_id")

	categories := company.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	clients := company.Group("/clients")
	clients.POST("", clientHandler.CreateClient)
	clients.GET("", clientHandler.GetClients)
	clients.GET("/:id", clientHandler.GetClient)
	clients.PUT("/:id", clientHandler.UpdateClient)
	clients.DELETE("/:id", clientHandler.DeleteClient)

	transactions := company.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	taxConfig := company.Group("/tax-configuration")
	taxConfig.GET("", taxConfigHandler.GetTaxConfig)
	taxConfig.PUT("", taxConfigHandler.UpsertTaxConfig)
	taxConfig.DELETE("", taxConfigHandler.DeleteTaxConfig)

	goals := company.Group("/goals")
	goals.PUT("", goalHandler.UpsertGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/progress", goalHandler.GetGoalProgress)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	reports := company.Group("/reports")
	reports.GET("/statement", reportHandler.GetStatement)
	reports.GET("/historical", reportHandler.GetHistoricalSeries)
	reports.GET("/metrics", reportHandler.GetMetrics)

	log.Infof("Starting DRE Infinity backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
