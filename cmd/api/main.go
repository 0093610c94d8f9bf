package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"finsight/internal/analytics"
	"finsight/internal/catalog"
	"finsight/internal/config"
	"finsight/internal/database"
	"finsight/internal/handlers"
	"finsight/internal/logger"
	"finsight/internal/marketdata"
	"finsight/internal/middleware"
	"finsight/internal/services"
	"finsight/internal/validator"
)

// @title           FinSight API
// @version         1.0
// @description     FinSight scores financial health, analyzes portfolio risk, plans savings goals, and recommends products for a user's financial profile.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)

	provider := marketdata.NewFallbackProvider(marketdata.NewYahooProvider(
		&http.Client{Timeout: appConfig.MarketDataTimeout},
		appConfig.MarketDataBaseURL,
	))
	analysisService := services.NewAnalysisService(
		profileService,
		provider,
		catalog.Default(),
		assumptionsFromConfig(appConfig),
		appConfig.MarketLookbackDays,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

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

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Profile routes
	protected.POST("/profile", profileHandler.CreateProfile)
	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)
	protected.DELETE("/profile", profileHandler.DeleteProfile)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", profileHandler.CreateGoal)
	goals.GET("", profileHandler.ListGoals)
	goals.DELETE("/:id", profileHandler.DeleteGoal)
	goals.POST("/:id/progress", analysisHandler.GoalProgress)

	// Analysis routes
	analysis := protected.Group("/analysis")
	analysis.GET("/health", analysisHandler.HealthScore)
	analysis.POST("/portfolio", analysisHandler.AnalyzePortfolio)
	analysis.GET("/goals", analysisHandler.PlanGoals)
	analysis.GET("/goals/optimize", analysisHandler.OptimizeGoals)
	analysis.POST("/recommendations", analysisHandler.Recommendations)

	log.Infof("Starting FinSight backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

// assumptionsFromConfig starts from the analytics defaults and applies
// any rate overrides set in the environment.
func assumptionsFromConfig(cfg *config.Config) analytics.Assumptions {
	a := analytics.DefaultAssumptions()
	if cfg.InflationRate > 0 {
		a.InflationRate = cfg.InflationRate
	}
	if cfg.MarketReturn > 0 {
		a.MarketReturn = cfg.MarketReturn
	}
	if cfg.RiskFreeRate > 0 {
		a.RiskFreeRate = cfg.RiskFreeRate
	}
	return a
}
