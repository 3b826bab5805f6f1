package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pocketledger/internal/config"
	"pocketledger/internal/database"
	"pocketledger/internal/events"
	"pocketledger/internal/handlers"
	"pocketledger/internal/ledger"
	"pocketledger/internal/logger"
	"pocketledger/internal/middleware"
	"pocketledger/internal/repository"
	"pocketledger/internal/services"
	"pocketledger/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pocketledger/internal/docs" // Import swagger docs
)

// @title           Pocketledger API
// @version         1.0
// @description     Pocketledger tracks money pools, categories and transactions and keeps every balance consistent with its transactions.

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

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	publisher, err := newPublisher(appConfig)
	if err != nil {
		return fmt.Errorf("failed to connect event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warnw("failed to close event publisher", "error", err)
		}
	}()

	// Repositories and the ledger
	db := dbManager.DB()
	users := repository.NewUsers(db)
	profiles := repository.NewProfiles(db)
	categories := repository.NewCategories(db)
	transactions := repository.NewTransactions(db)
	l := ledger.New(db)
	ledgerEvents := events.Fanout{publisher, services.NewLedgerAuditor(db)}

	// Services
	userService := services.NewUserService(users, 0)
	profileService := services.NewProfileService(profiles, l, ledgerEvents)
	categoryService := services.NewCategoryService(categories, l, ledgerEvents)
	transactionService := services.NewTransactionService(transactions, l, ledgerEvents)
	summaryService := services.NewSummaryService(profiles, categories, transactions, l)
	auditService := services.NewAuditService(db)

	sessions := middleware.NewSessionManager(appConfig.JWTSecret, appConfig.JWTExpirationDur, appConfig.SessionCookieSecure)

	// Handlers
	h := &handlers.Handlers{
		Auth:         handlers.NewAuthHandler(userService, auditService, sessions),
		Profiles:     handlers.NewProfileHandler(profileService, auditService),
		Categories:   handlers.NewCategoryHandler(categoryService, auditService),
		Transactions: handlers.NewTransactionHandler(transactionService, auditService),
		Summary:      handlers.NewSummaryHandler(summaryService),
	}

	validator.Register()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.Register(router.Group("/api/v1"), sessions.Authenticate())

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Pocketledger server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// newPublisher connects to the broker when AMQP_URL is set; otherwise
// ledger events are discarded.
func newPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Get().Info("AMQP_URL not set, ledger events are disabled")
		return events.Nop{}, nil
	}
	return events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
}
