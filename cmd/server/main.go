package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/shopledger/backend/internal/application/catalog"
	financeapp "github.com/shopledger/backend/internal/application/finance"
	inventoryapp "github.com/shopledger/backend/internal/application/inventory"
	partnerapp "github.com/shopledger/backend/internal/application/partner"
	salesapp "github.com/shopledger/backend/internal/application/sales"
	"github.com/shopledger/backend/internal/infrastructure/auth"
	"github.com/shopledger/backend/internal/infrastructure/config"
	"github.com/shopledger/backend/internal/infrastructure/logger"
	"github.com/shopledger/backend/internal/infrastructure/persistence"
	"github.com/shopledger/backend/internal/infrastructure/scheduler"
	"github.com/shopledger/backend/internal/interfaces/http/handler"
	"github.com/shopledger/backend/internal/interfaces/http/middleware"
	"github.com/shopledger/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting shop ledger backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Application services share one transaction scope so every operation,
	// including its summary recalculation, commits atomically.
	scope := persistence.NewGormTransactionScope(db.DB)
	summaryService := financeapp.NewSummaryService(scope, log)
	productService := catalogapp.NewProductService(scope, log)
	customerService := partnerapp.NewCustomerService(scope, log)
	stockService := inventoryapp.NewStockService(scope, log)
	saleService := salesapp.NewSaleService(scope, summaryService, log)
	installmentService := salesapp.NewInstallmentService(scope, summaryService, log)
	ledgerService := financeapp.NewLedgerService(scope, summaryService)

	authService := auth.NewService(cfg.Auth)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig(cfg)),
		middleware.Timeout(cfg.HTTP.ReadTimeout),
	)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Product:     handler.NewProductHandler(productService),
		Customer:    handler.NewCustomerHandler(customerService),
		Stock:       handler.NewStockHandler(stockService),
		Sale:        handler.NewSaleHandler(saleService),
		Installment: handler.NewInstallmentHandler(installmentService),
		Finance:     handler.NewFinanceHandler(ledgerService, summaryService),
		System:      handler.NewSystemHandler(db, version),
	}
	router.NewRouter(engine).
		Register(router.NewAPIRoutes(handlers, authService)).
		Setup()

	// Reclassify open installments at startup, then on the daily schedule.
	sweep := scheduler.NewSweepScheduler(installmentService, cfg.Scheduler, log)
	if cfg.Scheduler.SweepOnStart {
		startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := installmentService.UpdateAllOverdueStatus(startupCtx); err != nil {
			log.Error("Startup installment sweep failed", zap.Error(err))
		}
		cancel()
	}
	if cfg.Scheduler.Enabled {
		sweep.Start()
		defer sweep.Stop()
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return corsCfg
}
