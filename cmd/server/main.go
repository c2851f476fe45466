package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/stockpos/backend/internal/application/catalog"
	inventoryapp "github.com/stockpos/backend/internal/application/inventory"
	partnerapp "github.com/stockpos/backend/internal/application/partner"
	reportapp "github.com/stockpos/backend/internal/application/report"
	tradeapp "github.com/stockpos/backend/internal/application/trade"
	"github.com/stockpos/backend/internal/infrastructure/config"
	"github.com/stockpos/backend/internal/infrastructure/events"
	"github.com/stockpos/backend/internal/infrastructure/logger"
	"github.com/stockpos/backend/internal/infrastructure/persistence"
	"github.com/stockpos/backend/internal/interfaces/http/handler"
	"github.com/stockpos/backend/internal/interfaces/http/middleware"
	"github.com/stockpos/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			StockPOS Backend API
//	@version		1.0
//	@description	Inventory and point-of-sale backend: product catalog, append-only stock ledger, invoice lifecycle and sales rollups.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting StockPOS backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("driver", cfg.Database.Driver),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database ready")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	_ = persistence.NewGormStockMovementRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)

	// Transaction scopes
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	tradeScope := persistence.NewGormTradeTransactionScope(db.DB)

	eventPublisher := events.NewLogPublisher(log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, eventPublisher)
	inventoryService := inventoryapp.NewInventoryService(inventoryScope)
	invoiceService := tradeapp.NewInvoiceService(tradeScope, customerRepo, eventPublisher, tradeapp.InvoicePrefixes{
		Sale:     cfg.Invoice.SalePrefix,
		Purchase: cfg.Invoice.PurchasePrefix,
		Refund:   cfg.Invoice.RefundPrefix,
	})
	customerService := partnerapp.NewCustomerService(customerRepo)
	reportService := reportapp.NewReportService(invoiceRepo)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
	}

	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewProductHandler(productService))
	r.Register(handler.NewInventoryHandler(inventoryService))
	r.Register(handler.NewInvoiceHandler(invoiceService))
	r.Register(handler.NewCustomerHandler(customerService))
	r.Register(handler.NewReportHandler(reportService))
	r.Register(systemHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
