package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	auditapp "github.com/towerledger/backend/internal/application/audit"
	identityapp "github.com/towerledger/backend/internal/application/identity"
	ledgerapp "github.com/towerledger/backend/internal/application/ledger"
	propertyapp "github.com/towerledger/backend/internal/application/property"
	"github.com/towerledger/backend/internal/infrastructure/auth"
	"github.com/towerledger/backend/internal/infrastructure/config"
	"github.com/towerledger/backend/internal/infrastructure/logger"
	"github.com/towerledger/backend/internal/infrastructure/persistence"
	"github.com/towerledger/backend/internal/infrastructure/printing"
	"github.com/towerledger/backend/internal/infrastructure/storage"
	"github.com/towerledger/backend/internal/interfaces/http/handler"
	"github.com/towerledger/backend/internal/interfaces/http/middleware"
	"github.com/towerledger/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting TowerLedger Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	towerRepo := persistence.NewGormTowerRepository(db.DB)
	flatRepo := persistence.NewGormFlatRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	userLogRepo := persistence.NewGormUserLogRepository(db.DB)
	estimatesRepo := persistence.NewGormEstimatedExpensesRepository(db.DB)
	settlementRepo := persistence.NewGormSettlementRepository(db.DB)
	monthlyRepo := persistence.NewGormMonthlySettlementRepository(db.DB)
	openingRepo := persistence.NewGormOpeningBalanceRepository(db.DB)

	// Attachment storage. Without credentials (local development) attachments
	// are held in memory and lost on restart.
	var mediaStorage ledgerapp.MediaStorage
	if cfg.Storage.AccessKeyID != "" {
		s3Storage, err := storage.NewS3MediaStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiry(cfg.Storage.PresignExpiry),
		)
		if err != nil {
			log.Fatal("Failed to initialize attachment storage", zap.Error(err))
		}
		mediaStorage = s3Storage
		log.Info("Attachment storage initialized",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	} else {
		mediaStorage = storage.NewStubMediaStorage()
		log.Warn("No storage credentials configured, attachments are held in memory only")
	}

	// PDF renderer
	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		chromeRenderer, err := printing.NewChromedpRenderer(cfg.Printing, printing.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() {
			_ = chromeRenderer.Close()
		}()
		renderer = chromeRenderer
		log.Info("PDF renderer initialized", zap.Duration("timeout", cfg.Printing.Timeout))
	} else {
		renderer = printing.DisabledRenderer{}
		log.Info("PDF printing disabled")
	}

	// Audit recorder writes entries in the background; Wait drains pending
	// writes during shutdown.
	recorder := auditapp.NewRecorder(userLogRepo, log)
	defer recorder.Wait()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, flatRepo, towerRepo, jwtService)
	userService := identityapp.NewUserService(userRepo)
	towerService := propertyapp.NewTowerService(towerRepo)
	flatService := propertyapp.NewFlatService(flatRepo, towerRepo)
	estimatesService := ledgerapp.NewEstimatedExpensesService(estimatesRepo, mediaStorage, log)
	settlementService := ledgerapp.NewSettlementService(settlementRepo, estimatesRepo, flatRepo)
	monthlyService := ledgerapp.NewMonthlySettlementService(monthlyRepo, flatRepo)
	openingService := ledgerapp.NewOpeningBalanceService(openingRepo)
	dashboardService := ledgerapp.NewDashboardService(towerRepo, flatRepo, userRepo, settlementRepo)

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, recorder)
	towerHandler := handler.NewTowerHandler(towerService)
	flatHandler := handler.NewFlatHandler(flatService)
	userHandler := handler.NewUserHandler(userService)
	userLogHandler := handler.NewUserLogHandler(recorder)
	estimatesHandler := handler.NewEstimatedExpensesHandler(estimatesService, renderer)
	settlementHandler := handler.NewSettlementHandler(settlementService, renderer)
	monthlyHandler := handler.NewMonthlySettlementHandler(monthlyService, renderer)
	openingHandler := handler.NewOpeningBalanceHandler(openingService, renderer)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(middleware.CORSFromConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthWithConfig(jwtConfig))

	// Every authenticated mutation lands in the activity log
	engine.Use(middleware.AuditMutations(recorder))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authHandler).
		Register(towerHandler).
		Register(flatHandler).
		Register(userHandler).
		Register(userLogHandler).
		Register(estimatesHandler).
		Register(settlementHandler).
		Register(monthlyHandler).
		Register(openingHandler).
		Register(dashboardHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
