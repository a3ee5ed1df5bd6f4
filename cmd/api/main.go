package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/remuneraciones-api/docs" // Swagger docs
	"github.com/sjperalta/remuneraciones-api/internal/config"
	"github.com/sjperalta/remuneraciones-api/internal/database"
	"github.com/sjperalta/remuneraciones-api/internal/handlers"
	"github.com/sjperalta/remuneraciones-api/internal/jobs"
	"github.com/sjperalta/remuneraciones-api/internal/metrics"
	"github.com/sjperalta/remuneraciones-api/internal/middleware"
	"github.com/sjperalta/remuneraciones-api/internal/repository"
	"github.com/sjperalta/remuneraciones-api/internal/services"
	"github.com/sjperalta/remuneraciones-api/internal/statemachine"
	"github.com/sjperalta/remuneraciones-api/internal/storage"
	"github.com/sjperalta/remuneraciones-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Remuneraciones API
// @version 1.0
// @description Liquidaciones de sueldo, libro de remuneraciones y exportación LRE para la Dirección del Trabajo

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Initialize Sentry (GlitchTip) when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if cfg.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Error("Failed to migrate database", "error", err)
			os.Exit(1)
		}
		logger.Info("Database schema migrated")
	}

	// Regulatory parameters reload on file change when a path is configured
	regulatory, err := config.NewRegulatoryHolder(cfg.RegulatoryConfigPath)
	if err != nil {
		logger.Error("Failed to load regulatory parameters", "error", err, "path", cfg.RegulatoryConfigPath)
		os.Exit(1)
	}
	logger.Info("Loaded regulatory parameters", "versions", len(regulatory.Get().Parameters))

	m := metrics.Payroll()

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized export archive", "path", cfg.StoragePath)

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount, m)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, store, regulatory, cfg, m)

	scheduleJobs(worker, svcs, cfg)

	h := handlers.NewHandlers(svcs)
	router := setupRouter(h, cfg, m)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Drains queued audit writes before exit
	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config, m *metrics.PayrollMetrics) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	exports := middleware.NewExportLimiter(cfg.ExportRatePerSecond, cfg.ExportBurst, m)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)
				admin.DELETE("/users/:user_id", h.User.Delete)

				admin.GET("/jobs/status", h.Job.Status)
				admin.POST("/jobs/reconcile", h.Job.Reconcile)
			}

			protected.PATCH("/users/me/change_password", h.User.ChangePassword)
			protected.GET("/regulatory/parameters", h.Regulatory.Parameters)
			protected.GET("/audits", h.Audit.Index)

			// Company-scoped routes
			company := protected.Group("/companies/:company_id")
			company.Use(middleware.RequireCompanyAccess())
			{
				company.GET("", h.Directory.ShowCompany)
				company.PATCH("", middleware.RequireAdmin(), h.Directory.UpdateCompany)
				company.GET("/employees", h.Directory.Employees)

				company.GET("/liquidations", h.Liquidation.Index)
				company.POST("/liquidations/generate", h.Liquidation.GeneratePeriod)

				h.Book.Register(company.Group("/books"), exports.Middleware())
			}

			// Liquidation ownership is checked against the stored company
			liquidations := protected.Group("/liquidations")
			{
				liquidations.POST("", h.Liquidation.Generate)
				liquidations.GET("/:liquidation_id", h.Liquidation.Show)
				liquidations.PUT("/:liquidation_id", h.Liquidation.Update)
				liquidations.GET("/:liquidation_id/pdf", h.Liquidation.PDF)
				liquidations.GET("/:liquidation_id/html", h.Liquidation.HTML)

				liquidations.POST("/:liquidation_id/submit", h.Liquidation.Transition(statemachine.EventSubmit))
				liquidations.POST("/:liquidation_id/return", h.Liquidation.Transition(statemachine.EventReturn))
				liquidations.POST("/:liquidation_id/approve", h.Liquidation.Transition(statemachine.EventApprove))
				liquidations.POST("/:liquidation_id/reopen", h.Liquidation.Transition(statemachine.EventReopen))
				liquidations.POST("/:liquidation_id/pay", h.Liquidation.Transition(statemachine.EventPay))
				liquidations.POST("/:liquidation_id/cancel", h.Liquidation.Transition(statemachine.EventCancel))
				liquidations.POST("/:liquidation_id/restore", h.Liquidation.Transition(statemachine.EventRestore))
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	if cfg.ReconcileEveryHours <= 0 {
		logger.Info("Reconciliation scan disabled")
		return
	}

	// Flags stored totals that drifted from their components
	worker.ScheduleEvery("reconcile", time.Duration(cfg.ReconcileEveryHours)*time.Hour, svcs.Reconciliation.Job())

	logger.Info("Scheduled recurring jobs", "reconcile_every_hours", cfg.ReconcileEveryHours)
}
