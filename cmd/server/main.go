package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	candidateapp "github.com/bewertung/backend/internal/application/candidate"
	exportapp "github.com/bewertung/backend/internal/application/export"
	"github.com/bewertung/backend/internal/infrastructure/config"
	"github.com/bewertung/backend/internal/infrastructure/logger"
	"github.com/bewertung/backend/internal/infrastructure/persistence"
	"github.com/bewertung/backend/internal/infrastructure/printing"
	"github.com/bewertung/backend/internal/infrastructure/report"
	"github.com/bewertung/backend/internal/interfaces/http/handler"
	"github.com/bewertung/backend/internal/interfaces/http/middleware"
	"github.com/bewertung/backend/internal/interfaces/http/router"
)

func main() {
	// A .env file is a convenience for local development; its absence
	// is not an error.
	_ = godotenv.Load()

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

	log.Info("Starting Bewertung Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	// Repositories and services
	candidateRepo := persistence.NewGormCandidateRepository(db.DB)
	candidateService := candidateapp.NewService(candidateRepo, log)

	htmlRenderer, err := report.NewRenderer()
	if err != nil {
		log.Fatal("Failed to parse report template", zap.Error(err))
	}

	pdfRenderer := newPDFRenderer(cfg, log)
	defer func() {
		if err := pdfRenderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	exportService := exportapp.NewService(
		candidateRepo, htmlRenderer, pdfRenderer, cfg.PDF.RenderTimeout, log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(metrics.Middleware())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		MaxAge:       12 * time.Hour,
	}))

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NewRouter(engine).
		Register(handler.NewCandidateHandler(candidateService)).
		Register(handler.NewExportHandler(exportService, metrics)).
		Register(handler.NewSystemHandler(db)).
		Setup()

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

// newPDFRenderer builds the configured PDF engine. When no browser can
// be initialized the server still starts; exports then report that
// rendering is unavailable.
func newPDFRenderer(cfg *config.Config, log *zap.Logger) printing.PDFRenderer {
	var (
		renderer printing.PDFRenderer
		err      error
	)

	switch cfg.PDF.Engine {
	case "cdp":
		renderer, err = printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.PDF.RenderTimeout,
			NoSandbox:      cfg.PDF.NoSandbox,
			Logger:         log,
		})
	default:
		renderer, err = printing.NewChromiumRenderer(&printing.ChromiumConfig{
			BinaryPath:     cfg.PDF.BinaryPath,
			DefaultTimeout: cfg.PDF.RenderTimeout,
			TempDir:        cfg.PDF.TempDir,
			NoSandbox:      cfg.PDF.NoSandbox,
			Logger:         log,
		})
	}
	if err != nil {
		log.Warn("PDF engine unavailable, exports will fail until it is installed",
			zap.String("engine", cfg.PDF.Engine),
			zap.Error(err))
		return &printing.UnavailableRenderer{Reason: err}
	}

	log.Info("PDF engine initialized", zap.String("engine", cfg.PDF.Engine))
	return renderer
}
