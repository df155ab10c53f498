// Command server runs the feed backend: the legacy content/feed endpoints,
// health and metrics, and the daily stats rollover job.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/frlmedia/seofeed/docs"
	"github.com/frlmedia/seofeed/internal/config"
	httpapi "github.com/frlmedia/seofeed/internal/http"
	"github.com/frlmedia/seofeed/internal/observability"
	"github.com/frlmedia/seofeed/internal/repo"
	"github.com/frlmedia/seofeed/internal/stats"
	"github.com/frlmedia/seofeed/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// @title        SEO Feed API
// @version      1.0
// @description  Legacy content and feed delivery endpoints for tenant domains and their WordPress plugins.
// @BasePath     /feed
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown failed")
		}
	}()

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database open failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}
	if cfg.OTEL.Enabled {
		if err := repo.EnableTracing(db); err != nil {
			log.Warn().Err(err).Msg("gorm tracing setup failed")
		}
	}

	counters, err := stats.New(cfg.StatsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.StatsPath).Msg("stats file setup failed")
	}

	// Roll the counter file over at midnight so quiet days never carry a
	// stale date.
	sched := cron.New()
	if _, err := sched.AddFunc("0 0 * * *", counters.Rollover); err != nil {
		log.Fatal().Err(err).Msg("cron setup failed")
	}
	sched.Start()
	defer sched.Stop()

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, counters, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("version", version).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openDB opens the configured database. SQLite serves single-box installs
// and tests; postgres is the production path.
func openDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "postgres" {
		return repo.OpenPostgres(cfg.DBDSN)
	}
	return repo.OpenSQLite(cfg.DBPath)
}
