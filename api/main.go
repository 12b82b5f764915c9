package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	_ "github.com/glowdesk/glowdesk/docs"
	"github.com/glowdesk/glowdesk/internal/alerts"
	"github.com/glowdesk/glowdesk/internal/auth"
	"github.com/glowdesk/glowdesk/internal/cache"
	"github.com/glowdesk/glowdesk/internal/config"
	"github.com/glowdesk/glowdesk/internal/db"
	ghttp "github.com/glowdesk/glowdesk/internal/http"
	"github.com/glowdesk/glowdesk/internal/http/handlers"
	rl "github.com/glowdesk/glowdesk/internal/http/rate_limiter"
	"github.com/glowdesk/glowdesk/internal/logger"
	"github.com/glowdesk/glowdesk/internal/repo"
	"github.com/glowdesk/glowdesk/internal/schema"
)

// @title GlowDesk API
// @version 1.0
// @description Salon management backend: appointments, clients, finances and
// @description retail inventory.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("could not load config", "path", configPath, "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)
	handlers.SetLogger(log)

	database, err := db.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Error("could not connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Error("migrations failed", "err", err)
		os.Exit(1)
	}
	if problems, err := schema.Verify(database); err != nil {
		log.Warn("schema verification failed", "err", err)
	} else if len(problems) > 0 {
		log.Warn("schema drift detected; run POST /api/fix-schema", "problems", len(problems))
	}

	// Redis is advisory: the list cache and alert log degrade to no-ops
	// when it is unreachable.
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			log.Warn("redis unreachable, caching disabled", "addr", cfg.Redis.Addr, "err", err)
		} else {
			defer rdb.Close()
			handlers.SetCache(cache.New(rdb))
			alerts.SetRedis(rdb)
		}
	}

	auth.SetSecret(cfg.Auth.JWTSecret)
	handlers.SetServiceKeyHash(cfg.Auth.ServiceKeyHash)
	alerts.Configure(alerts.Config{
		From:         cfg.Alerts.From,
		To:           cfg.Alerts.To,
		SMTPHost:     cfg.Alerts.SMTPHost,
		SMTPPort:     cfg.Alerts.SMTPPort,
		SMTPUser:     cfg.Alerts.SMTPUser,
		SMTPPassword: cfg.Alerts.SMTPPassword,
		AuthDisabled: cfg.Alerts.AuthDisabled,
	})

	handlers.SetDB(database)
	handlers.SetTransactionRepo(repo.NewPostgresTransactionRepository(database))
	handlers.SetAppointmentRepo(repo.NewPostgresAppointmentRepository(database))
	handlers.SetClientRepo(repo.NewPostgresClientRepository(database))
	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetDashboardRepo(repo.NewPostgresDashboardRepository(database))
	handlers.SetSettingsRepo(repo.NewPostgresSettingsRepository(database))

	limiters := rl.New(rate.Limit(50), 100)
	go limiters.StartCleanupLoop()
	go auth.StartRefreshTokenCleaner(30 * time.Minute)
	go alerts.StartDailySummary(24 * time.Hour)

	router := ghttp.NewRouter(ghttp.RouterOptions{
		Logger:        log,
		ExposeMetrics: cfg.Metrics.Enabled,
		RateLimiters:  limiters,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", "addr", cfg.HTTP.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}
}
