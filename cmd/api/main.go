// Wellness Escape | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/wellnessescape/backend/internal/admin"
	"github.com/wellnessescape/backend/internal/auth"
	"github.com/wellnessescape/backend/internal/billing"
	"github.com/wellnessescape/backend/internal/community"
	"github.com/wellnessescape/backend/internal/config"
	"github.com/wellnessescape/backend/internal/core"
	"github.com/wellnessescape/backend/internal/health"
	"github.com/wellnessescape/backend/internal/journal"
	"github.com/wellnessescape/backend/internal/middleware"
	"github.com/wellnessescape/backend/internal/program"
	"github.com/wellnessescape/backend/internal/server"
	"github.com/wellnessescape/backend/internal/session"
	"github.com/wellnessescape/backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

// repositories is the storage backend picked once at startup: Postgres when
// reachable, otherwise the in-memory set.
type repositories struct {
	mode      string
	users     user.Repository
	purchases billing.Repository
	programs  program.Repository
	journal   journal.Repository
	community community.Repository
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db := connectDatabase(ctx, cfg, logger)
	repos := buildRepositories(db)

	redisConn := connectRedis(ctx, cfg, logger)

	var sessionStore session.Store
	var memSessions *session.MemoryStore
	sessionMode := "redis"
	if redisConn != nil {
		sessionStore = session.NewRedisStore(redisConn.Client)
	} else {
		memSessions = session.NewMemoryStore()
		sessionStore = memSessions
		sessionMode = "memory"
	}
	sessions := session.NewManager(sessionStore, cfg.Session)

	userSvc := user.NewService(repos.users)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, cfg)
	authHandler := auth.NewHandler(authSvc, sessions)

	var checkout billing.CheckoutClient
	if cfg.StripeConfigured() {
		checkout = billing.NewStripeClient(cfg.Stripe, cfg.App)
		logger.Info("stripe checkout enabled")
	} else {
		logger.Warn("stripe not configured, checkout disabled")
	}
	billingSvc := billing.NewService(
		repos.purchases, userSvc, checkout, cfg.Stripe, logger)
	billingHandler := billing.NewHandler(billingSvc)

	programSvc := program.NewService(repos.programs)
	programHandler := program.NewHandler(programSvc)

	journalSvc := journal.NewService(repos.journal)
	journalHandler := journal.NewHandler(journalSvc)

	communitySvc := community.NewService(repos.community)
	communityHandler := community.NewHandler(communitySvc)

	var dbChecker, redisChecker health.Checker
	if db != nil {
		dbChecker = db
	}
	if redisConn != nil {
		redisChecker = redisConn
	}
	healthHandler := health.NewHandler(dbChecker, redisChecker)

	adminCfg := admin.HandlerConfig{
		StorageMode: repos.mode,
		SessionMode: sessionMode,
	}
	if db != nil {
		adminCfg.DBStats = db.Stats
		adminCfg.DBPing = db.Ping
	}
	if redisConn != nil {
		adminCfg.RedisStats = redisConn.PoolStats
		adminCfg.RedisPing = redisConn.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	rdbClient := redisClientOrNil(redisConn)

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(rdbClient, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(sessions, userSvc)
	adminOnly := middleware.RequireAdmin
	requireAccess := middleware.RequireAccess

	// Credential endpoints get a tighter per-path bucket on top of the
	// global limit.
	authLimiter := middleware.NewRateLimiter(rdbClient, middleware.RateLimitConfig{
		Limit: middleware.PerMinute(
			cfg.RateLimit.AuthRequests,
			cfg.RateLimit.AuthBurst,
		),
		KeyFunc:  middleware.KeyByIPAndPath,
		FailOpen: true,
	})

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Handler)
			authHandler.RegisterRoutes(r, authenticator)
		})

		billingHandler.RegisterRoutes(r, authenticator)
		programHandler.RegisterRoutes(r, authenticator, adminOnly, requireAccess)
		journalHandler.RegisterRoutes(r, authenticator, requireAccess)
		communityHandler.RegisterRoutes(r, authenticator, adminOnly)
		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if memSessions != nil {
		memSessions.Close()
	}

	if redisConn != nil {
		if err := redisConn.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

// connectDatabase runs migrations and opens the pool. Any failure demotes the
// process to in-memory storage rather than refusing to start.
func connectDatabase(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) *core.Database {
	if cfg.Database.URL == "" {
		logger.Warn("no database configured, using in-memory storage")
		return nil
	}

	if err := core.RunMigrations(cfg.Database.URL); err != nil {
		logger.Warn("database migration failed, using in-memory storage",
			"error", err)
		return nil
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Warn("database unreachable, using in-memory storage",
			"error", err)
		return nil
	}

	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)
	return db
}

func connectRedis(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) *core.Redis {
	if cfg.Redis.URL == "" {
		logger.Warn("no redis configured, using in-memory sessions")
		return nil
	}

	redisConn, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unreachable, using in-memory sessions",
			"error", err)
		return nil
	}

	logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	return redisConn
}

func buildRepositories(db *core.Database) repositories {
	if db != nil {
		return repositories{
			mode:      "postgres",
			users:     user.NewRepository(db.DB),
			purchases: billing.NewRepository(db.DB),
			programs:  program.NewRepository(db.DB),
			journal:   journal.NewRepository(db.DB),
			community: community.NewRepository(db.DB),
		}
	}

	userRepo := user.NewMemoryRepository()
	names := func(ctx context.Context, userID string) (string, error) {
		u, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return "", err
		}
		return u.Name, nil
	}

	return repositories{
		mode:      "memory",
		users:     userRepo,
		purchases: billing.NewMemoryRepository(),
		programs:  program.NewMemoryRepository(),
		journal:   journal.NewMemoryRepository(),
		community: community.NewMemoryRepository(names),
	}
}

func redisClientOrNil(r *core.Redis) *redis.Client {
	if r == nil {
		return nil
	}
	return r.Client
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
