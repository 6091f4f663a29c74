package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/frontdesk/internal/auth"
	"github.com/iliyamo/frontdesk/internal/catalog"
	"github.com/iliyamo/frontdesk/internal/config"
	"github.com/iliyamo/frontdesk/internal/database"
	"github.com/iliyamo/frontdesk/internal/handler"
	"github.com/iliyamo/frontdesk/internal/logging"
	"github.com/iliyamo/frontdesk/internal/middleware"
	"github.com/iliyamo/frontdesk/internal/queue"
	"github.com/iliyamo/frontdesk/internal/repository"
	"github.com/iliyamo/frontdesk/internal/router"
	"github.com/iliyamo/frontdesk/internal/service"
	"github.com/iliyamo/frontdesk/internal/upstream"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		logger.Fatal("load catalog", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("rooms", len(cat.Rooms)), zap.Int("units", len(cat.Units())))

	users := userStore(cfg, logger)

	// Sessions live in redis when it is reachable, otherwise in memory.
	rdb := config.NewRedisClient(logger)
	var sessions auth.SessionStore = auth.NewMemoryStore()
	if rdb != nil {
		sessions = auth.NewRedisStore(rdb, "sess")
		defer func() { _ = rdb.Close() }()
	}
	authn := auth.NewAuthenticator(users, sessions, cfg.JWTSecret, cfg.SessionTTL, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var events service.Publisher = service.NopPublisher{Log: logger}
	if cfg.RabbitURL != "" {
		p := service.NewAMQPPublisher(cfg.RabbitURL, logger)
		defer func() { _ = p.Close() }()
		events = p
		if cfg.AuditConsumer {
			go func() {
				if err := queue.StartAuditConsumer(ctx, cfg.RabbitURL, cfg.AuditLogPath, logger); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("audit consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	client := upstream.New(upstream.Options{
		ReservationsURL: cfg.ReservationsURL,
		HousekeepingURL: cfg.HousekeepingURL,
		Timeout:         cfg.UpstreamTimeout,
		RPS:             cfg.UpstreamRPS,
		Burst:           cfg.UpstreamBurst,
		Logger:          logger.Named("upstream"),
	})
	fd := handler.NewFrontDesk(client, client, cat, events, logger, cfg.Now, cfg.PropertyID)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))

	guards := router.Guards{
		Session:   middleware.SessionAuth(authn, logger),
		RateLimit: middleware.RateLimit(config.LoadRateLimitConfig(), rdb, logger),
	}
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authn, logger), guards)
	router.RegisterFrontDesk(e, fd, guards)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// userStore picks MySQL when DB credentials are configured and the users
// file otherwise.
func userStore(cfg config.Config, logger *zap.Logger) auth.UserStore {
	if cfg.DatabaseEnabled() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			logger.Fatal("open database", zap.Error(err))
		}
		logger.Info("users from mysql", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
		return repository.NewUserRepo(db)
	}
	users, err := repository.LoadStaticUsers(cfg.UsersFile)
	if err != nil {
		logger.Fatal("load users file", zap.String("path", cfg.UsersFile), zap.Error(err))
	}
	logger.Info("users from file", zap.String("path", cfg.UsersFile), zap.Int("count", users.Len()))
	return users
}
