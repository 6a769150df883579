// Package server initializes and runs the vault server: storage, migrations,
// services, the HTTP API, and graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/lockbox/internal/logging"
	"github.com/dmitrijs2005/lockbox/internal/server/aliases"
	"github.com/dmitrijs2005/lockbox/internal/server/config"
	"github.com/dmitrijs2005/lockbox/internal/server/httpapi"
	"github.com/dmitrijs2005/lockbox/internal/server/metrics"
	"github.com/dmitrijs2005/lockbox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lockbox/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	manager repomanager.RepositoryManager
	router  http.Handler
	limiter *httpapi.LoginLimiter
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	manager := repomanager.NewPostgresRepositoryManager()

	aliasStore, err := newAliasStore(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	userService := services.NewUserService(db, manager, cfg)
	recordService := services.NewRecordService(db, manager, aliasStore, cfg)
	transferService := services.NewTransferService(recordService, cfg)

	collector := metrics.NewCollector()
	limiter := httpapi.NewLoginLimiter(cfg.LoginRatePerMinute)

	router := httpapi.NewRouter(&httpapi.RouterDeps{
		Logger:       logger,
		Collector:    collector,
		JWTSecret:    []byte(cfg.SecretKey),
		LoginLimiter: limiter,
		Users:        userService,
		Records:      recordService,
		Transfers:    transferService,
		DB:           db,
	})

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		manager: manager,
		router:  router,
		limiter: limiter,
	}, nil
}

// newAliasStore picks Redis when an address is configured and falls back to
// the in-process store otherwise.
func newAliasStore(cfg *config.Config) (aliases.Store, error) {
	if cfg.RedisAddr == "" {
		return aliases.NewMemoryStore(), nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return aliases.NewRedisStore(client), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	if err := app.manager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: app.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "shutting down")
	app.limiter.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return app.db.Close()
}
