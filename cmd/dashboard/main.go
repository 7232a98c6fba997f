package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/reserveflow-dashboard/internal/apiclient"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/audit"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/config"
	dbpkg "github.com/BruksfildServices01/reserveflow-dashboard/internal/db"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/logger"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/routes"
	"github.com/BruksfildServices01/reserveflow-dashboard/internal/viewstate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := config.Log(zl, cfg); err != nil {
		zl.Warn("config log failed", zap.Error(err))
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("dashboard stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithLogger(zl.Named("api")),
	)
	if err != nil {
		return err
	}

	// Activity log is optional.
	auditLogger := audit.New(nil)
	if cfg.DBUrl != "" {
		db, err := dbpkg.Open(cfg.DBUrl)
		if err != nil {
			return err
		}
		defer func() { _ = dbpkg.Close(db) }()
		auditLogger = audit.New(db)
	}
	dispatcher := audit.NewDispatcher(auditLogger, zl.Named("audit"))

	var store viewstate.Store
	switch cfg.StateStore {
	case config.StoreRedis:
		rdb, err := viewstate.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		store = viewstate.NewRedisStore(rdb, cfg.StateTTL)
	default:
		store = viewstate.NewMemoryStore(cfg.StateTTL)
	}

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := routes.NewRouter(routes.Deps{
		Config: cfg,
		API:    api,
		Store:  store,
		Audit:  auditLogger,
		Events: dispatcher,
		Logger: zl,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Warn("shutdown", zap.Error(err))
	}
	return dispatcher.Close(shutdownCtx)
}
