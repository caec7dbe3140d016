package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jpillora/backoff"
	"github.com/nikolayk812/storefront-cart/internal/actions"
	"github.com/nikolayk812/storefront-cart/internal/catalog"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/logging"
	"github.com/nikolayk812/storefront-cart/internal/migrations"
	"github.com/nikolayk812/storefront-cart/internal/notify"
	"github.com/nikolayk812/storefront-cart/internal/repository"
	"github.com/nikolayk812/storefront-cart/internal/web"
	"go.uber.org/zap"
)

func main() {
	var cfg config.Config
	kctx := kong.Parse(&cfg,
		kong.Name("storefront"),
		kong.Description("Serves the storefront listing and shopping cart."),
	)

	logger, err := logging.New(cfg.Log)
	kctx.FatalIfErrorf(err)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("storefront failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, cfg.DBWait, logger); err != nil {
		return err
	}
	if err := migrations.Up(cfg.DSN, logger); err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}

	repo, err := repository.NewCart(pool)
	if err != nil {
		return fmt.Errorf("repository.NewCart: %w", err)
	}

	svc, err := actions.NewService(repo, logger.Named("actions"))
	if err != nil {
		return fmt.Errorf("actions.NewService: %w", err)
	}

	cat, err := catalog.Load(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("catalog.Load: %w", err)
	}
	logger.Info("catalog loaded", zap.Int("products", len(cat.Products())))

	store := notify.NewStore(cfg.ToastTTL)
	dispatcher := notify.NewDispatcher(store, logger.Named("notify"), cfg.ToastBuffer)

	inbox := notify.NewInbox(dispatcher, store, cfg.ToastWait)

	server, err := web.NewServer(repo, svc, cat, dispatcher, inbox, logger.Named("web"), web.Options{
		SessionTTL:   cfg.SessionTTL,
		AllowOrigins: cfg.AllowOrigins,
		SecureCookie: cfg.SecureCookie,
	})
	if err != nil {
		return fmt.Errorf("web.NewServer: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Bind,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, background := range []func(context.Context){store.Run, dispatcher.Run, server.Run} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			background(ctx)
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Bind))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-serveErr:
		if err != nil {
			cancel()
			wg.Wait()
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}

	cancel()
	wg.Wait()
	logger.Info("bye")

	return nil
}

// waitForDB pings the database with growing pauses until it answers or wait elapses.
func waitForDB(ctx context.Context, pool *pgxpool.Pool, wait time.Duration, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	retry := backoff.Backoff{Min: 100 * time.Millisecond, Max: 2 * time.Second, Jitter: true}
	for {
		err := pool.Ping(ctx)
		if err == nil {
			return nil
		}

		delay := retry.Duration()
		logger.Debug("database not ready", zap.Error(err), zap.Duration("retry_in", delay))

		select {
		case <-ctx.Done():
			return fmt.Errorf("database not ready after %s: %w", wait, err)
		case <-time.After(delay):
		}
	}
}
