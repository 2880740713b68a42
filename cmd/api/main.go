package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	"storefront/internal/migrate"
	"storefront/internal/notify"
	"storefront/internal/repository/idempotency"
	orderrepo "storefront/internal/repository/order"
	"storefront/internal/repository/session"
	cartsvc "storefront/internal/service/cart"
	ordersvc "storefront/internal/service/order"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	logger, err := logging.New(cfg.LogLevel, "api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(2)
	}

	err = run(cfg, logger)
	if err != nil {
		logger.Error("api stopped", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	ctx := context.Background()
	readiness := map[string]httpserver.ReadinessCheck{}

	var store orderrepo.Store
	switch cfg.OrderStore {
	case config.StorePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			return fmt.Errorf("connect to db: %w", err)
		}
		defer pool.Close()
		if err := migrate.Apply(ctx, pool, logger); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		store = orderrepo.NewPostgres(pool, logger)
		readiness["postgres"] = pool.Ping
	default:
		logger.Warn("using in-memory order store, orders are lost on restart")
		store = orderrepo.NewMemory(logger)
	}

	var (
		sessions session.Store
		guard    idempotency.Guard
	)
	// a pending key outlives the append it guards, then frees the key
	pendingTTL := 2 * cfg.Orders.PersistTimeout
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		sessions = session.NewRedis(rdb, cfg.Redis.SessionTTL)
		guard = idempotency.NewRedis(rdb, cfg.Redis.IdempotencyTTL, pendingTTL)
		readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		sessions = session.NewMemory()
		guard = idempotency.NewMemory(cfg.Redis.IdempotencyTTL, pendingTTL)
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	notifier := notify.NewSMTP(notify.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		Recipient: cfg.SMTP.Recipient,
		StoreName: cfg.Store.Name,
		Bank: notify.BankDetails{
			Name:          cfg.Store.BankName,
			AccountName:   cfg.Store.BankAccountName,
			AccountNumber: cfg.Store.BankAccountNumber,
		},
	}, logger)

	orderService := ordersvc.New(store, logger,
		ordersvc.WithNotifier(notifier),
		ordersvc.WithIdempotency(guard),
		ordersvc.WithTimeouts(cfg.Orders.PersistTimeout, cfg.Orders.NotifyTimeout),
	)
	cartService := cartsvc.New(sessions, cat, orderService, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:     cat,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		Readiness:   readiness,
		AdminToken:  cfg.AdminToken,
		CORSOrigins: cfg.CORSOrigins,
		SessionTTL:  cfg.Redis.SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr), zap.String("order_store", cfg.OrderStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}
