// Command export writes every stored order row to stdout as CSV.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/logging"
	orderrepo "storefront/internal/repository/order"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	logger, err := logging.New(cfg.LogLevel, "export")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(2)
	}

	err = run(context.Background(), cfg, logger, os.Stdout)
	if err != nil {
		logger.Error("export failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer) error {
	if cfg.OrderStore != config.StorePostgres {
		return fmt.Errorf("export needs the postgres order store, got %q", cfg.OrderStore)
	}

	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	rows, err := orderrepo.NewPostgres(pool, logger).ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	if err := writeCSV(out, rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	logger.Info("orders exported", zap.Int("rows", len(rows)))
	return nil
}

func writeCSV(w io.Writer, rows []domain.OrderRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(orderrepo.Headers()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(orderrepo.Cells(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
