package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rogerio-castellano/product-inventory-cli/internal/config"
	"github.com/rogerio-castellano/product-inventory-cli/internal/db"
	"github.com/rogerio-castellano/product-inventory-cli/internal/logging"
	"github.com/rogerio-castellano/product-inventory-cli/internal/repo"
	"github.com/rogerio-castellano/product-inventory-cli/internal/shell"
	"go.uber.org/zap"
)

func main() {
	var logCfg logging.Config
	if err := logging.LoadEnv(&logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging configuration: %v\n", err)
		os.Exit(1)
	}
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not create logger: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, err := config.Load()
	if err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		zap.String("database_url", cfg.RedactedURL()),
		zap.Duration("connect_timeout", cfg.Database.ConnectTimeout),
		zap.Duration("query_timeout", cfg.Database.QueryTimeout),
		zap.Bool("enforce_stock_floor", cfg.Stock.EnforceFloor),
	)

	connector := db.NewConnector(cfg.Database.URL, cfg.Database.ConnectTimeout)
	opener := connector.ProductOpener(repo.PostgresOptions{
		QueryTimeout: cfg.Database.QueryTimeout,
		EnforceFloor: cfg.Stock.EnforceFloor,
	})

	sh := shell.New(os.Stdin, os.Stdout, opener, logger)
	if err := sh.Run(context.Background()); err != nil {
		logger.Error("session ended with error", zap.Error(err))
		closeLog()
		os.Exit(1)
	}
}
