// collector downloads Coinglass futures series (open interest, funding rate,
// long/short ratio, liquidations) into PostgreSQL.
// Usage: go run ./cmd/collector --config configs/collector.example.yaml
//
// The API key comes from --api-key, COINGLASS_API_KEY or api.api_key in the
// config file, in that order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rickgao/coinglass-data/internal/api"
	"github.com/rickgao/coinglass-data/internal/collector"
	"github.com/rickgao/coinglass-data/internal/config"
	"github.com/rickgao/coinglass-data/internal/database"
	"github.com/rickgao/coinglass-data/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	apiKey := flag.String("api-key", "", "Coinglass API key (falls back to $"+config.EnvAPIKey+")")
	symbols := flag.String("symbols", "", "comma-separated symbols, overrides collector.symbols")
	exchange := flag.String("exchange", "", "exchange for long/short ratios, overrides collector.exchange")
	interval := flag.String("interval", "", "data interval (>= 4h on the Hobbyist plan)")
	listCoins := flag.Bool("list-coins", false, "print supported futures coins and exit")
	flag.Parse()

	// Logs go to stderr so --list-coins output stays clean on stdout
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting collector",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *symbols != "" {
		cfg.Collector.Symbols = config.ParseSymbols(*symbols)
	}
	if *exchange != "" {
		cfg.Collector.Exchange = *exchange
	}
	if *interval != "" {
		cfg.Collector.Interval = *interval
	}

	key, err := config.ResolveAPIKey(*apiKey, os.Getenv)
	if errors.Is(err, config.ErrMissingAPIKey) && cfg.API.APIKey != "" {
		key, err = cfg.API.APIKey, nil
	}
	if err != nil {
		logger.Error("missing api key", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	apiClient := api.NewClient(
		cfg.API.RestURL,
		key,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, api.DefaultRetryBackoff),
	)

	if *listCoins {
		if err := printCoins(ctx, apiClient, os.Stdout); err != nil {
			logger.Error("failed to get supported coins", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.ValidateCollector(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := database.NewStore(pool, logger)
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	c := collector.New(collector.Config{
		Symbols:     cfg.Collector.Symbols,
		Exchange:    cfg.Collector.Exchange,
		Interval:    cfg.Collector.Interval,
		Concurrency: cfg.Collector.Concurrency,
	}, apiClient, store, logger)

	run, results, err := c.Run(ctx)
	if err != nil {
		logger.Error("collection aborted", "run_id", run.ID, "error", err)
		os.Exit(1)
	}

	for _, r := range results {
		if r.Err != nil {
			logger.Warn("symbol not collected", "symbol", r.Symbol, "error", r.Err)
		}
	}

	logger.Info("collector stopped", "run_id", run.ID, "inserted", run.Inserted, "failed", run.Failed)
}

type coinLister interface {
	SupportedCoins(ctx context.Context) ([]string, error)
}

// printCoins writes one supported coin per line.
func printCoins(ctx context.Context, src coinLister, w io.Writer) error {
	coins, err := src.SupportedCoins(ctx)
	if err != nil {
		return err
	}
	for _, c := range coins {
		fmt.Fprintln(w, c)
	}
	return nil
}
