// wsprobe opens a connection to the Coinglass WebSocket, prints the
// connection URL and closes it again without exchanging any messages.
// Usage: go run ./cmd/wsprobe --api-key <key>
//
// The key may instead be provided through COINGLASS_API_KEY. The printed URL
// contains the key in plain text. Arguments the probe does not define are
// ignored.
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

	"github.com/rickgao/coinglass-data/internal/config"
	"github.com/rickgao/coinglass-data/internal/connection"
	"github.com/rickgao/coinglass-data/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("wsprobe", flag.ContinueOnError)
	fs.SetOutput(stderr)
	apiKey := fs.String("api-key", "", "Coinglass API key (falls back to $"+config.EnvAPIKey+")")
	configPath := fs.String("config", "", "optional path to config file")
	wsURL := fs.String("ws-url", "", "override the WebSocket endpoint")
	wait := fs.Bool("wait", false, "wait for the handshake to finish before closing")
	verbose := fs.Bool("verbose", false, "enable debug logging")

	if err := fs.Parse(config.KnownArgs(fs, args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: level,
	}))

	logger.Debug("starting wsprobe", "version", version.String())

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 2
	}
	if *wsURL != "" {
		cfg.WebSocket.URL = *wsURL
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		return 2
	}

	key, err := config.ResolveAPIKey(*apiKey, getenv)
	if errors.Is(err, config.ErrMissingAPIKey) && cfg.API.APIKey != "" {
		key, err = cfg.API.APIKey, nil
	}
	if err != nil {
		logger.Error("missing api key", "error", err)
		return 1
	}

	url, err := connection.BuildURL(cfg.WebSocket.URL, key)
	if err != nil {
		logger.Error("failed to build websocket url", "error", err)
		return 2
	}

	sock, err := connection.Open(ctx, connection.Config{
		URL:              url,
		HandshakeTimeout: cfg.WebSocket.HandshakeTimeout,
		ProxyAddr:        cfg.WebSocket.ProxyAddr,
	}, logger)
	if err != nil {
		logger.Error("failed to open websocket", "error", err)
		return 2
	}

	fmt.Fprintln(stdout, sock.URL())

	if *wait {
		waitCtx, cancel := context.WithTimeout(ctx, cfg.WebSocket.HandshakeTimeout)
		if err := sock.WaitOpen(waitCtx); err != nil {
			logger.Warn("websocket did not open", "error", err)
		} else {
			logger.Info("websocket open", "url", connection.Redact(url))
		}
		cancel()
	}

	if err := sock.Close(); err != nil {
		logger.Debug("close websocket", "error", err)
	}

	return 0
}
