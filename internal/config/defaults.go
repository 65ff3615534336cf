package config

import (
	"strings"
	"time"
)

// Default values for optional configuration fields.
const (
	DefaultRestURL          = "https://open-api-v4.coinglass.com"
	DefaultWSURL            = "wss://open-ws.coinglass.com/ws-api"
	DefaultAPITimeout       = 30 * time.Second
	DefaultMaxRetries       = 3
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultDBPort           = 5432
	DefaultDBSSLMode        = "prefer"
	DefaultMaxConns         = 10
	DefaultMinConns         = 2
	DefaultExchange         = "Binance"
	DefaultInterval         = "4h"
	DefaultConcurrency      = 4
)

// DefaultSymbols are collected when the config names none.
var DefaultSymbols = []string{"BTC", "ETH"}

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}

	// WebSocket defaults
	if c.WebSocket.URL == "" {
		c.WebSocket.URL = DefaultWSURL
	}
	if c.WebSocket.HandshakeTimeout == 0 {
		c.WebSocket.HandshakeTimeout = DefaultHandshakeTimeout
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Collector defaults
	c.Collector.Symbols = normalizeSymbols(c.Collector.Symbols)
	if len(c.Collector.Symbols) == 0 {
		c.Collector.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if c.Collector.Exchange == "" {
		c.Collector.Exchange = DefaultExchange
	}
	if c.Collector.Interval == "" {
		c.Collector.Interval = DefaultInterval
	}
	if c.Collector.Concurrency == 0 {
		c.Collector.Concurrency = DefaultConcurrency
	}
}

// ParseSymbols splits a comma-separated symbol list ("btc, eth,,SOL").
func ParseSymbols(s string) []string {
	return normalizeSymbols(strings.Split(s, ","))
}

func normalizeSymbols(in []string) []string {
	var out []string
	for _, s := range in {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
