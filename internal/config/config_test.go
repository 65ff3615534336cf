package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	yaml := `
api:
  rest_url: https://example.test
  api_key: abc123
websocket:
  url: wss://ws.example.test/ws-api
  handshake_timeout: 3s
collector:
  symbols: [btc, " sol "]
  exchange: OKX
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.RestURL != "https://example.test" {
		t.Errorf("API.RestURL = %q, want %q", cfg.API.RestURL, "https://example.test")
	}
	if cfg.API.APIKey != "abc123" {
		t.Errorf("API.APIKey = %q, want %q", cfg.API.APIKey, "abc123")
	}
	if cfg.WebSocket.HandshakeTimeout != 3*time.Second {
		t.Errorf("WebSocket.HandshakeTimeout = %v, want 3s", cfg.WebSocket.HandshakeTimeout)
	}
	if cfg.Collector.Exchange != "OKX" {
		t.Errorf("Collector.Exchange = %q, want OKX", cfg.Collector.Exchange)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_CG_KEY", "from-env")

	path := writeTempFile(t, "api:\n  api_key: ${TEST_CG_KEY}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.API.APIKey != "from-env" {
		t.Errorf("API.APIKey = %q, want %q", cfg.API.APIKey, "from-env")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "read config file") {
		t.Errorf("error = %v, want read config file prefix", err)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := LoadWithDefaults("")
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.API.RestURL != DefaultRestURL {
		t.Errorf("API.RestURL = %q, want default %q", cfg.API.RestURL, DefaultRestURL)
	}
	if cfg.WebSocket.URL != DefaultWSURL {
		t.Errorf("WebSocket.URL = %q, want default %q", cfg.WebSocket.URL, DefaultWSURL)
	}
	if cfg.WebSocket.HandshakeTimeout != DefaultHandshakeTimeout {
		t.Errorf("HandshakeTimeout = %v, want %v", cfg.WebSocket.HandshakeTimeout, DefaultHandshakeTimeout)
	}
	if cfg.Database.Port != DefaultDBPort {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, DefaultDBPort)
	}
	if !reflect.DeepEqual(cfg.Collector.Symbols, []string{"BTC", "ETH"}) {
		t.Errorf("Collector.Symbols = %v, want [BTC ETH]", cfg.Collector.Symbols)
	}
	if cfg.Collector.Interval != DefaultInterval {
		t.Errorf("Collector.Interval = %q, want %q", cfg.Collector.Interval, DefaultInterval)
	}
	if cfg.Collector.Concurrency != DefaultConcurrency {
		t.Errorf("Collector.Concurrency = %d, want %d", cfg.Collector.Concurrency, DefaultConcurrency)
	}
}

func TestLoadWithDefaultsNormalizesSymbols(t *testing.T) {
	path := writeTempFile(t, "collector:\n  symbols: [btc, \" sol \", \"\"]\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.Collector.Symbols, []string{"BTC", "SOL"}) {
		t.Errorf("Collector.Symbols = %v, want [BTC SOL]", cfg.Collector.Symbols)
	}
}

func TestParseSymbols(t *testing.T) {
	got := ParseSymbols("btc, eth,,Sol ")
	want := []string{"BTC", "ETH", "SOL"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseSymbols() = %v, want %v", got, want)
	}
	if got := ParseSymbols(" , "); len(got) != 0 {
		t.Errorf("ParseSymbols(blank) = %v, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "http scheme",
			cfg:     Config{WebSocket: WebSocketConfig{URL: "https://open-ws.coinglass.com/ws-api"}},
			wantErr: `websocket.url must use ws or wss scheme, got "https"`,
		},
		{
			name:    "negative handshake timeout",
			cfg:     Config{WebSocket: WebSocketConfig{URL: "wss://x", HandshakeTimeout: -time.Second}},
			wantErr: "websocket.handshake_timeout must be >= 0",
		},
		{
			name:    "valid",
			cfg:     Config{WebSocket: WebSocketConfig{URL: DefaultWSURL, HandshakeTimeout: time.Second}},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error %q, got nil", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateCollector(t *testing.T) {
	valid := DBConfig{Host: "localhost", Name: "cg", User: "u", Password: "p", MaxConns: 10, MinConns: 2}

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing rest url",
			cfg:     Config{},
			wantErr: "api.rest_url is required",
		},
		{
			name:    "missing database host",
			cfg:     Config{API: APIConfig{RestURL: DefaultRestURL}},
			wantErr: "database.host is required",
		},
		{
			name: "min_conns exceeds max_conns",
			cfg: Config{
				API:      APIConfig{RestURL: DefaultRestURL},
				Database: DBConfig{Host: "localhost", Name: "cg", User: "u", Password: "p", MaxConns: 2, MinConns: 5},
			},
			wantErr: "database.min_conns (5) cannot exceed max_conns (2)",
		},
		{
			name: "zero concurrency",
			cfg: Config{
				API:      APIConfig{RestURL: DefaultRestURL},
				Database: valid,
			},
			wantErr: "collector.concurrency must be >= 1",
		},
		{
			name: "valid",
			cfg: Config{
				API:       APIConfig{RestURL: DefaultRestURL},
				Database:  valid,
				Collector: CollectorConfig{Concurrency: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateCollector()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateCollector() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateCollector() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	tests := []struct {
		name    string
		flag    string
		env     map[string]string
		want    string
		wantErr error
	}{
		{name: "flag only", flag: "X", want: "X"},
		{name: "env only", env: map[string]string{EnvAPIKey: "Y"}, want: "Y"},
		{name: "flag beats env", flag: "X", env: map[string]string{EnvAPIKey: "Y"}, want: "X"},
		{name: "neither", wantErr: ErrMissingAPIKey},
		{name: "empty env", env: map[string]string{EnvAPIKey: ""}, wantErr: ErrMissingAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAPIKey(tt.flag, env(tt.env))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ResolveAPIKey() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrMissingAPIKeyMessage(t *testing.T) {
	msg := ErrMissingAPIKey.Error()
	for _, want := range []string{"--api-key", "COINGLASS_API_KEY"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q should reference %q", msg, want)
		}
	}
}

func TestKnownArgs(t *testing.T) {
	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.String("api-key", "", "")
		fs.String("ws-url", "", "")
		fs.Bool("wait", false, "")
		return fs
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "empty", args: nil, want: []string{}},
		{name: "with value", args: []string{"--api-key", "X"}, want: []string{"--api-key", "X"}},
		{name: "equals form", args: []string{"--api-key=X", "--wait"}, want: []string{"--api-key=X", "--wait"}},
		{name: "dangling double dash", args: []string{"--wait", "--api-key"}, want: []string{"--wait"}},
		{name: "dangling single dash", args: []string{"-api-key"}, want: []string{}},
		{name: "positional before key", args: []string{"extra", "--api-key", "X"}, want: []string{"--api-key", "X"}},
		{name: "unknown flag before key", args: []string{"--unknown", "--api-key", "X"}, want: []string{"--api-key", "X"}},
		{name: "unknown flag with value", args: []string{"--depth=5", "--ws-url", "ws://h/ws", "--wait"}, want: []string{"--ws-url", "ws://h/ws", "--wait"}},
		{name: "terminator skipped", args: []string{"--", "--api-key", "X"}, want: []string{"--api-key", "X"}},
		{name: "help kept", args: []string{"extra", "-h"}, want: []string{"-h"}},
		{name: "value taken verbatim", args: []string{"--api-key", "--wait"}, want: []string{"--api-key", "--wait"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KnownArgs(newFlags(), tt.args)
			if len(got) != len(tt.want) {
				t.Fatalf("KnownArgs() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("KnownArgs()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}
