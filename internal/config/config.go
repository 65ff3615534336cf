package config

import "time"

// Config is the root configuration shared by the probe and the collector.
type Config struct {
	API       APIConfig       `yaml:"api"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	Database  DBConfig        `yaml:"database"`
	Collector CollectorConfig `yaml:"collector"`
}

// APIConfig holds Coinglass REST API settings.
type APIConfig struct {
	RestURL    string        `yaml:"rest_url"`
	APIKey     string        `yaml:"api_key"` // Sent as CG-API-KEY header / cg-api-key query param
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// WebSocketConfig holds the Coinglass WebSocket endpoint settings.
type WebSocketConfig struct {
	URL              string        `yaml:"url"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	ProxyAddr        string        `yaml:"proxy_addr"` // SOCKS5 host:port, empty = direct
}

// DBConfig holds a single PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// CollectorConfig holds futures collection settings.
type CollectorConfig struct {
	Symbols     []string `yaml:"symbols"`
	Exchange    string   `yaml:"exchange"` // Used for long/short ratios
	Interval    string   `yaml:"interval"` // >= 4h on the Hobbyist plan
	Concurrency int      `yaml:"concurrency"`
}
