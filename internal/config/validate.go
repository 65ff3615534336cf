package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate checks the settings used by the WebSocket probe.
func (c *Config) Validate() error {
	u, err := url.Parse(c.WebSocket.URL)
	if err != nil {
		return fmt.Errorf("websocket.url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("websocket.url must use ws or wss scheme, got %q", u.Scheme)
	}
	if c.WebSocket.HandshakeTimeout < 0 {
		return errors.New("websocket.handshake_timeout must be >= 0")
	}
	return nil
}

// ValidateCollector checks the settings used by the REST collector.
func (c *Config) ValidateCollector() error {
	if c.API.RestURL == "" {
		return errors.New("api.rest_url is required")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if err := c.Database.validate("database"); err != nil {
		return err
	}
	if c.Collector.Concurrency < 1 {
		return errors.New("collector.concurrency must be >= 1")
	}
	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
