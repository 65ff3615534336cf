package connection

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/net/proxy"
)

// Socket is a single WebSocket connection attempt to Coinglass.
type Socket struct {
	cfg    Config
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{} // closed when the handshake goroutine returns

	mu      sync.Mutex
	conn    *websocket.Conn
	state   State
	dialErr error

	closeOnce sync.Once
	closeErr  error
}

// Open starts connecting to cfg.URL in the background and returns at once.
// The returned Socket is in StateConnecting.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Socket, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := parseWSURL(cfg.URL); err != nil {
		return nil, err
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = time.Second
	}

	dialer, err := newDialer(cfg)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithCancel(ctx)
	s := &Socket{
		cfg:    cfg,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  StateConnecting,
	}

	go s.handshake(dialCtx, dialer)

	return s, nil
}

// newDialer builds the gorilla dialer, routing through SOCKS5 when configured.
func newDialer(cfg Config) (*websocket.Dialer, error) {
	dialer := &websocket.Dialer{
		HandshakeTimeout: cfg.HandshakeTimeout,
	}

	if cfg.ProxyAddr != "" {
		socks, err := proxy.SOCKS5("tcp", cfg.ProxyAddr, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("create socks5 dialer: %w", err)
		}
		if cd, ok := socks.(proxy.ContextDialer); ok {
			dialer.NetDialContext = cd.DialContext
		} else {
			dialer.NetDial = socks.Dial
		}
	}

	return dialer, nil
}

func (s *Socket) handshake(ctx context.Context, dialer *websocket.Dialer) {
	defer close(s.done)

	conn, resp, err := dialer.DialContext(ctx, s.cfg.URL, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.dialErr = err
		s.state = StateClosed
		s.logger.Debug("websocket handshake failed",
			"url", Redact(s.cfg.URL),
			"error", err,
		)
		return
	}

	s.conn = conn
	s.state = StateOpen
	s.logger.Debug("websocket connected", "url", Redact(s.cfg.URL))
}

// URL returns the URL the socket connects to, API key included.
func (s *Socket) URL() string {
	return s.cfg.URL
}

// State returns the current lifecycle state.
func (s *Socket) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// WaitOpen blocks until the handshake finishes or ctx is done. It returns the
// handshake error, if any.
func (s *Socket) WaitOpen(ctx context.Context) error {
	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dialErr != nil {
		return s.dialErr
	}
	if s.conn == nil {
		return ErrClosed
	}
	return nil
}

// Close aborts a pending handshake or closes an open connection with a
// normal close frame. It is safe to call more than once and returns within
// the handshake timeout.
func (s *Socket) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done

		s.mu.Lock()
		conn := s.conn
		s.conn = nil
		s.state = StateClosed
		s.mu.Unlock()

		if conn == nil {
			return
		}

		if err := conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(s.cfg.CloseTimeout),
		); err != nil {
			s.logger.Debug("failed to send close frame", "error", err)
		}
		s.closeErr = conn.Close()
		s.logger.Debug("websocket closed", "url", Redact(s.cfg.URL))
	})

	return s.closeErr
}
