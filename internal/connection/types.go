package connection

import (
	"errors"
	"time"
)

// Errors
var (
	ErrInvalidScheme = errors.New("websocket url must use ws or wss scheme")
	ErrClosed        = errors.New("socket closed before handshake completed")
)

// State is the lifecycle state of a Socket.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Config configures a Socket.
type Config struct {
	URL              string        // Full URL including the cg-api-key query parameter
	HandshakeTimeout time.Duration // Upper bound on the handshake; 0 = DefaultHandshakeTimeout
	CloseTimeout     time.Duration // Write deadline for the close frame
	ProxyAddr        string        // SOCKS5 proxy host:port (empty = direct)
}

// DefaultHandshakeTimeout bounds the handshake when Config leaves it unset.
const DefaultHandshakeTimeout = 10 * time.Second
