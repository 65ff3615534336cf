package connection

import (
	"fmt"
	"net/url"
)

// APIKeyParam is the query parameter carrying the API key.
const APIKeyParam = "cg-api-key"

// BuildURL returns base with the API key set as the cg-api-key query
// parameter. The key ends up in plain text in the URL.
func BuildURL(base, apiKey string) (string, error) {
	u, err := parseWSURL(base)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(APIKeyParam, apiKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Redact masks the API key in a WebSocket URL for logging.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get(APIKeyParam) == "" {
		return rawURL
	}
	q.Set(APIKeyParam, "***")
	u.RawQuery = q.Encode()
	return u.String()
}

func parseWSURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse websocket url: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidScheme, u.Scheme)
	}
	return u, nil
}
