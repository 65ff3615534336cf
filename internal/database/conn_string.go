package database

import (
	"net"
	"net/url"
	"strconv"

	"github.com/rickgao/coinglass-data/internal/config"
)

// ApplicationName is reported to PostgreSQL in pg_stat_activity.
const ApplicationName = "coinglass-collector"

// BuildConnString renders cfg as a postgres:// URL. User and password are
// escaped by net/url; an empty ssl_mode means "prefer".
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
		RawQuery: url.Values{
			"sslmode":          {sslMode},
			"application_name": {ApplicationName},
		}.Encode(),
	}
	return u.String()
}
