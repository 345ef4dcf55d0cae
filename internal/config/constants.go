package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Outbound LibreLinkUp client timeout. The sync client itself imposes no
// deadline; the transport owns it.
const LinkUpHTTPTimeout = 30 * time.Second

// Minimum poll interval
const MinPollIntervalSeconds = 30

// Per-run sync deadline applied by the poll job
const SyncRunTimeout = 2 * time.Minute
