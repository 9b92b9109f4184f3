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

// Session cookie
const (
	SessionCookieName = "app_session"
	SessionMaxAge     = 30 * 24 * time.Hour
)

// OAuth state entries expire if the callback never arrives
const OAuthStateTTL = 10 * time.Minute

// Timeout for calls to the external identity provider
const IdentityExchangeTimeout = 10 * time.Second

// Default rate limiting
const DefaultRateLimitPerMin = 120
