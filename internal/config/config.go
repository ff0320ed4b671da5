package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
	Uploads   UploadsConfig   `mapstructure:"uploads"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings,
// including the connection pool bounds.
type DatabaseConfig struct {
	URL                 string `mapstructure:"url"                       validate:"required"`
	MaxOpenConns        int    `mapstructure:"max_open_conns"            validate:"required,gt=0"`
	MaxIdleConns        int    `mapstructure:"max_idle_conns"            validate:"required,gt=0"`
	ConnMaxLifetimeMins int    `mapstructure:"conn_max_lifetime_minutes" validate:"required,gt=0"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	// TokenTTLMinutes bounds the lifetime of issued bearer tokens.
	// Zero means tokens live until they are explicitly revoked.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" validate:"gte=0"`
}

// RateLimitConfig contains the fixed-window rate limiter settings.
// The auth window guards the anonymous register/login endpoints against
// credential stuffing; the api window bounds authenticated traffic.
type RateLimitConfig struct {
	AuthLimit         int `mapstructure:"auth_limit"          validate:"required,gt=0"`
	AuthWindowSeconds int `mapstructure:"auth_window_seconds" validate:"required,gt=0"`
	APILimit          int `mapstructure:"api_limit"           validate:"required,gt=0"`
	APIWindowSeconds  int `mapstructure:"api_window_seconds"  validate:"required,gt=0"`
}

// UploadsConfig contains avatar upload settings.
type UploadsConfig struct {
	Dir      string `mapstructure:"dir"       validate:"required"`
	MaxBytes int64  `mapstructure:"max_bytes" validate:"required,gt=0"`
}
