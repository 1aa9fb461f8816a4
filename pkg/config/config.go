package config

import "time"

// DB holds the Postgres connection settings.
type DB struct {
	Url string `envconfig:"URL" required:"true"`
}

// Jwt holds token signing settings.
type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Redis holds cache connection settings.
type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// RateLimit caps requests per client IP.
type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// PriceProvider configures the crypto price source and its cache.
type PriceProvider struct {
	ApiUrl      string        `envconfig:"API_URL" default:""`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	CacheTTL    time.Duration `envconfig:"CACHE_TTL" default:"15m"`
	CachePrefix string        `envconfig:"CACHE_PREFIX" default:"price:usd:"`
}

// Scheduler configures the background jobs.
type Scheduler struct {
	Enabled            bool   `envconfig:"ENABLED" default:"true"`
	MaterializeSpec    string `envconfig:"MATERIALIZE_SPEC" default:"0 2 * * *"`
	PriceRefreshSpec   string `envconfig:"PRICE_REFRESH_SPEC" default:"*/15 * * * *"`
	AlertSweepSpec     string `envconfig:"ALERT_SWEEP_SPEC" default:"0 8 * * *"`
	AlertCleanupSpec   string `envconfig:"ALERT_CLEANUP_SPEC" default:"0 3 * * 0"`
	AlertRetentionDays int    `envconfig:"ALERT_RETENTION_DAYS" default:"30"`
	LowBalanceFloor    float64 `envconfig:"LOW_BALANCE_FLOOR" default:"100"`
}

// Log configures slog output.
type Log struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

// Server holds the listen address.
type Server struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"3000"`
}

// App is the root configuration tree, populated from the environment.
type App struct {
	Env           string         `envconfig:"APP_ENV" default:"development"`
	Version       string         `envconfig:"APP_VERSION" default:"dev"`
	Server        *Server        `envconfig:"SERVER"`
	Log           *Log           `envconfig:"LOG"`
	DB            *DB            `envconfig:"DATABASE"`
	Jwt           *Jwt           `envconfig:"JWT"`
	Redis         *Redis         `envconfig:"REDIS"`
	RateLimit     *RateLimit     `envconfig:"RATE_LIMIT"`
	PriceProvider *PriceProvider `envconfig:"PRICE_PROVIDER"`
	Scheduler     *Scheduler     `envconfig:"SCHEDULER"`
}
