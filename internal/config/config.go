package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME,default=token-auth-service"`
	Env                   string `env:"APP_ENV,default=development"`
	Host                  string `env:"APP_HOST,default=0.0.0.0"`
	Port                  string `env:"APP_PORT,default=8080"`
	Version               string `env:"APP_VERSION,default=dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS,default=30"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `env:"POSTGRES_DSN"`
	MaxConns       int32  `env:"POSTGRES_MAX_CONNS,default=10"`
	MinConns       int32  `env:"POSTGRES_MIN_CONNS,default=2"`
	RunMigrations  bool   `env:"POSTGRES_RUN_MIGRATIONS,default=true"`
	ConnMaxIdleSec int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS,default=30"`
	ConnMaxLifeSec int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS,default=300"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr             string `env:"REDIS_ADDR,default=127.0.0.1:6379"`
	Password         string `env:"REDIS_PASSWORD"`
	DB               int    `env:"REDIS_DB,default=0"`
	UserCacheTTLSecs int    `env:"REDIS_USER_CACHE_TTL_SECONDS,default=60"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL,default=info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret          string `env:"AUTH_JWT_SECRET"`
	TokenTTLMinutes    int    `env:"AUTH_TOKEN_TTL_MINUTES,default=1440"`
	TokenLeewaySeconds int    `env:"AUTH_TOKEN_LEEWAY_SECONDS,default=0"`
	BcryptCost         int    `env:"AUTH_BCRYPT_COST,default=12"`
}

// SeedConfig describes the default accounts created at startup.
type SeedConfig struct {
	Enabled     bool   `env:"SEED_DEFAULT_USERS,default=true"`
	DefaultRole string `env:"DEFAULT_ROLE,default=USER"`
	Username1   string `env:"DEFAULT_USERNAME,default=admin"`
	Password1   string `env:"DEFAULT_PASSWORD,default=password"`
	Username2   string `env:"DEFAULT_USERNAME_2,default=user1"`
	Password2   string `env:"DEFAULT_PASSWORD_2,default=password"`
	Username3   string `env:"DEFAULT_USERNAME_3,default=user2"`
	Password3   string `env:"DEFAULT_PASSWORD_3,default=password"`
}

// DefaultAccount is a username/password pair to seed.
type DefaultAccount struct {
	Username string
	Password string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode env: %w", err)
	}
	if cfg.Auth.TokenTTLMinutes <= 0 {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL_MINUTES: %d", cfg.Auth.TokenTTLMinutes)
	}
	if cfg.Auth.TokenLeewaySeconds < 0 {
		return nil, fmt.Errorf("invalid AUTH_TOKEN_LEEWAY_SECONDS: %d", cfg.Auth.TokenLeewaySeconds)
	}
	return &cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the lifetime of issued tokens.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// TokenLeeway returns the clock skew tolerated when checking expiry.
func (a AuthConfig) TokenLeeway() time.Duration {
	return time.Duration(a.TokenLeewaySeconds) * time.Second
}

// UserCacheTTL returns how long user lookups stay cached; zero disables the cache.
func (r RedisConfig) UserCacheTTL() time.Duration {
	if r.UserCacheTTLSecs <= 0 {
		return 0
	}
	return time.Duration(r.UserCacheTTLSecs) * time.Second
}

// Accounts returns the configured default accounts in declaration order.
func (s SeedConfig) Accounts() []DefaultAccount {
	return []DefaultAccount{
		{Username: s.Username1, Password: s.Password1},
		{Username: s.Username2, Password: s.Password2},
		{Username: s.Username3, Password: s.Password3},
	}
}
