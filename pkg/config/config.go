package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Log           LogConfig
	Catalog       CatalogConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Session       SessionConfig
	AuthRateLimit AuthRateLimitConfig
	Reports       ReportsConfig
	QRCode        QRCodeConfig
	Migrate       MigrateConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Catalog.Source) {
	case CatalogSourceBuiltin:
	case CatalogSourceDatabase:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvCatalogSource, CatalogSourceDatabase)
		}
	default:
		return fmt.Errorf("%s must be %q or %q", EnvCatalogSource, CatalogSourceBuiltin, CatalogSourceDatabase)
	}

	switch strings.ToLower(c.DB.Driver) {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("%s must be %q or %q", EnvDBDriver, DBDriverPostgres, DBDriverSQLite)
	}

	switch strings.ToLower(c.QRCode.Level) {
	case "low", "medium", "high", "highest":
	default:
		return fmt.Errorf("%s must be one of low, medium, high, highest", EnvQRCodeLevel)
	}

	if _, err := time.LoadLocation(c.Reports.Timezone); err != nil {
		return fmt.Errorf("%s: %w", EnvReportTimezone, err)
	}
	return nil
}

type AppConfig struct {
	Env           string   `envconfig:"HRA_APP_ENV" default:"dev"`
	Port          string   `envconfig:"HRA_APP_PORT" default:"8080"`
	ServiceName   string   `envconfig:"HRA_SERVICE_NAME" default:"hra-api"`
	PublicBaseURL string   `envconfig:"HRA_PUBLIC_BASE_URL" default:"http://localhost:3000"`
	CORSOrigins   []string `envconfig:"HRA_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type LogConfig struct {
	Level     string `envconfig:"HRA_LOG_LEVEL" default:"info"`
	WarnStack bool   `envconfig:"HRA_LOG_WARN_STACK" default:"false"`
	Format    string `envconfig:"HRA_LOG_FORMAT" default:"json"`
}

type CatalogConfig struct {
	Source string `envconfig:"HRA_CATALOG_SOURCE" default:"builtin"`
}

// FromDatabase reports whether stores, groups, vendors and deals are read from the database.
func (c CatalogConfig) FromDatabase() bool {
	return strings.EqualFold(c.Source, CatalogSourceDatabase)
}

type DBConfig struct {
	DSN    string `envconfig:"HRA_DB_DSN"`
	Driver string `envconfig:"HRA_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"HRA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"HRA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"HRA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HRA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	SlowQuery       time.Duration `envconfig:"HRA_DB_SLOW_QUERY" default:"200ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HRA_REDIS_URL"`
	PoolSize     int           `envconfig:"HRA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HRA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HRA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HRA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HRA_REDIS_WRITE_TIMEOUT" default:"5s"`
	KeyPrefix    string        `envconfig:"HRA_REDIS_KEY_PREFIX" default:"hra"`
}

// Enabled reports whether a Redis URL was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret                 string `envconfig:"HRA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"HRA_JWT_ISSUER" default:"hra-tradeshow"`
	ExpirationMinutes      int    `envconfig:"HRA_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"HRA_REFRESH_TOKEN_TTL_MINUTES" default:"720"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"HRA_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"HRA_SESSION_SWEEP_INTERVAL" default:"5m"`
	LoginDelay    time.Duration `envconfig:"HRA_LOGIN_DELAY" default:"0s"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"HRA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"HRA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"HRA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type ReportsConfig struct {
	Timezone string `envconfig:"HRA_REPORT_TIMEZONE" default:"UTC"`
}

// Location resolves the report timezone, falling back to UTC.
func (r ReportsConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type QRCodeConfig struct {
	Size  int    `envconfig:"HRA_QRCODE_SIZE" default:"256"`
	Level string `envconfig:"HRA_QRCODE_LEVEL" default:"medium"`
}

type MigrateConfig struct {
	AutoMigrate bool   `envconfig:"HRA_AUTO_MIGRATE" default:"false"`
	Dir         string `envconfig:"HRA_MIGRATIONS_DIR" default:"pkg/migrate/migrations"`
}
