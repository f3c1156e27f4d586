package config

// EnvPrefix is passed to envconfig; every field carries its full HRA_* name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourceDatabase = "database"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv        = "HRA_APP_ENV"
	EnvPort          = "HRA_APP_PORT"
	EnvServiceName   = "HRA_SERVICE_NAME"
	EnvPublicBaseURL = "HRA_PUBLIC_BASE_URL"
	EnvCORSOrigins   = "HRA_CORS_ORIGINS"

	EnvLogLevel     = "HRA_LOG_LEVEL"
	EnvLogWarnStack = "HRA_LOG_WARN_STACK"
	EnvLogFormat    = "HRA_LOG_FORMAT"

	EnvCatalogSource = "HRA_CATALOG_SOURCE"

	EnvDBDriver = "HRA_DB_DRIVER"
	EnvDBDSN    = "HRA_DB_DSN"

	EnvRedisURL = "HRA_REDIS_URL"

	EnvJWTSecret              = "HRA_JWT_SECRET"
	EnvJWTIssuer              = "HRA_JWT_ISSUER"
	EnvJWTExpMins             = "HRA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "HRA_REFRESH_TOKEN_TTL_MINUTES"

	EnvSessionIdleTTL       = "HRA_SESSION_IDLE_TTL"
	EnvSessionSweepInterval = "HRA_SESSION_SWEEP_INTERVAL"
	EnvLoginDelay           = "HRA_LOGIN_DELAY"

	EnvReportTimezone = "HRA_REPORT_TIMEZONE"

	EnvQRCodeSize  = "HRA_QRCODE_SIZE"
	EnvQRCodeLevel = "HRA_QRCODE_LEVEL"

	EnvAutoMigrate   = "HRA_AUTO_MIGRATE"
	EnvMigrationsDir = "HRA_MIGRATIONS_DIR"
)
