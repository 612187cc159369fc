package config

// EnvPrefix is passed to envconfig; individual fields carry fully
// qualified envconfig tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Environment variable names referenced in error messages and tests.
const (
	EnvAppEnv     = "KASMETICS_APP_ENV"
	EnvPort       = "KASMETICS_APP_PORT"
	EnvDBDSN      = "KASMETICS_DB_DSN"
	EnvDBHost     = "KASMETICS_DB_HOST"
	EnvDBUser     = "KASMETICS_DB_USER"
	EnvDBName     = "KASMETICS_DB_NAME"
	EnvRedisURL   = "KASMETICS_REDIS_URL"
	EnvJWTSecret  = "KASMETICS_JWT_SECRET"
	EnvJWTIssuer  = "KASMETICS_JWT_ISSUER"
	EnvJWTExpMins = "KASMETICS_JWT_EXPIRATION_MINUTES"
)

var fallbackDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
