package config

const (
	// EnvPrefix is the envconfig prefix shared by every variable below.
	EnvPrefix = "FOODIO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "FOODIO_APP_ENV"
	EnvPort   = "FOODIO_APP_PORT"

	EnvDBDSN  = "FOODIO_DB_DSN"
	EnvDBHost = "FOODIO_DB_HOST"
	EnvDBUser = "FOODIO_DB_USER"
	EnvDBName = "FOODIO_DB_NAME"

	EnvRedisURL = "FOODIO_REDIS_URL"

	EnvJWTSecret              = "FOODIO_JWT_SECRET"
	EnvJWTIssuer              = "FOODIO_JWT_ISSUER"
	EnvJWTExpMins             = "FOODIO_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FOODIO_REFRESH_TOKEN_TTL_MINUTES"
)

// legacyDBEnvVars are required when FOODIO_DB_DSN is not set.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
