package config

// EnvPrefix is applied by envconfig to every binding in this package.
const EnvPrefix = "PROCURECHEF"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "PROCURECHEF_APP_ENV"
	EnvPort                   = "PROCURECHEF_APP_PORT"
	EnvDBDSN                  = "PROCURECHEF_DB_DSN"
	EnvDBHost                 = "PROCURECHEF_DB_HOST"
	EnvDBUser                 = "PROCURECHEF_DB_USER"
	EnvDBName                 = "PROCURECHEF_DB_NAME"
	EnvRedisURL               = "PROCURECHEF_REDIS_URL"
	EnvJWTSecret              = "PROCURECHEF_JWT_SECRET"
	EnvJWTIssuer              = "PROCURECHEF_JWT_ISSUER"
	EnvJWTExpMins             = "PROCURECHEF_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "PROCURECHEF_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
