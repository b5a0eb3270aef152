package config

// EnvPrefix is empty because every variable carries the STRINGSHOP_ prefix in
// its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "STRINGSHOP_APP_ENV"
	EnvPort     = "STRINGSHOP_APP_PORT"
	EnvDBDSN    = "STRINGSHOP_DB_DSN"
	EnvDBHost   = "STRINGSHOP_DB_HOST"
	EnvDBUser   = "STRINGSHOP_DB_USER"
	EnvDBName   = "STRINGSHOP_DB_NAME"
	EnvRedisURL = "STRINGSHOP_REDIS_URL"

	EnvJWTSecret = "STRINGSHOP_JWT_SECRET"
	EnvJWTIssuer = "STRINGSHOP_JWT_ISSUER"

	EnvAdminEmail          = "STRINGSHOP_ADMIN_EMAIL"
	EnvStripeAPIKey        = "STRINGSHOP_STRIPE_API_KEY"
	EnvStripeWebhookSecret = "STRINGSHOP_STRIPE_WEBHOOK_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
