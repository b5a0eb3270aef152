package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Admin        AdminConfig
	Stripe       StripeConfig
	Checkout     CheckoutConfig
	Health       HealthConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STRINGSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"STRINGSHOP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STRINGSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STRINGSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STRINGSHOP_DB_DSN"`
	Driver string `envconfig:"STRINGSHOP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STRINGSHOP_DB_HOST"`
	LegacyPort     int    `envconfig:"STRINGSHOP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STRINGSHOP_DB_USER"`
	LegacyPassword string `envconfig:"STRINGSHOP_DB_PASSWORD"`
	LegacyName     string `envconfig:"STRINGSHOP_DB_NAME"`
	LegacySSLMode  string `envconfig:"STRINGSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STRINGSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STRINGSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STRINGSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STRINGSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STRINGSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STRINGSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"STRINGSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"STRINGSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STRINGSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STRINGSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STRINGSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STRINGSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STRINGSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret   string `envconfig:"STRINGSHOP_JWT_SECRET" required:"true"`
	Issuer   string `envconfig:"STRINGSHOP_JWT_ISSUER" required:"true"`
	Audience string `envconfig:"STRINGSHOP_JWT_AUDIENCE"`
}

type AdminConfig struct {
	// Email allow-listed as an admin even without the admin role claim.
	Email string `envconfig:"STRINGSHOP_ADMIN_EMAIL"`
}

type StripeConfig struct {
	APIKey string `envconfig:"STRINGSHOP_STRIPE_API_KEY"`
	Secret string `envconfig:"STRINGSHOP_STRIPE_WEBHOOK_SECRET"`
	Env    string `envconfig:"STRINGSHOP_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CheckoutConfig struct {
	SuccessURL string `envconfig:"STRINGSHOP_CHECKOUT_SUCCESS_URL" default:"http://localhost:4321/order/success"`
	CancelURL  string `envconfig:"STRINGSHOP_CHECKOUT_CANCEL_URL" default:"http://localhost:4321/shop"`
	ReviewURL  string `envconfig:"STRINGSHOP_REVIEW_URL"`
}

type HealthConfig struct {
	ProbeTimeout time.Duration `envconfig:"STRINGSHOP_HEALTH_PROBE_TIMEOUT" default:"3s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STRINGSHOP_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   "/" + db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
