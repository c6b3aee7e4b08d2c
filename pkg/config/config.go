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
	Password     PasswordConfig
	Session      SessionConfig
	Pricing      PricingConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
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
	Env          string `envconfig:"JUNAVO_APP_ENV" required:"true"`
	Port         string `envconfig:"JUNAVO_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"JUNAVO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JUNAVO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"JUNAVO_DB_DSN"`
	Driver string `envconfig:"JUNAVO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"JUNAVO_DB_HOST"`
	LegacyPort     int    `envconfig:"JUNAVO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"JUNAVO_DB_USER"`
	LegacyPassword string `envconfig:"JUNAVO_DB_PASSWORD"`
	LegacyName     string `envconfig:"JUNAVO_DB_NAME"`
	LegacySSLMode  string `envconfig:"JUNAVO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JUNAVO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JUNAVO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JUNAVO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JUNAVO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"JUNAVO_REDIS_URL" required:"true"`
	Address      string        `envconfig:"JUNAVO_REDIS_ADDR"`
	Password     string        `envconfig:"JUNAVO_REDIS_PASSWORD"`
	DB           int           `envconfig:"JUNAVO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JUNAVO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JUNAVO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JUNAVO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JUNAVO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JUNAVO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"JUNAVO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"JUNAVO_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"JUNAVO_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"JUNAVO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"JUNAVO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"JUNAVO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"JUNAVO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"JUNAVO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"JUNAVO_ARGON_KEY_LEN" default:"32"`
}

// SessionConfig bounds the anonymous storefront session documents kept in Redis.
type SessionConfig struct {
	CartTTL     time.Duration `envconfig:"JUNAVO_SESSION_CART_TTL" default:"720h"`
	WishlistTTL time.Duration `envconfig:"JUNAVO_SESSION_WISHLIST_TTL" default:"2160h"`
	PrefsTTL    time.Duration `envconfig:"JUNAVO_SESSION_PREFS_TTL" default:"2160h"`
}

// PricingConfig carries the storefront checkout constants.
type PricingConfig struct {
	ShippingFlat          string `envconfig:"JUNAVO_PRICING_SHIPPING_FLAT" default:"5.99"`
	FreeShippingThreshold string `envconfig:"JUNAVO_PRICING_FREE_SHIPPING_THRESHOLD" default:"50.00"`
	EURRate               string `envconfig:"JUNAVO_PRICING_EUR_RATE" default:"0.84"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"JUNAVO_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"JUNAVO_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"JUNAVO_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"JUNAVO_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	CatalogTopic        string `envconfig:"JUNAVO_PUBSUB_CATALOG_TOPIC" required:"true"`
	CatalogSubscription string `envconfig:"JUNAVO_PUBSUB_CATALOG_SUBSCRIPTION" required:"true"`
	OrdersTopic         string `envconfig:"JUNAVO_PUBSUB_ORDERS_TOPIC" required:"true"`
	OrdersSubscription  string `envconfig:"JUNAVO_PUBSUB_ORDERS_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"JUNAVO_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"JUNAVO_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"JUNAVO_OUTBOX_MAX_ATTEMPTS" default:"10"`
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
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
