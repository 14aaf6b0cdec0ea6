package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "QUOTEDESK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "QUOTEDESK_DB_DSN"
	EnvDBHost = "QUOTEDESK_DB_HOST"
	EnvDBUser = "QUOTEDESK_DB_USER"
	EnvDBName = "QUOTEDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Pricing      PricingConfig
	Document     DocumentConfig
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
	Env          string `envconfig:"QUOTEDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTEDESK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"QUOTEDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTEDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTEDESK_DB_DSN"`
	Driver string `envconfig:"QUOTEDESK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUOTEDESK_DB_HOST"`
	LegacyPort     int    `envconfig:"QUOTEDESK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUOTEDESK_DB_USER"`
	LegacyPassword string `envconfig:"QUOTEDESK_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUOTEDESK_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUOTEDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTEDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTEDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTEDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTEDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret string `envconfig:"QUOTEDESK_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"QUOTEDESK_JWT_ISSUER" required:"true"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"QUOTEDESK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"QUOTEDESK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"QUOTEDESK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"QUOTEDESK_GCS_BUCKET_NAME" required:"true"`
	DownloadURLExpiry time.Duration `envconfig:"QUOTEDESK_GCS_DOWNLOAD_URL_EXPIRY" default:"24h"`
}

type PricingConfig struct {
	DefaultGSTRate float64 `envconfig:"QUOTEDESK_DEFAULT_GST_RATE" default:"10"`
}

type DocumentConfig struct {
	IssuerName     string `envconfig:"QUOTEDESK_DOCUMENT_ISSUER_NAME" default:"QuoteDesk"`
	CurrencySymbol string `envconfig:"QUOTEDESK_DOCUMENT_CURRENCY_SYMBOL" default:"$"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"QUOTEDESK_AUTO_MIGRATE" default:"false"`
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
