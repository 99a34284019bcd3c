package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	ReferenceData ReferenceDataConfig
	Export        ExportConfig
	OrderCode     OrderCodeConfig
	Transfer      TransferConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"FULFILLMENT_APP_ENV" required:"true"`
	Port         string `envconfig:"FULFILLMENT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FULFILLMENT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FULFILLMENT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FULFILLMENT_DB_DSN"`
	Driver string `envconfig:"FULFILLMENT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FULFILLMENT_DB_HOST"`
	LegacyPort     int    `envconfig:"FULFILLMENT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FULFILLMENT_DB_USER"`
	LegacyPassword string `envconfig:"FULFILLMENT_DB_PASSWORD"`
	LegacyName     string `envconfig:"FULFILLMENT_DB_NAME"`
	LegacySSLMode  string `envconfig:"FULFILLMENT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FULFILLMENT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FULFILLMENT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FULFILLMENT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FULFILLMENT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ReferenceDataConfig points at the reference-data service used for
// facility, orderable and processing-period lookups.
type ReferenceDataConfig struct {
	BaseURL string        `envconfig:"FULFILLMENT_REFERENCEDATA_URL" required:"true"`
	Timeout time.Duration `envconfig:"FULFILLMENT_REFERENCEDATA_TIMEOUT" default:"10s"`
}

type ExportConfig struct {
	IncludeZeroQuantity bool `envconfig:"FULFILLMENT_EXPORT_INCLUDE_ZERO_QUANTITY" default:"true"`
}

// OrderCodeConfig shapes generated order codes: an optional prefix, an
// optional program code segment, the external reference, and an optional
// emergency/regular suffix.
type OrderCodeConfig struct {
	Prefix             string `envconfig:"FULFILLMENT_ORDER_CODE_PREFIX" default:"ORDER-"`
	IncludePrefix      bool   `envconfig:"FULFILLMENT_ORDER_CODE_INCLUDE_PREFIX" default:"true"`
	IncludeProgramCode bool   `envconfig:"FULFILLMENT_ORDER_CODE_INCLUDE_PROGRAM_CODE" default:"false"`
	IncludeTypeSuffix  bool   `envconfig:"FULFILLMENT_ORDER_CODE_INCLUDE_TYPE_SUFFIX" default:"false"`
}

// TransferConfig controls outbound order file delivery.
type TransferConfig struct {
	FTPSendEnabled bool          `envconfig:"FULFILLMENT_TRANSFER_FTP_SEND_ENABLED" default:"true"`
	ConnectTimeout time.Duration `envconfig:"FULFILLMENT_TRANSFER_CONNECT_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FULFILLMENT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FULFILLMENT_AUTO_MIGRATE" default:"false"`
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
