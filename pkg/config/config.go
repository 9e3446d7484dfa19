package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable read by the service.
	EnvPrefix = "atelie"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "ATELIE_DB_DSN"
	EnvDBHost = "ATELIE_DB_HOST"
	EnvDBUser = "ATELIE_DB_USER"
	EnvDBName = "ATELIE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Lists        ListsConfig
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
	Env          string `envconfig:"ATELIE_APP_ENV" required:"true"`
	Port         string `envconfig:"ATELIE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ATELIE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ATELIE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ATELIE_DB_DSN"`
	Driver string `envconfig:"ATELIE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ATELIE_DB_HOST"`
	LegacyPort     int    `envconfig:"ATELIE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ATELIE_DB_USER"`
	LegacyPassword string `envconfig:"ATELIE_DB_PASSWORD"`
	LegacyName     string `envconfig:"ATELIE_DB_NAME"`
	LegacySSLMode  string `envconfig:"ATELIE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ATELIE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ATELIE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ATELIE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ATELIE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ATELIE_REDIS_URL"`
	Address      string        `envconfig:"ATELIE_REDIS_ADDR"`
	Password     string        `envconfig:"ATELIE_REDIS_PASSWORD"`
	DB           int           `envconfig:"ATELIE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ATELIE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ATELIE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ATELIE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ATELIE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ATELIE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// StorageConfig locates the public object store that serves product and art
// images. Assets are addressed by URL concatenation only; this service never
// calls a storage API.
type StorageConfig struct {
	PublicBaseURL string `envconfig:"ATELIE_STORAGE_PUBLIC_BASE_URL" required:"true"`
	Bucket        string `envconfig:"ATELIE_STORAGE_BUCKET" default:"produtos"`
}

// ListsConfig carries the fixed page size each list view renders with.
type ListsConfig struct {
	OrdersPerPage         int           `envconfig:"ATELIE_LISTS_ORDERS_PER_PAGE" default:"15"`
	StockPerPage          int           `envconfig:"ATELIE_LISTS_STOCK_PER_PAGE" default:"10"`
	PatientsPerPage       int           `envconfig:"ATELIE_LISTS_PATIENTS_PER_PAGE" default:"18"`
	ProducerImagesPerPage int           `envconfig:"ATELIE_LISTS_PRODUCER_IMAGES_PER_PAGE" default:"10"`
	ProducerCacheTTL      time.Duration `envconfig:"ATELIE_LISTS_PRODUCER_CACHE_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ATELIE_AUTO_MIGRATE" default:"false"`
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
