package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every configuration variable read by Load.
const EnvPrefix = "vasstra"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Snapshot backend selectors for the persistent key-value store.
const (
	KVBackendMemory = "memory"
	KVBackendRedis  = "redis"
	KVBackendSQL    = "sql"
)

const (
	EnvDBDSN  = "VASSTRA_DB_DSN"
	EnvDBHost = "VASSTRA_DB_HOST"
	EnvDBUser = "VASSTRA_DB_USER"
	EnvDBName = "VASSTRA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Backend      BackendConfig
	KV           KVConfig
	Redis        RedisConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.KV.Backend == KVBackendSQL {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VASSTRA_APP_ENV" default:"dev"`
	Port         string `envconfig:"VASSTRA_APP_PORT" default:"8086"`
	LogLevel     string `envconfig:"VASSTRA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VASSTRA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points the stores at the storefront REST backend.
type BackendConfig struct {
	BaseURL       string        `envconfig:"VASSTRA_BACKEND_BASE_URL" default:"http://localhost:5000/api"`
	Timeout       time.Duration `envconfig:"VASSTRA_BACKEND_TIMEOUT" default:"10s"`
	SearchTimeout time.Duration `envconfig:"VASSTRA_BACKEND_SEARCH_TIMEOUT" default:"8s"`
	ProductFetchN int           `envconfig:"VASSTRA_BACKEND_PRODUCT_FETCH_LIMIT" default:"100"`
	RecentViewedN int           `envconfig:"VASSTRA_RECENTLY_VIEWED_LIMIT" default:"8"`
	RelatedLimitN int           `envconfig:"VASSTRA_RELATED_PRODUCTS_LIMIT" default:"4"`
}

// KVConfig selects the snapshot persistence backend.
type KVConfig struct {
	Backend   string `envconfig:"VASSTRA_KV_BACKEND" default:"memory"`
	Namespace string `envconfig:"VASSTRA_KV_NAMESPACE" default:"vst"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VASSTRA_REDIS_URL"`
	Address      string        `envconfig:"VASSTRA_REDIS_ADDR"`
	Password     string        `envconfig:"VASSTRA_REDIS_PASSWORD"`
	DB           int           `envconfig:"VASSTRA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VASSTRA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VASSTRA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VASSTRA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VASSTRA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VASSTRA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type DBConfig struct {
	DSN    string `envconfig:"VASSTRA_DB_DSN"`
	Driver string `envconfig:"VASSTRA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VASSTRA_DB_HOST"`
	LegacyPort     int    `envconfig:"VASSTRA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VASSTRA_DB_USER"`
	LegacyPassword string `envconfig:"VASSTRA_DB_PASSWORD"`
	LegacyName     string `envconfig:"VASSTRA_DB_NAME"`
	LegacySSLMode  string `envconfig:"VASSTRA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VASSTRA_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"VASSTRA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"VASSTRA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VASSTRA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VASSTRA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VASSTRA_AUTO_MIGRATE" default:"false"`
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
