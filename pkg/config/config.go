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
	Idempotency  IdempotencyConfig
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
	Env             string        `envconfig:"STAYHARBOR_APP_ENV" required:"true"`
	Port            string        `envconfig:"STAYHARBOR_APP_PORT" required:"true"`
	LogLevel        string        `envconfig:"STAYHARBOR_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"STAYHARBOR_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"STAYHARBOR_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"STAYHARBOR_DB_DSN"`

	LegacyHost     string `envconfig:"STAYHARBOR_DB_HOST"`
	LegacyPort     int    `envconfig:"STAYHARBOR_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STAYHARBOR_DB_USER"`
	LegacyPassword string `envconfig:"STAYHARBOR_DB_PASSWORD"`
	LegacyName     string `envconfig:"STAYHARBOR_DB_NAME"`
	LegacySSLMode  string `envconfig:"STAYHARBOR_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STAYHARBOR_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STAYHARBOR_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STAYHARBOR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STAYHARBOR_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STAYHARBOR_REDIS_URL"`
	Address      string        `envconfig:"STAYHARBOR_REDIS_ADDR"`
	Password     string        `envconfig:"STAYHARBOR_REDIS_PASSWORD"`
	DB           int           `envconfig:"STAYHARBOR_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STAYHARBOR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STAYHARBOR_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STAYHARBOR_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STAYHARBOR_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STAYHARBOR_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether any Redis endpoint was configured. The idempotency
// guard is skipped entirely when it returns false.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"STAYHARBOR_IDEMPOTENCY_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STAYHARBOR_AUTO_MIGRATE" default:"false"`
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
