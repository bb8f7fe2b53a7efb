package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	OAuth    OAuthConfig
	Logger   LoggerConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	BaseURL     string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	AutoMigrate   bool
	MigrationsDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured. Without one the
// session stores fall back to process memory.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	SignInPath string
}

type OAuthConfig struct {
	GitHub   OAuthClient
	Google   OAuthClient
	Facebook OAuthClient
}

type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

func (c OAuthClient) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type LoggerConfig struct {
	Level  string
	Format string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_BASE_URL", "http://localhost:3000")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("SESSION_TTL", 30*24*time.Hour)
	v.SetDefault("SESSION_COOKIE_NAME", "session_token")
	v.SetDefault("SESSION_SIGN_IN_PATH", "/sign-in")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// MigrateConfig is the subset cmd/migrate needs. It has no HTTP, session or
// OAuth settings so schema changes can run with database credentials alone.
type MigrateConfig struct {
	Database DatabaseConfig
	Logger   LoggerConfig
}

// LoadMigrate reads the database and logger settings from the process
// environment. DB_HOST, DB_NAME and DB_USER are required.
func LoadMigrate() (MigrateConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := MigrateConfig{Database: databaseFromViper(v), Logger: loggerFromViper(v)}

	var missing []string
	for _, req := range []struct{ key, val string }{
		{"DB_HOST", cfg.Database.DBHost},
		{"DB_NAME", cfg.Database.DBName},
		{"DB_USER", cfg.Database.DBUser},
	} {
		if req.val == "" {
			missing = append(missing, req.key)
		}
	}
	if len(missing) > 0 {
		return MigrateConfig{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	return cfg, nil
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		BaseURL:     strings.TrimRight(opt("APP_BASE_URL"), "/"),
	}

	cfg.Database = databaseFromViper(v)

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:     req("SESSION_SECRET"),
		TTL:        v.GetDuration("SESSION_TTL"),
		CookieName: opt("SESSION_COOKIE_NAME"),
		SignInPath: opt("SESSION_SIGN_IN_PATH"),
	}

	cfg.OAuth = OAuthConfig{
		GitHub:   OAuthClient{ClientID: opt("OAUTH_GITHUB_CLIENT_ID"), ClientSecret: opt("OAUTH_GITHUB_CLIENT_SECRET")},
		Google:   OAuthClient{ClientID: opt("OAUTH_GOOGLE_CLIENT_ID"), ClientSecret: opt("OAUTH_GOOGLE_CLIENT_SECRET")},
		Facebook: OAuthClient{ClientID: opt("OAUTH_FACEBOOK_CLIENT_ID"), ClientSecret: opt("OAUTH_FACEBOOK_CLIENT_SECRET")},
	}

	cfg.Logger = loggerFromViper(v)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if cfg.Session.TTL <= 0 {
		return Config{}, fmt.Errorf("invalid SESSION_TTL: %s", cfg.Session.TTL)
	}

	return cfg, nil
}

func databaseFromViper(v *viper.Viper) DatabaseConfig {
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}
	return DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
		AutoMigrate:           v.GetBool("DB_AUTO_MIGRATE"),
		MigrationsDir:         opt("MIGRATIONS_DIR"),
	}
}

func loggerFromViper(v *viper.Viper) LoggerConfig {
	return LoggerConfig{
		Level:  strings.TrimSpace(v.GetString("LOG_LEVEL")),
		Format: strings.TrimSpace(v.GetString("LOG_FORMAT")),
	}
}
