package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	AppURL                 string
	PublicURL              string
	Env                    string
	DatabaseDSN            string
	RateLimit              int
	RedisEnabled           bool
	RedisAddr              string
	RedisKeyPrefix         string
	JWTSecret              string
	JWTTTL                 time.Duration
	CORSOrigin             string
	AuthEmail              string
	AuthPassword           string
	AuthPasswordHash       string
	MagicLinkTTL           time.Duration
	MagicLinkDebug         bool
	MagicLinkCleanup       time.Duration
	ShutdownTimeoutSeconds int
	LogLevel               string
}

func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads configuration from the environment. A .env file, when present,
// is expected to have been loaded into the environment already.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	appURL := fmt.Sprintf("%s:%s", v.GetString("APP_HOST"), v.GetString("APP_PORT"))
	publicURL := v.GetString("PUBLIC_URL")
	if publicURL == "" {
		publicURL = "http://" + appURL
	}

	cfg := Config{
		AppURL:                 appURL,
		PublicURL:              publicURL,
		Env:                    v.GetString("APP_ENV"),
		DatabaseDSN:            v.GetString("DATABASE_DSN"),
		RateLimit:              v.GetInt("RATE_LIMIT_PER_MINUTE"),
		RedisEnabled:           v.GetBool("REDIS_ENABLED"),
		RedisAddr:              fmt.Sprintf("%s:%s", v.GetString("REDIS_HOST"), v.GetString("REDIS_PORT")),
		RedisKeyPrefix:         v.GetString("REDIS_KEY_PREFIX"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTTTL:                 time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		CORSOrigin:             v.GetString("CORS_ORIGIN"),
		AuthEmail:              v.GetString("AUTH_EMAIL"),
		AuthPassword:           v.GetString("AUTH_PASSWORD"),
		AuthPasswordHash:       v.GetString("AUTH_PASSWORD_HASH"),
		MagicLinkTTL:           time.Duration(v.GetInt("MAGIC_LINK_TTL_MINUTES")) * time.Minute,
		MagicLinkDebug:         v.GetBool("MAGIC_LINK_DEBUG"),
		MagicLinkCleanup:       time.Duration(v.GetInt("MAGIC_LINK_CLEANUP_SECONDS")) * time.Second,
		ShutdownTimeoutSeconds: v.GetInt("SHUTDOWN_TIMEOUT_SECONDS"),
		LogLevel:               v.GetString("LOG_LEVEL"),
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_HOST", "127.0.0.1")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("DATABASE_DSN", "board.db")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_KEY_PREFIX", "task_board:revoked:")
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")
	v.SetDefault("JWT_TTL_MINUTES", 60*24*7)
	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("AUTH_EMAIL", "admin@example.com")
	v.SetDefault("AUTH_PASSWORD", "password")
	v.SetDefault("MAGIC_LINK_TTL_MINUTES", 15)
	v.SetDefault("MAGIC_LINK_DEBUG", false)
	v.SetDefault("MAGIC_LINK_CLEANUP_SECONDS", 300)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 20)
	v.SetDefault("LOG_LEVEL", "info")
}

func validate(cfg Config) error {
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return fmt.Errorf("APP_ENV must be %q or %q", EnvDevelopment, EnvProduction)
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if cfg.Production() && cfg.JWTSecret == "dev-secret-change-me" {
		return errors.New("JWT_SECRET must be set in production")
	}
	if cfg.JWTTTL <= 0 {
		return errors.New("JWT_TTL_MINUTES must be greater than 0")
	}
	if cfg.AuthEmail == "" {
		return errors.New("AUTH_EMAIL must not be empty")
	}
	if cfg.AuthPassword == "" && cfg.AuthPasswordHash == "" {
		return errors.New("one of AUTH_PASSWORD or AUTH_PASSWORD_HASH must be set")
	}
	if cfg.Production() && cfg.MagicLinkDebug {
		return errors.New("MAGIC_LINK_DEBUG must not be enabled in production")
	}
	if cfg.MagicLinkTTL <= 0 {
		return errors.New("MAGIC_LINK_TTL_MINUTES must be greater than 0")
	}
	if cfg.MagicLinkCleanup <= 0 {
		return errors.New("MAGIC_LINK_CLEANUP_SECONDS must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}
