// Package config builds the immutable process configuration.
// All settings are read once at startup; business logic receives the values
// through constructors and never touches the environment directly.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	App   AppConfig
	DB    DBConfig
	Redis RedisConfig
	Email EmailConfig
	Auth  AuthConfig
}

// AppConfig holds base application settings.
type AppConfig struct {
	Env           string // local / prod
	HTTPAddr      string // listen address, e.g. ":8080"
	RunMigrations bool   // run gorm AutoMigrate at startup
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the Postgres connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig holds the Redis connection settings.
// Redis backs the auth endpoint attempt limiter and is optional.
type RedisConfig struct {
	Addr     string // host:port, empty disables Redis
	Password string
}

// EmailConfig holds the SMTP settings used by the mail notifier.
type EmailConfig struct {
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	From     string
}

// Enabled reports whether outbound email is configured.
func (c EmailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.From != ""
}

// AuthConfig holds the authentication policy settings.
// The PIN windows and token validity are fixed policy with overridable
// defaults; handlers and usecases treat them as constants.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration // session token validity
	BcryptCost    int
	AdminEmail    string // admin bootstrap credentials
	AdminPassword string
}

// Load reads the configuration from the environment, applying defaults for
// anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "local")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("RUN_MIGRATIONS", true)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "taskapp")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("EMAIL_FROM", "")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", 5*24*time.Hour)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	cfg := &Config{
		App: AppConfig{
			Env:           v.GetString("APP_ENV"),
			HTTPAddr:      v.GetString("HTTP_ADDR"),
			RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		Email: EmailConfig{
			SMTPHost: v.GetString("SMTP_HOST"),
			SMTPPort: v.GetInt("SMTP_PORT"),
			SMTPUser: v.GetString("SMTP_USER"),
			SMTPPass: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET"),
			TokenTTL:      v.GetDuration("TOKEN_TTL"),
			BcryptCost:    v.GetInt("BCRYPT_COST"),
			AdminEmail:    v.GetString("ADMIN_EMAIL"),
			AdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if cfg.App.Env == "prod" && cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set in prod")
	}

	return cfg, nil
}
