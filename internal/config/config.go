package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

const (
	GatewayRazorpay = "razorpay"
	GatewaySandbox  = "sandbox"
)

type Config struct {
	Env         string
	HTTPAddr    string
	CORSOrigins []string

	Database  DatabaseConfig
	Gateway   GatewayConfig
	Session   SessionConfig
	Log       LogConfig
	Reconcile ReconcileConfig
	Currency  CurrencyConfig
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	Name     string
	Username string
	Password string
	Schema   string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN prefers DATABASE_URL and falls back to the BLUEPRINT_DB_* parts.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		c.Username, c.Password, c.Host, c.Port, c.Name, c.Schema,
	)
}

type GatewayConfig struct {
	Mode      string
	KeyID     string
	KeySecret string
}

type SessionConfig struct {
	Secret string
	MaxAge time.Duration
	Secure bool
}

type LogConfig struct {
	Level       string
	Format      string
	Development bool
}

type ReconcileConfig struct {
	Interval time.Duration
	Grace    time.Duration
	Batch    int

	// MaxAttempts stops retries of an entry; it stays open for admins.
	MaxAttempts int
}

type CurrencyConfig struct {
	SourceURL     string
	TTL           time.Duration
	FallbackRate  float64
	CountryHeader string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")

	v.SetDefault("BLUEPRINT_DB_HOST", "localhost")
	v.SetDefault("BLUEPRINT_DB_PORT", "5432")
	v.SetDefault("BLUEPRINT_DB_SCHEMA", "public")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("GATEWAY_MODE", GatewayRazorpay)

	v.SetDefault("SESSION_MAX_AGE", "24h")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("RECONCILE_INTERVAL", "1m")
	v.SetDefault("RECONCILE_GRACE", "2m")
	v.SetDefault("RECONCILE_BATCH", 50)
	v.SetDefault("RECONCILE_MAX_ATTEMPTS", 10)

	v.SetDefault("RATE_SOURCE_URL", "https://api.exchangerate-api.com/v4/latest/INR")
	v.SetDefault("RATE_TTL", "1h")
	v.SetDefault("RATE_FALLBACK", 0.012)
	v.SetDefault("COUNTRY_HEADER", "X-Vercel-IP-Country")
}

// Load reads configuration from the environment (and .env, if present).
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := v.GetString("APP_ENV")
	cfg := &Config{
		Env:         env,
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("BLUEPRINT_DB_HOST"),
			Port:            v.GetString("BLUEPRINT_DB_PORT"),
			Name:            v.GetString("BLUEPRINT_DB_DATABASE"),
			Username:        v.GetString("BLUEPRINT_DB_USERNAME"),
			Password:        v.GetString("BLUEPRINT_DB_PASSWORD"),
			Schema:          v.GetString("BLUEPRINT_DB_SCHEMA"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Gateway: GatewayConfig{
			Mode:      strings.ToLower(v.GetString("GATEWAY_MODE")),
			KeyID:     v.GetString("RAZORPAY_KEY_ID"),
			KeySecret: v.GetString("RAZORPAY_KEY_SECRET"),
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			MaxAge: v.GetDuration("SESSION_MAX_AGE"),
			Secure: env == "production",
		},
		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Format:      v.GetString("LOG_FORMAT"),
			Development: env != "production",
		},
		Reconcile: ReconcileConfig{
			Interval: v.GetDuration("RECONCILE_INTERVAL"),
			Grace:    v.GetDuration("RECONCILE_GRACE"),
			Batch:    v.GetInt("RECONCILE_BATCH"),

			MaxAttempts: v.GetInt("RECONCILE_MAX_ATTEMPTS"),
		},
		Currency: CurrencyConfig{
			SourceURL:     v.GetString("RATE_SOURCE_URL"),
			TTL:           v.GetDuration("RATE_TTL"),
			FallbackRate:  v.GetFloat64("RATE_FALLBACK"),
			CountryHeader: v.GetString("COUNTRY_HEADER"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Gateway.Mode {
	case GatewayRazorpay:
		if c.Gateway.KeyID == "" || c.Gateway.KeySecret == "" {
			errs = append(errs, errors.New("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required in razorpay mode"))
		}
	case GatewaySandbox:
		if c.Gateway.KeySecret == "" {
			errs = append(errs, errors.New("RAZORPAY_KEY_SECRET is required to sign sandbox payments"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown GATEWAY_MODE %q", c.Gateway.Mode))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	} else if len(c.Session.Secret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes"))
	}
	if c.Reconcile.Interval <= 0 {
		errs = append(errs, errors.New("RECONCILE_INTERVAL must be positive"))
	}
	if c.Reconcile.MaxAttempts <= 0 {
		errs = append(errs, errors.New("RECONCILE_MAX_ATTEMPTS must be positive"))
	}
	if c.Currency.TTL <= 0 {
		errs = append(errs, errors.New("RATE_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
