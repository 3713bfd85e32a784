// Package config loads server configuration from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// DefaultJWTSecret is only acceptable outside production.
	DefaultJWTSecret = "dev-secret-change-in-production"
)

var ErrDefaultSecret = errors.New("JWT_SECRET must be set in production environment")

type Config struct {
	Port     string `yaml:"port"`
	Env      string `yaml:"env"`
	BasePath string `yaml:"base_path"`
	LogLevel string `yaml:"log_level"`
	// TrustProxy honors X-Forwarded-For / X-Real-IP from a fronting proxy.
	TrustProxy bool `yaml:"trust_proxy"`

	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	Auth     AuthConfig     `yaml:"auth"`
}

type DatabaseConfig struct {
	// Driver is "mysql" or "sqlite".
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

type CORSConfig struct {
	// Origins lists allowed origins. Empty allows any origin.
	Origins []string `yaml:"origins"`
}

type AuthConfig struct {
	// RateLimit is requests per second per IP on register and login. Zero
	// disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:     "8080",
		Env:      EnvDevelopment,
		LogLevel: "info",
		Database: DatabaseConfig{
			Driver: "mysql",
			DSN:    "root:password@tcp(127.0.0.1:3306)/taskboard",
		},
		JWT: JWTConfig{
			Secret: DefaultJWTSecret,
			Expiry: 7 * 24 * time.Hour,
		},
		Auth: AuthConfig{
			RateLimit: 5,
			RateBurst: 10,
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when
// empty, CONFIG_FILE is consulted. Environment variables override the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	if cfg.JWT.Secret == DefaultJWTSecret {
		slog.Warn("using default JWT secret; set JWT_SECRET outside development")
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Port, "PORT")
	setString(&cfg.Env, "ENV")
	setString(&cfg.BasePath, "BASE_PATH")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_DSN")
	setString(&cfg.JWT.Secret, "JWT_SECRET")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORS.Origins = splitList(v)
	}

	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AUTO_MIGRATE: %w", err)
		}
		cfg.Database.AutoMigrate = b
	}
	if v := os.Getenv("TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRUST_PROXY: %w", err)
		}
		cfg.TrustProxy = b
	}
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("JWT_EXPIRY: %w", err)
		}
		cfg.JWT.Expiry = d
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("AUTH_RATE_LIMIT: %w", err)
		}
		cfg.Auth.RateLimit = f
	}
	if v := os.Getenv("AUTH_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AUTH_RATE_BURST: %w", err)
		}
		cfg.Auth.RateBurst = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn must not be empty")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret must not be empty")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("jwt expiry must be positive, got %s", c.JWT.Expiry)
	}
	if c.Auth.RateLimit < 0 || c.Auth.RateBurst < 0 {
		return errors.New("auth rate limit and burst must not be negative")
	}
	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base path %q must start with /", c.BasePath)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Env == EnvProduction && c.JWT.Secret == DefaultJWTSecret {
		return ErrDefaultSecret
	}
	return nil
}

// IsProduction reports whether the server runs in production.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
