// Package config loads chefctl and chefmock settings from a YAML file,
// a .env file and CHEF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// DefaultJWTSecret signs stub backend tokens when nothing else is set.
const DefaultJWTSecret = "chef-community-dev-secret"

// DefaultAllowedOrigin is the web front-end served by the dev server.
const DefaultAllowedOrigin = "http://localhost:5173"

// Config holds all configuration for the application.
type Config struct {
	Environment Environment   `mapstructure:"-"`
	API         APIConfig     `mapstructure:"api"`
	Session     SessionConfig `mapstructure:"session"`
	Log         LogConfig     `mapstructure:"log"`
	Mock        MockConfig    `mapstructure:"mock"`
}

// APIConfig points the client at a backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SessionConfig selects where the signed-in session is persisted.
type SessionConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	DSN       string `mapstructure:"dsn"`
	RedisURL  string `mapstructure:"redis_url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MockConfig configures the in-memory stub backend.
type MockConfig struct {
	Addr           string        `mapstructure:"addr"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	UploadDir      string        `mapstructure:"upload_dir"`
	Seed           bool          `mapstructure:"seed"`
}

// Load reads configuration. configFile may be empty, in which case
// chefctl.yaml is searched for in the usual places; a missing file is fine.
func Load(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("chefctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath("/etc/chefcommunity")
	}

	v.SetEnvPrefix("CHEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Environment = GetEnvironment()

	// A mounted secret overrides the stub's signing key.
	if secret := readSecret("jwt_secret"); secret != "" {
		cfg.Mock.JWTSecret = secret
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", "0s")

	sessionPath := "session.json"
	if dir, err := configDir(); err == nil {
		sessionPath = filepath.Join(dir, "session.json")
	}
	v.SetDefault("session.driver", DriverFile)
	v.SetDefault("session.path", sessionPath)
	v.SetDefault("session.dsn", "")
	v.SetDefault("session.redis_url", "")
	v.SetDefault("session.key_prefix", "chefcommunity:session")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("mock.addr", ":5000")
	v.SetDefault("mock.jwt_secret", DefaultJWTSecret)
	v.SetDefault("mock.token_ttl", "24h")
	v.SetDefault("mock.allowed_origins", []string{DefaultAllowedOrigin})
	v.SetDefault("mock.upload_dir", filepath.Join("static", "uploads"))
	v.SetDefault("mock.seed", false)
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chefcommunity"), nil
}

// readSecret reads a Docker secret from the secrets directory.
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
