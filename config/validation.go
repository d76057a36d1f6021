package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ValidateConfig checks the configuration against the requirements of its
// environment and session driver.
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: "must be an absolute URL"})
	} else if cfg.Environment == Production && u.Scheme != "https" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: "must use https in production"})
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "api.timeout", Message: "must not be negative"})
	}

	switch cfg.Session.Driver {
	case DriverFile:
		if cfg.Session.Path == "" {
			errs = append(errs, ValidationError{Field: "session.path", Message: "required for the file driver"})
		}
	case DriverSQLite, DriverPostgres:
		if cfg.Session.DSN == "" {
			errs = append(errs, ValidationError{Field: "session.dsn", Message: fmt.Sprintf("required for the %s driver", cfg.Session.Driver)})
		}
	case DriverRedis:
		if cfg.Session.RedisURL == "" {
			errs = append(errs, ValidationError{Field: "session.redis_url", Message: "required for the redis driver"})
		}
	default:
		errs = append(errs, ValidationError{Field: "session.driver", Message: fmt.Sprintf("unknown driver %q", cfg.Session.Driver)})
	}

	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", cfg.Log.Level)})
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		errs = append(errs, ValidationError{Field: "log.format", Message: "must be json or console"})
	}

	if cfg.Mock.JWTSecret == "" {
		errs = append(errs, ValidationError{Field: "mock.jwt_secret", Message: "required"})
	} else if cfg.Environment == Production && cfg.Mock.JWTSecret == DefaultJWTSecret {
		errs = append(errs, ValidationError{Field: "mock.jwt_secret", Message: "the development secret cannot be used in production"})
	}

	if len(cfg.Mock.AllowedOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "mock.allowed_origins", Message: "at least one origin is required"})
	}
	for _, origin := range cfg.Mock.AllowedOrigins {
		if strings.TrimSpace(origin) == "" {
			errs = append(errs, ValidationError{Field: "mock.allowed_origins", Message: "origins must not be blank"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
