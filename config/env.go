package config

import (
	"os"
	"strings"
)

// Environment is the runtime environment the client or stub runs in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment detects the environment. CI=true wins over ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps a name to an Environment, defaulting to development.
func ParseEnvironment(name string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(name))) {
	case Production, "prod":
		return Production
	case Test:
		return Test
	case CI:
		return CI
	default:
		return Development
	}
}

func IsDevelopment() bool { return GetEnvironment() == Development }
func IsTest() bool        { return GetEnvironment() == Test }
func IsCI() bool          { return GetEnvironment() == CI }
func IsProduction() bool  { return GetEnvironment() == Production }
