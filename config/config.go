// Package config handles loading and managing application configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/fitstack/momo-payments/internal/core/domain"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	Server ServerConfig

	// Logging configuration
	Log LogConfig

	// MTN Mobile Money configuration
	MoMo MoMoConfig

	// Merchant backend that receives processed callbacks
	Backend BackendConfig

	// Security settings
	Security SecurityConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    string
	GinMode string // "debug", "release", or "test"
}

// LogConfig holds zap logger settings.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// MoMoConfig holds the MTN API credentials and endpoints.
type MoMoConfig struct {
	APIUserID         string
	APIKey            string
	SubscriptionKey   string
	TargetEnvironment string // sandbox or production
	CallbackHost      string // providerCallbackHost for sandbox API users
	CallbackURL       string // X-Callback-Url sent with purchases
	BaseURL           string // overrides the sandbox/live host
	HTTPTimeout       time.Duration
}

// BackendConfig holds the merchant backend notification settings.
type BackendConfig struct {
	NotifyURL string
	APIKey    string
}

// SecurityConfig holds security-related configuration.
type SecurityConfig struct {
	ServiceAPIKey         string // Bearer key for /api/v1; empty disables the check
	RequireHTTPSCallbacks bool
}

// Load reads configuration from environment variables.
// Returns a Config struct with all settings populated.
func Load() *Config {
	targetEnv := getEnv("MOMO_TARGET_ENVIRONMENT", string(domain.EnvironmentSandbox))

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		MoMo: MoMoConfig{
			APIUserID:         getEnv("MOMO_API_USER_ID", ""),
			APIKey:            getEnv("MOMO_API_KEY", ""),
			SubscriptionKey:   getEnv("MOMO_SUBSCRIPTION_KEY", ""),
			TargetEnvironment: targetEnv,
			CallbackHost:      getEnv("MOMO_CALLBACK_HOST", "webhook.site"),
			CallbackURL:       getEnv("MOMO_CALLBACK_URL", ""),
			BaseURL:           getEnv("MOMO_BASE_URL", ""),
			HTTPTimeout:       time.Duration(getEnvInt("MOMO_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Backend: BackendConfig{
			NotifyURL: getEnv("BACKEND_NOTIFY_URL", ""),
			APIKey:    getEnv("BACKEND_API_KEY", ""),
		},
		Security: SecurityConfig{
			ServiceAPIKey:         getEnv("SERVICE_API_KEY", ""),
			RequireHTTPSCallbacks: getEnvBool("REQUIRE_HTTPS_CALLBACKS", targetEnv == string(domain.EnvironmentProduction)),
		},
	}
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	var errs []error

	if _, err := domain.ParseEnvironment(c.MoMo.TargetEnvironment); err != nil {
		errs = append(errs, fmt.Errorf("MOMO_TARGET_ENVIRONMENT: %w", err))
	}
	if c.MoMo.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("MOMO_HTTP_TIMEOUT_SECONDS must be positive"))
	}
	for name, value := range map[string]string{
		"MOMO_BASE_URL":      c.MoMo.BaseURL,
		"MOMO_CALLBACK_URL":  c.MoMo.CallbackURL,
		"BACKEND_NOTIFY_URL": c.Backend.NotifyURL,
	} {
		if value == "" {
			continue
		}
		if u, err := url.Parse(value); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL", name))
		}
	}

	return errors.Join(errs...)
}

// GatewayConfig converts the MoMo section into the gateway configuration.
func (c *Config) GatewayConfig() (domain.GatewayConfig, error) {
	env, err := domain.ParseEnvironment(c.MoMo.TargetEnvironment)
	if err != nil {
		return domain.GatewayConfig{}, err
	}
	return domain.GatewayConfig{
		Credentials: domain.Credentials{
			APIUserID:       c.MoMo.APIUserID,
			APIKey:          c.MoMo.APIKey,
			SubscriptionKey: c.MoMo.SubscriptionKey,
		},
		TargetEnvironment: env,
		CallbackHost:      c.MoMo.CallbackHost,
		BaseURL:           c.MoMo.BaseURL,
	}, nil
}

// getEnv retrieves an environment variable with a fallback default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as an integer with a fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvBool retrieves an environment variable as a boolean with a fallback.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
