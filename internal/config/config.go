// Package config provides configuration management for the hello service.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port              string
	Mode              string // gin mode: "release", "debug" or "test"
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	AllowOrigins      []string
	TrustedProxies    []string // IPs or CIDRs allowed to set X-Forwarded-For; none by default
	GzipEnabled       bool
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Enabled  bool
	Requests int64
	Period   time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

var (
	validModes     = map[string]bool{"release": true, "debug": true, "test": true}
	validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Load loads configuration from an optional .env file and environment variables
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv paths. Missing files are skipped and
// variables already present in the environment are never overridden.
func LoadFiles(envFiles ...string) (*Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			Mode:              getEnv("GIN_MODE", "release"),
			ReadTimeout:       getEnvAsDuration("READ_TIMEOUT", "5s"),
			ReadHeaderTimeout: getEnvAsDuration("READ_HEADER_TIMEOUT", "2s"),
			WriteTimeout:      getEnvAsDuration("WRITE_TIMEOUT", "10s"),
			IdleTimeout:       getEnvAsDuration("IDLE_TIMEOUT", "60s"),
			ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", "10s"),
			AllowOrigins:      getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
			TrustedProxies:    getEnvAsList("TRUSTED_PROXIES", nil),
			GzipEnabled:       getEnvAsBool("GZIP_ENABLED", true),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getEnvAsBool("RATE_LIMIT_ENABLED", false),
			Requests: int64(getEnvAsInt("RATE_LIMIT_REQUESTS", 100)),
			Period:   getEnvAsDuration("RATE_LIMIT_PERIOD", "1m"),
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Server.Port)
	}
	if !validModes[c.Server.Mode] {
		return fmt.Errorf("invalid GIN_MODE %q", c.Server.Mode)
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid LOG_LEVEL %q", c.Log.Level)
	}

	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"READ_TIMEOUT", c.Server.ReadTimeout},
		{"READ_HEADER_TIMEOUT", c.Server.ReadHeaderTimeout},
		{"WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"IDLE_TIMEOUT", c.Server.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
	}
	for _, tt := range timeouts {
		if tt.value <= 0 {
			return fmt.Errorf("%s must be positive, got %s", tt.name, tt.value)
		}
	}

	corsCfg := cors.Config{AllowOrigins: c.Server.AllowOrigins}
	if err := corsCfg.Validate(); err != nil {
		return fmt.Errorf("invalid CORS_ALLOW_ORIGINS %v: %w", c.Server.AllowOrigins, err)
	}

	for _, proxy := range c.Server.TrustedProxies {
		if !isIPOrCIDR(proxy) {
			return fmt.Errorf("invalid TRUSTED_PROXIES entry %q", proxy)
		}
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			return errors.New("RATE_LIMIT_REQUESTS must be positive when RATE_LIMIT_ENABLED=true")
		}
		if c.RateLimit.Period <= 0 {
			return errors.New("RATE_LIMIT_PERIOD must be positive when RATE_LIMIT_ENABLED=true")
		}
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (s *ServerConfig) Addr() string {
	return ":" + s.Port
}

func isIPOrCIDR(value string) bool {
	if net.ParseIP(value) != nil {
		return true
	}
	_, _, err := net.ParseCIDR(value)
	return err == nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns a default value
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		defaultDuration, _ := time.ParseDuration(defaultValue)
		return defaultDuration
	}
	return value
}

// getEnvAsList splits a comma separated environment variable, dropping empty entries
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
