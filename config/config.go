// Package config loads and validates application configuration from an
// optional YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port             string `yaml:"port"`
	Address          string `yaml:"address"`
	Env              string `yaml:"env"`
	LogLevel         string `yaml:"log_level"`
	LogDir           string `yaml:"log_dir"`
	LogRetentionDays int    `yaml:"log_retention_days"`
	DatasetPath      string `yaml:"dataset_path"`
	MaxRequestBody   int64  `yaml:"max_request_body"` // bytes
	MaxHeaderSize    int64  `yaml:"max_header_size"`  // bytes
}

func defaults() *Config {
	return &Config{
		Port:             "8000",
		Address:          "127.0.0.1",
		Env:              "dev",
		LogLevel:         "info",
		LogDir:           "logs",
		LogRetentionDays: 28,
		DatasetPath:      "dataset/medications.json",
		MaxRequestBody:   1048576, // 1MB
		MaxHeaderSize:    1048576, // 1MB
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (or config.yaml when present), then environment overrides,
// then validation.
func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	} else if os.Getenv("CONFIG_FILE") != "" {
		// An explicitly named file must exist.
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Port = getEnvWithDefault("PORT", cfg.Port)
	cfg.Address = getEnvWithDefault("ADDRESS", cfg.Address)
	cfg.Env = getEnvWithDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogDir = getEnvWithDefault("LOG_DIR", cfg.LogDir)
	cfg.LogRetentionDays = getIntEnvWithDefault("LOG_RETENTION_DAYS", cfg.LogRetentionDays)
	cfg.DatasetPath = getEnvWithDefault("DATASET_PATH", cfg.DatasetPath)
	cfg.MaxRequestBody = getInt64EnvWithDefault("MAX_REQUEST_BODY", cfg.MaxRequestBody)
	cfg.MaxHeaderSize = getInt64EnvWithDefault("MAX_HEADER_SIZE", cfg.MaxHeaderSize)
}

// validateConfig validates all configuration values.
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if strings.TrimSpace(cfg.DatasetPath) == "" {
		return fmt.Errorf("invalid DATASET_PATH: cannot be empty")
	}

	if cfg.LogRetentionDays < 1 || cfg.LogRetentionDays > 365 {
		return fmt.Errorf("invalid LOG_RETENTION_DAYS: must be 1-365, got %d", cfg.LogRetentionDays)
	}

	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return err
	}

	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return err
	}

	return nil
}

// validatePort validates the listen port.
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the listen address.
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "127.0.0.1" || address == "::1" || address == "localhost" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	if !ip.IsLoopback() && !ip.IsPrivate() && !ip.IsUnspecified() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges", address)
	}

	return nil
}

// validateEnv validates the deployment environment name.
func validateEnv(env string) error {
	validEnvs := []string{"dev", "staging", "prod", "test"}
	env = strings.ToLower(env)

	for _, validEnv := range validEnvs {
		if env == validEnv {
			return nil
		}
	}

	return fmt.Errorf("ENV must be one of: %v, got: %s", validEnvs, env)
}

// validateLogLevel validates the log level name.
func validateLogLevel(logLevel string) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateSizeLimit validates size limit configuration values.
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// getEnvWithDefault gets an environment variable with a default value.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value.
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64EnvWithDefault gets an environment variable as int64 with a default value.
func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
