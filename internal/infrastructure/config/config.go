// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	baseURL := cfg.Bookkeeper.BaseURL
//	port := cfg.Server.Port
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Bookkeeper    BookkeeperConfig    `yaml:"bookkeeper"`
	Upload        UploadConfig        `yaml:"upload"`
	Review        ReviewConfig        `yaml:"review"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds the local API server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// BookkeeperConfig holds the remote bookkeeping API settings.
// Endpoint paths vary between deployments, so each one is configurable.
type BookkeeperConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	AccountsPath   string `yaml:"accounts_path"`
	NewAccountPath string `yaml:"new_account_path"`
	UploadPath     string `yaml:"upload_path"`
	TablePath      string `yaml:"table_path"`
}

// UploadConfig holds client-side upload validation settings
type UploadConfig struct {
	AcceptedExtensions []string `yaml:"accepted_extensions"`
}

// ReviewConfig holds transaction review defaults
type ReviewConfig struct {
	PageSize int `yaml:"page_size"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${BOOKKEEPER_URL})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvInt("LEDGERVIEW_PORT", 8080),
			AllowedOrigins: splitList(getEnv("LEDGERVIEW_ORIGINS", "")),
		},
		Bookkeeper: BookkeeperConfig{
			BaseURL:        getEnv("BOOKKEEPER_URL", "http://localhost:5000"),
			TimeoutSeconds: getEnvInt("BOOKKEEPER_TIMEOUT_SECONDS", 30),
			AccountsPath:   os.Getenv("BOOKKEEPER_ACCOUNTS_PATH"),
			NewAccountPath: os.Getenv("BOOKKEEPER_NEW_ACCOUNT_PATH"),
			UploadPath:     os.Getenv("BOOKKEEPER_UPLOAD_PATH"),
			TablePath:      os.Getenv("BOOKKEEPER_TABLE_PATH"),
		},
		Upload: UploadConfig{
			AcceptedExtensions: splitList(os.Getenv("LEDGERVIEW_UPLOAD_EXTENSIONS")),
		},
		Review: ReviewConfig{
			PageSize: getEnvInt("LEDGERVIEW_PAGE_SIZE", 10),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills in zero values with working defaults
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Bookkeeper.BaseURL == "" {
		c.Bookkeeper.BaseURL = "http://localhost:5000"
	}
	if c.Bookkeeper.TimeoutSeconds == 0 {
		c.Bookkeeper.TimeoutSeconds = 30
	}
	if c.Bookkeeper.AccountsPath == "" {
		c.Bookkeeper.AccountsPath = "/uploads/getAccounts"
	}
	if c.Bookkeeper.NewAccountPath == "" {
		c.Bookkeeper.NewAccountPath = "/uploads/newAccount"
	}
	if c.Bookkeeper.UploadPath == "" {
		c.Bookkeeper.UploadPath = "/uploads/uploadTransactions"
	}
	if c.Bookkeeper.TablePath == "" {
		c.Bookkeeper.TablePath = "/reports/getAccountTable"
	}
	if len(c.Upload.AcceptedExtensions) == 0 {
		c.Upload.AcceptedExtensions = []string{".ofx", ".qif"}
	}
	if c.Review.PageSize == 0 {
		c.Review.PageSize = 10
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// splitList splits a comma-separated environment value into a slice
func splitList(val string) []string {
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
