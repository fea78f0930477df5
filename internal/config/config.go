package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is the public card catalog used when no config exists
const DefaultAPIBaseURL = "https://api.pokemontcg.io/v2"

// Config holds user preferences
type Config struct {
	APIBaseURL string        `yaml:"api_base_url" json:"api_base_url"` // Card catalog endpoint
	CacheTTL   time.Duration `yaml:"-" json:"cache_ttl"`               // Lookup result staleness window

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	// CacheTTLRaw holds the duration as written in the file ("1h", "30m").
	// CacheTTL carries the parsed value.
	CacheTTLRaw string `yaml:"cache_ttl" json:"-"`
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".cardscout", "logs", "cardscout.log")
	}

	return &Config{
		APIBaseURL: getEnv("CARDSCOUT_API_URL", DefaultAPIBaseURL),
		CacheTTL:   time.Hour,
		LogLevel:   getEnv("CARDSCOUT_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("CARDSCOUT_LOG_FILE", logPath),
		LogConsole: getEnv("CARDSCOUT_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.cardscout/config.yaml
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(home, ".cardscout", "config.yaml"))
}

// LoadFrom loads config from an explicit path, falling back to defaults
// when the file does not exist.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.CacheTTLRaw != "" {
		ttl, err := time.ParseDuration(cfg.CacheTTLRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cache_ttl: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}

	return cfg, nil
}

// Save saves config to ~/.cardscout/config.yaml
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".cardscout")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	c.CacheTTLRaw = c.CacheTTL.String()
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
