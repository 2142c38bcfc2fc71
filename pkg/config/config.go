package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// CLI
	CLI struct {
		BaseURL        string `toml:"base_url"`        // Base URL of the ITWORKS portal API
		PollInterval   int    `toml:"poll_interval"`   // Job status poll interval in seconds
		RequestTimeout int    `toml:"request_timeout"` // Per-request timeout in seconds
	} `toml:"cli"`

	// API (local development back end)
	API struct {
		Port int    `toml:"port"`
		Host string `toml:"host"`
	} `toml:"api"`

	// Pipeline (simulated scrape pipeline of the development back end)
	Pipeline struct {
		StepDelayMs    int `toml:"step_delay_ms"`    // Delay between processed URLs
		PostingsPerURL int `toml:"postings_per_url"` // Job postings extracted per URL
	} `toml:"pipeline"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.CLI.BaseURL = "http://localhost:8080"
	cfg.CLI.PollInterval = 3
	cfg.CLI.RequestTimeout = 30
	cfg.API.Port = 8080
	cfg.API.Host = "0.0.0.0"
	cfg.Pipeline.StepDelayMs = 2000
	cfg.Pipeline.PostingsPerURL = 3
	return cfg
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "itworks")
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads configuration from ~/.config/itworks/config.toml.
// Creates the file with defaults if it doesn't exist.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)

		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge with defaults for any missing values
	defaultCfg := DefaultConfig()
	if cfg.CLI.BaseURL == "" {
		cfg.CLI.BaseURL = defaultCfg.CLI.BaseURL
	}
	if cfg.CLI.PollInterval == 0 {
		cfg.CLI.PollInterval = defaultCfg.CLI.PollInterval
	}
	if cfg.CLI.RequestTimeout == 0 {
		cfg.CLI.RequestTimeout = defaultCfg.CLI.RequestTimeout
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = defaultCfg.API.Port
	}
	if cfg.API.Host == "" {
		cfg.API.Host = defaultCfg.API.Host
	}
	if cfg.Pipeline.StepDelayMs == 0 {
		cfg.Pipeline.StepDelayMs = defaultCfg.Pipeline.StepDelayMs
	}
	if cfg.Pipeline.PostingsPerURL == 0 {
		cfg.Pipeline.PostingsPerURL = defaultCfg.Pipeline.PostingsPerURL
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides lets environment variables win over file values, which is
// useful when running the console inside Docker.
func applyEnvOverrides(cfg *Config) {
	if baseURL := os.Getenv("ITWORKS_BASE_URL"); baseURL != "" {
		cfg.CLI.BaseURL = baseURL
	}
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
