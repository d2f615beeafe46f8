package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Market      MarketConfig  `toml:"market"`
	MCP         MCPConfig     `toml:"mcp"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// MarketConfig contains settings for the upstream market-data provider.
type MarketConfig struct {
	ChartURL   string `toml:"chart_url"`   // chart API base (daily bars)
	SummaryURL string `toml:"summary_url"` // quoteSummary API base (fundamentals)
	Timeout    string `toml:"timeout"`
	UserAgent  string `toml:"user_agent"`
}

// GetTimeout parses and returns the market request timeout.
func (c *MarketConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// MCPConfig contains MCP endpoint settings.
type MCPConfig struct {
	Enabled bool `toml:"enabled"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// IsDevMode returns true when the environment is set to dev.
func (c *Config) IsDevMode() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "dev"
}

// BaseURL returns the externally visible base URL of the portal.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks mandatory configuration and returns a list of issues.
func (c *Config) Validate() []string {
	var issues []string
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port must be between 1 and 65535 (got %d)", c.Server.Port))
	}
	if c.Market.ChartURL == "" {
		issues = append(issues, "market.chart_url must be set")
	}
	if c.Market.SummaryURL == "" {
		issues = append(issues, "market.summary_url must be set")
	}
	if _, err := time.ParseDuration(c.Market.Timeout); c.Market.Timeout != "" && err != nil {
		issues = append(issues, fmt.Sprintf("market.timeout is not a valid duration: %q", c.Market.Timeout))
	}
	return issues
}

// LoadFromFile loads configuration with priority: defaults -> file -> env.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		err = toml.Unmarshal(data, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies DARVAS_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DARVAS_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("DARVAS_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DARVAS_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if u := os.Getenv("DARVAS_CHART_URL"); u != "" {
		config.Market.ChartURL = u
	}
	if u := os.Getenv("DARVAS_SUMMARY_URL"); u != "" {
		config.Market.SummaryURL = u
	}
	if level := os.Getenv("DARVAS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
