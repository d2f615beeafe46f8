package config

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "prod",
		Server: ServerConfig{
			Port: 4251,
			Host: "localhost",
		},
		Market: MarketConfig{
			ChartURL:   "https://query1.finance.yahoo.com/v8/finance/chart",
			SummaryURL: "https://query1.finance.yahoo.com/v10/finance/quoteSummary",
			Timeout:    "30s",
			UserAgent:  "Mozilla/5.0",
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/darvas-portal.log",
			MaxSizeMB:  1,
			MaxBackups: 10,
		},
	}
}
