package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coredatabase "github.com/ryuvi/carchat/core/database"
	corelogger "github.com/ryuvi/carchat/core/logger"
)

// ServerConfig holds the settings of the chat server process.
type ServerConfig struct {
	Listen string `yaml:"listen" envconfig:"SERVER_LISTEN"`
	WSPath string `yaml:"ws_path" envconfig:"SERVER_WS_PATH"`
	// PollIntervalMS bounds one idle iteration of the session loop so a
	// shutdown signal is observed even when no request is pending.
	PollIntervalMS int `yaml:"poll_interval_ms" envconfig:"SERVER_POLL_INTERVAL_MS"`
	// SeedCount is how many synthetic cars to insert when the table is empty.
	SeedCount int `yaml:"seed_count" envconfig:"SERVER_SEED_COUNT"`
}

// ClientConfig holds the settings of the terminal chat client.
type ClientConfig struct {
	ServerURL string `yaml:"server_url" envconfig:"CLIENT_SERVER_URL"`
	// PollTimeoutMS bounds one wait for a pending reply so the UI stays live.
	PollTimeoutMS int `yaml:"poll_timeout_ms" envconfig:"CLIENT_POLL_TIMEOUT_MS"`
	DialRetries   int `yaml:"dial_retries" envconfig:"CLIENT_DIAL_RETRIES"`
}

// Config aggregates the configuration shared by both carchat processes.
type Config struct {
	Server   ServerConfig        `yaml:"server"`
	Client   ClientConfig        `yaml:"client"`
	Database coredatabase.Config `yaml:"database"`
	Logging  corelogger.Config   `yaml:"logging"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = "127.0.0.1:5555"
	}
	if strings.TrimSpace(cfg.Server.WSPath) == "" {
		cfg.Server.WSPath = "/ws"
	}
	if !strings.HasPrefix(cfg.Server.WSPath, "/") {
		return fmt.Errorf("server.ws_path must start with '/', got %q", cfg.Server.WSPath)
	}
	if cfg.Server.PollIntervalMS < 0 {
		return fmt.Errorf("server.poll_interval_ms must be >= 0")
	}
	if cfg.Server.PollIntervalMS == 0 {
		cfg.Server.PollIntervalMS = 100
	}
	if cfg.Server.SeedCount < 0 {
		return fmt.Errorf("server.seed_count must be >= 0")
	}
	if cfg.Server.SeedCount == 0 {
		cfg.Server.SeedCount = 200
	}

	if strings.TrimSpace(cfg.Client.ServerURL) == "" {
		cfg.Client.ServerURL = "ws://" + cfg.Server.Listen + cfg.Server.WSPath
	}
	if !strings.HasPrefix(cfg.Client.ServerURL, "ws://") && !strings.HasPrefix(cfg.Client.ServerURL, "wss://") {
		return fmt.Errorf("client.server_url must be a ws:// or wss:// URL, got %q", cfg.Client.ServerURL)
	}
	if cfg.Client.PollTimeoutMS < 0 {
		return fmt.Errorf("client.poll_timeout_ms must be >= 0")
	}
	if cfg.Client.PollTimeoutMS == 0 {
		cfg.Client.PollTimeoutMS = 100
	}
	if cfg.Client.DialRetries < 0 {
		return fmt.Errorf("client.dial_retries must be >= 0")
	}
	if cfg.Client.DialRetries == 0 {
		cfg.Client.DialRetries = 3
	}

	if strings.TrimSpace(cfg.Database.SSLMode) == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 4
	}

	return nil
}

// PollInterval returns the server poll interval as a duration.
func (c ServerConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// PollTimeout returns the client reply poll timeout as a duration.
func (c ClientConfig) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMS) * time.Millisecond
}
