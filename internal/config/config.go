package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig represents the server configuration
type ServerConfig struct {
	// Port is the listen port for the SSE transport. The stdio transport
	// ignores it.
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// UpstreamConfig represents the two upstream content sources: the shadcn/ui
// documentation site and the shadcn-ui/ui source repository on GitHub.
type UpstreamConfig struct {
	DocsBaseURL    string `yaml:"docs_base_url"`
	RawBaseURL     string `yaml:"raw_base_url"`
	APIBaseURL     string `yaml:"api_base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	GitHubToken    string `yaml:"github_token"`
}

// Timeout returns the upstream request timeout as a duration
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// CacheConfig represents the cache configuration
type CacheConfig struct {
	DefaultTTLMinutes int `yaml:"default_ttl_minutes"`
}

// DefaultTTL returns the default cache entry lifetime as a duration
func (c CacheConfig) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLMinutes) * time.Minute
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration. The server is fully
// functional without a config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 3001,
		},
		Upstream: UpstreamConfig{
			DocsBaseURL:    "https://ui.shadcn.com",
			RawBaseURL:     "https://raw.githubusercontent.com",
			APIBaseURL:     "https://api.github.com",
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			DefaultTTLMinutes: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads the configuration from a file and overrides with environment
// variables. A missing file is not an error; the defaults apply.
func Load(filepath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(filepath)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.overrideWithEnv()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// overrideWithEnv overrides configuration with environment variables
func (c *Config) overrideWithEnv() {
	// PORT selects the SSE listen port
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("MCP_SERVER_HOST"); host != "" {
		c.Server.Host = host
	}

	// Upstream configuration
	if url := os.Getenv("MCP_DOCS_BASE_URL"); url != "" {
		c.Upstream.DocsBaseURL = url
	}
	if url := os.Getenv("MCP_RAW_BASE_URL"); url != "" {
		c.Upstream.RawBaseURL = url
	}
	if url := os.Getenv("MCP_API_BASE_URL"); url != "" {
		c.Upstream.APIBaseURL = url
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		c.Upstream.GitHubToken = token
	}

	// Logging configuration
	if level := os.Getenv("MCP_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// validate checks the configuration for values the server cannot run with
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("invalid upstream timeout: %d", c.Upstream.TimeoutSeconds)
	}
	if c.Upstream.DocsBaseURL == "" || c.Upstream.RawBaseURL == "" || c.Upstream.APIBaseURL == "" {
		return fmt.Errorf("upstream base URLs must not be empty")
	}
	return nil
}
