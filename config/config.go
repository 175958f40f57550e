package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hsbacot/bookfind/client"
)

// EnvPath names the environment variable consulted when no --config flag is given
const EnvPath = "BOOKFIND_CONFIG"

// APIConfig configures the Open Library client
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	CoversURL         string        `yaml:"covers_url"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// LogConfig configures logging
type LogConfig struct {
	Verbose bool   `yaml:"verbose"`
	File    string `yaml:"file"`
}

// Config is the root of bookfind.yaml
type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:   client.DefaultBaseURL,
			CoversURL: client.DefaultCoversURL,
			UserAgent: client.DefaultUserAgent,
			Timeout:   client.DefaultTimeout,
		},
	}
}

// Resolve picks the config path: the flag value, else $BOOKFIND_CONFIG, else ""
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	return os.Getenv(EnvPath)
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values that would make the client unusable
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second must not be negative")
	}
	return nil
}

// ClientOptions converts the API section into client options
func (c Config) ClientOptions() []client.Option {
	return []client.Option{
		client.WithBaseURL(c.API.BaseURL),
		client.WithCoversURL(c.API.CoversURL),
		client.WithUserAgent(c.API.UserAgent),
		client.WithTimeout(c.API.Timeout),
		client.WithRateLimit(c.API.RequestsPerSecond),
	}
}
