package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up when no --config flag is
// given.
const DefaultConfigFile = ".dtrack-report.yaml"

// Config holds the Dependency-Track connection settings. Everything the
// client needs is carried here explicitly; there are no process-wide
// configuration constants.
type Config struct {
	// BaseURL is the Dependency-Track server root URL.
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates every request via the X-Api-Key header.
	APIKey string `yaml:"api_key"`

	// VerifyTLS controls server certificate verification. Defaults to true;
	// set to false for self-signed deployments.
	VerifyTLS bool `yaml:"tls_verify"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://127.0.0.1:8080",
		VerifyTLS: true,
	}
}

// LoadConfig loads the configuration from the given file path, falling back
// to .dtrack-report.yaml in the current directory when path is empty. A
// missing default file is not an error; environment variables
// DTRACK_BASE_URL and DTRACK_API_KEY override file values either way.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults plus environment apply.
	default:
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DTRACK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("DTRACK_API_KEY"); v != "" {
		cfg.APIKey = v
	}
}

// Validate checks that the configuration is usable for API calls.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required (config file or DTRACK_BASE_URL)")
	}
	if c.APIKey == "" {
		return fmt.Errorf("api_key is required (config file or DTRACK_API_KEY)")
	}
	return nil
}
