package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the service and CLI.
type Config struct {
	Port        string            `yaml:"port"`
	Balldontlie BalldontlieConfig `yaml:"balldontlie"`
	Storage     StorageConfig     `yaml:"storage"`
	Roster      RosterConfig      `yaml:"roster"`
	Directory   DirectoryConfig   `yaml:"directory"`
	Retry       RetryConfig       `yaml:"retry"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Log         LogConfig         `yaml:"log"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:        defaultPort,
		Balldontlie: BalldontlieConfig{Provider: defaultPlayerProvider, BaseURL: defaultBdlBaseURL},
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
			Path:   defaultStoragePath,
		},
		Roster: RosterConfig{MembershipPolicy: defaultPolicy},
		Directory: DirectoryConfig{
			SearchCacheTTL: defaultSearchCacheTTL,
			LookupCacheTTL: defaultLookupCacheTTL,
			SearchDebounce: defaultSearchDebounce,
			ScrollThrottle: defaultScrollThrottle,
			SearchPageSize: defaultSearchPageSize,
			LookupPageSize: defaultLookupPageSize,
		},
		Retry: RetryConfig{
			MaxRetries: defaultRetryMax,
			BaseDelay:  defaultRetryBaseDelay,
			MaxDelay:   defaultRetryMaxDelay,
		},
		Metrics: MetricsConfig{
			Enabled:      true,
			Port:         defaultMetricsPort,
			ServiceName:  defaultServiceName,
			OtlpInsecure: true,
		},
	}
}

// Load layers defaults, the optional YAML file named by ROSTER_CONFIG_FILE, then environment variables.
func Load() (Config, error) {
	return LoadFrom(os.Getenv(envConfigFile))
}

// LoadFrom is Load with an explicit config file path. An empty path skips the file.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		fileCfg, err := LoadFile(path, cfg)
		if err != nil {
			return Config{}, err
		}
		cfg = fileCfg
	}
	return cfg.fromEnv(), nil
}

// LoadFile decodes a YAML file on top of base. Keys missing from the file keep their base values.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) fromEnv() Config {
	return Config{
		Port:        envOrDefault(envPort, c.Port),
		Balldontlie: c.Balldontlie.fromEnv(),
		Storage:     c.Storage.fromEnv(),
		Roster:      c.Roster.fromEnv(),
		Directory:   c.Directory.fromEnv(),
		Retry:       c.Retry.fromEnv(),
		Metrics:     c.Metrics.fromEnv(),
		Log:         c.Log.fromEnv(),
	}
}
