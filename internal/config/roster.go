package config

// RosterConfig holds team store and session settings.
type RosterConfig struct {
	MembershipPolicy string `yaml:"membership_policy"`
	PasswordHash     string `yaml:"password_hash"`
}

func (c RosterConfig) fromEnv() RosterConfig {
	return RosterConfig{
		MembershipPolicy: envOrDefault(envMembershipPolicy, c.MembershipPolicy),
		PasswordHash:     envOrDefault(envPasswordHash, c.PasswordHash),
	}
}

// DirectoryConfig tunes player directory caching and pacing.
type DirectoryConfig struct {
	SearchCacheTTL Duration `yaml:"search_cache_ttl"`
	LookupCacheTTL Duration `yaml:"lookup_cache_ttl"`
	SearchDebounce Duration `yaml:"search_debounce"`
	ScrollThrottle Duration `yaml:"scroll_throttle"`
	SearchPageSize int      `yaml:"search_page_size"`
	LookupPageSize int      `yaml:"lookup_page_size"`
}

func (c DirectoryConfig) fromEnv() DirectoryConfig {
	return DirectoryConfig{
		SearchCacheTTL: durationEnvOrDefault(envSearchCacheTTL, c.SearchCacheTTL),
		LookupCacheTTL: durationEnvOrDefault(envLookupCacheTTL, c.LookupCacheTTL),
		SearchDebounce: durationEnvOrDefault(envSearchDebounce, c.SearchDebounce),
		ScrollThrottle: durationEnvOrDefault(envScrollThrottle, c.ScrollThrottle),
		SearchPageSize: intEnvOrDefault(envSearchPageSize, c.SearchPageSize),
		LookupPageSize: intEnvOrDefault(envLookupPageSize, c.LookupPageSize),
	}
}

// RetryConfig controls upstream retry/backoff.
type RetryConfig struct {
	MaxRetries int      `yaml:"max_retries"`
	BaseDelay  Duration `yaml:"base_delay"`
	MaxDelay   Duration `yaml:"max_delay"`
}

func (c RetryConfig) fromEnv() RetryConfig {
	return RetryConfig{
		MaxRetries: intEnvOrDefault(envRetryMax, c.MaxRetries),
		BaseDelay:  durationEnvOrDefault(envRetryBaseDelay, c.BaseDelay),
		MaxDelay:   durationEnvOrDefault(envRetryMaxDelay, c.MaxDelay),
	}
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c LogConfig) fromEnv() LogConfig {
	return LogConfig{
		Level:  envOrDefault(envLogLevel, c.Level),
		Format: envOrDefault(envLogFormat, c.Format),
	}
}
