package config

import "time"

const (
	envConfigFile       = "ROSTER_CONFIG_FILE"
	envPort             = "PORT"
	envLogLevel         = "LOG_LEVEL"
	envLogFormat        = "LOG_FORMAT"
	envStorageDriver    = "STORAGE_DRIVER"
	envStoragePath      = "STORAGE_PATH"
	envStoragePrefix    = "STORAGE_KEY_PREFIX"
	envRedisURL         = "REDIS_URL"
	envDatabaseDSN      = "DATABASE_DSN"
	envMembershipPolicy = "PLAYER_MEMBERSHIP_POLICY"
	envPasswordHash     = "SESSION_PASSWORD_HASH"
	envSearchCacheTTL   = "SEARCH_CACHE_TTL"
	envLookupCacheTTL   = "LOOKUP_CACHE_TTL"
	envSearchDebounce   = "SEARCH_DEBOUNCE"
	envScrollThrottle   = "SCROLL_THROTTLE"
	envSearchPageSize   = "SEARCH_PAGE_SIZE"
	envLookupPageSize   = "LOOKUP_PAGE_SIZE"
	envRetryMax         = "RETRY_MAX"
	envRetryBaseDelay   = "RETRY_BASE_DELAY"
	envRetryMaxDelay    = "RETRY_MAX_DELAY"
	envMetricsPort      = "METRICS_PORT"
	envMetricsOn        = "METRICS_ENABLED"
	envOtelEndpoint     = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService      = "OTEL_SERVICE_NAME"
	envOtelInsecure     = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort          = "4000"
	defaultStorageDriver = "file"
	defaultStoragePath   = "data/roster"
	defaultPolicy        = "reject"
	defaultMetricsPort   = "9090"
	defaultServiceName   = "nba-roster-service"

	// Freshness windows mirror the player picker: searches live longer than id lookups.
	defaultSearchCacheTTL = 10 * time.Minute
	defaultLookupCacheTTL = 5 * time.Minute
	defaultSearchDebounce = 500 * time.Millisecond
	defaultScrollThrottle = time.Second
	defaultSearchPageSize = 20
	defaultLookupPageSize = 100

	defaultRetryMax       = 2
	defaultRetryBaseDelay = time.Second
	defaultRetryMaxDelay  = 30 * time.Second
)
