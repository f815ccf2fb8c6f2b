package config

// StorageConfig selects the durable key-value backend for teams and the session.
type StorageConfig struct {
	Driver    string `yaml:"driver"` // memory, file, redis, sqlite, postgres
	Path      string `yaml:"path"`   // base directory for file, database file for sqlite
	KeyPrefix string `yaml:"key_prefix"`
	RedisURL  string `yaml:"redis_url"`
	DSN       string `yaml:"dsn"`
}

func (c StorageConfig) fromEnv() StorageConfig {
	return StorageConfig{
		Driver:    envOrDefault(envStorageDriver, c.Driver),
		Path:      envOrDefault(envStoragePath, c.Path),
		KeyPrefix: envOrDefault(envStoragePrefix, c.KeyPrefix),
		RedisURL:  envOrDefault(envRedisURL, c.RedisURL),
		DSN:       envOrDefault(envDatabaseDSN, c.DSN),
	}
}
