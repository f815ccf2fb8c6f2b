package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Port         string `yaml:"port"`
	OtlpEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
	OtlpInsecure bool   `yaml:"otlp_insecure"`
}

func (c MetricsConfig) fromEnv() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, c.Enabled),
		Port:         envOrDefault(envMetricsPort, c.Port),
		OtlpEndpoint: envOrDefault(envOtelEndpoint, c.OtlpEndpoint),
		ServiceName:  envOrDefault(envOtelService, c.ServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, c.OtlpInsecure),
	}
}
