package config

const (
	envPlayerProvider = "PLAYER_PROVIDER"
	envBdlBaseURL     = "BALLDONTLIE_API_URL"
	envBdlAPIKey      = "BALLDONTLIE_API_KEY"

	defaultBdlBaseURL     = "https://api.balldontlie.io/v1"
	defaultPlayerProvider = ProviderBalldontlie
)

// Player upstreams.
const (
	ProviderBalldontlie = "balldontlie"
	ProviderFixture     = "fixture"
)

// BalldontlieConfig controls how we talk to the balldontlie API.
// Provider "fixture" swaps the API for the built-in offline catalogue.
type BalldontlieConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
}

func (c BalldontlieConfig) fromEnv() BalldontlieConfig {
	return BalldontlieConfig{
		Provider: envOrDefault(envPlayerProvider, c.Provider),
		BaseURL:  envOrDefault(envBdlBaseURL, c.BaseURL),
		APIKey:   envOrDefault(envBdlAPIKey, c.APIKey),
	}
}
