package config

// Backend 平台 REST API
type Backend struct {
	BaseURL        string `json:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	TokenHeader    string `json:"token_header" yaml:"token_header"`
	TokenScheme    string `json:"token_scheme" yaml:"token_scheme"`
}

func ProvideBackendConfig(cfg *Config) *Backend {
	return cfg.Backend
}
