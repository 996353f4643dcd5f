package config

type Session struct {
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`
}
