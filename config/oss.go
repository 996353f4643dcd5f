package config

type OssConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Region    string `json:"region" yaml:"region"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	CdnDomain string `json:"cdn_domain" yaml:"cdn_domain"` // 对外访问域名，为空时使用 bucket 域名
}

func ProvideOssConfig(cfg *Config) *OssConfig {
	return cfg.Oss
}
