package config

type App struct {
	Env    string `json:"env" yaml:"env"`
	Debug  bool   `json:"debug" yaml:"debug"`
	NodeID int64  `json:"node_id" yaml:"node_id"` // snowflake 节点编号
}
