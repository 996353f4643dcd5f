package client

import (
	"HyperAdmin/config"
	"HyperAdmin/pkg/session"

	"github.com/redis/go-redis/v9"
)

func NewSessionStore(rdb *redis.Client) session.Store {
	return session.NewRedisStore(rdb)
}

func NewSessionKeys(conf *config.Config) session.Keys {
	return session.NewKeys(conf.Session.KeyPrefix)
}

func NewSessionMigrator(store session.Store, keys session.Keys) *session.Migrator {
	return session.NewMigrator(store, keys, session.Migrations...)
}

// NewSessionManager CLI 使用，BFF 直接透传请求头里的 token
func NewSessionManager(store session.Store, keys session.Keys) *session.Manager {
	return session.NewManager(store, keys)
}
