package session

import (
	"context"
	"fmt"
	"strconv"

	"HyperAdmin/pkg/log"

	"go.uber.org/zap"
)

// 旧版控制台直接写在根命名空间下的 key
const (
	LegacyTokenKey   = "adminToken"
	LegacyProfileKey = "adminUser"
)

// Migration 一次性的存储结构升级
type Migration struct {
	Version int
	Name    string
	Up      func(ctx context.Context, store Store, keys Keys) error
}

var Migrations = []Migration{
	{Version: 1, Name: "move legacy admin keys", Up: moveLegacyKeys},
}

type Migrator struct {
	store      Store
	keys       Keys
	migrations []Migration
}

func NewMigrator(store Store, keys Keys, migrations ...Migration) *Migrator {
	if len(migrations) == 0 {
		migrations = Migrations
	}
	return &Migrator{store: store, keys: keys, migrations: migrations}
}

// Version 当前已应用的版本，未初始化为 0
func (m *Migrator) Version(ctx context.Context) (int, error) {
	raw, ok, err := m.store.Get(ctx, m.keys.Version)
	if err != nil || !ok {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("session: bad schema version %q: %w", raw, err)
	}
	return v, nil
}

// Run 依次执行未应用的迁移，返回应用的数量。启动时调用一次。
func (m *Migrator) Run(ctx context.Context) (int, error) {
	current, err := m.Version(ctx)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, mg := range m.migrations {
		if mg.Version <= current {
			continue
		}
		if err := mg.Up(ctx, m.store, m.keys); err != nil {
			return applied, fmt.Errorf("session: migration %d (%s): %w", mg.Version, mg.Name, err)
		}
		if err := m.store.Set(ctx, m.keys.Version, strconv.Itoa(mg.Version)); err != nil {
			return applied, err
		}
		log.L.Info("session migration applied", zap.Int("version", mg.Version), zap.String("name", mg.Name))
		current = mg.Version
		applied++
	}
	return applied, nil
}

func moveLegacyKeys(ctx context.Context, store Store, keys Keys) error {
	pairs := [][2]string{
		{LegacyTokenKey, keys.Token},
		{LegacyProfileKey, keys.Profile},
	}
	for _, p := range pairs {
		val, ok, err := store.Get(ctx, p[0])
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		// 新 key 已有值时以新值为准
		if _, exists, err := store.Get(ctx, p[1]); err != nil {
			return err
		} else if !exists {
			if err := store.Set(ctx, p[1], val); err != nil {
				return err
			}
		}
		if err := store.Del(ctx, p[0]); err != nil {
			return err
		}
	}
	return nil
}
