package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"HyperAdmin/pkg/jwt"
)

var ErrNoSession = errors.New("session: not logged in")

// Profile 当前登录管理员
type Profile struct {
	AdminID uint64 `json:"admin_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type EventKind int

const (
	EventSet EventKind = iota + 1
	EventCleared
)

type Event struct {
	Kind    EventKind
	Profile *Profile
}

type Listener func(Event)

// Provider 会话的唯一入口，组件不直接读写底层存储
type Provider interface {
	GetToken(ctx context.Context) (string, error)
	SetSession(ctx context.Context, token string, profile *Profile) error
	ClearSession(ctx context.Context) error
	Profile(ctx context.Context) (*Profile, error)
	Subscribe(fn Listener) (unsubscribe func())
}

// Store 会话的底层 KV 存储
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

type Keys struct {
	Token   string
	Profile string
	Version string
}

func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = "hyper_admin"
	}
	return Keys{
		Token:   prefix + ":token",
		Profile: prefix + ":profile",
		Version: prefix + ":schema_version",
	}
}

type Manager struct {
	store Store
	keys  Keys

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

var _ Provider = (*Manager)(nil)

func NewManager(store Store, keys Keys) *Manager {
	return &Manager{
		store:     store,
		keys:      keys,
		listeners: make(map[int]Listener),
	}
}

func (m *Manager) GetToken(ctx context.Context) (string, error) {
	token, ok, err := m.store.Get(ctx, m.keys.Token)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// SetSession profile 为空时从 token 载荷中解析
func (m *Manager) SetSession(ctx context.Context, token string, profile *Profile) error {
	if token == "" {
		return errors.New("session: empty token")
	}
	if profile == nil {
		claims, err := jwt.ParseUnverified(token)
		if err != nil {
			return err
		}
		profile = &Profile{AdminID: claims.AdminID, Name: claims.Name, Email: claims.Email, Role: claims.Role}
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, m.keys.Token, token); err != nil {
		return err
	}
	if err := m.store.Set(ctx, m.keys.Profile, string(raw)); err != nil {
		return err
	}
	m.publish(Event{Kind: EventSet, Profile: profile})
	return nil
}

func (m *Manager) ClearSession(ctx context.Context) error {
	if err := m.store.Del(ctx, m.keys.Token, m.keys.Profile); err != nil {
		return err
	}
	m.publish(Event{Kind: EventCleared})
	return nil
}

func (m *Manager) Profile(ctx context.Context) (*Profile, error) {
	raw, ok, err := m.store.Get(ctx, m.keys.Profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSession
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *Manager) Subscribe(fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Manager) publish(ev Event) {
	m.mu.Lock()
	ls := make([]Listener, 0, len(m.listeners))
	for _, fn := range m.listeners {
		ls = append(ls, fn)
	}
	m.mu.Unlock()

	for _, fn := range ls {
		fn(ev)
	}
}
