package kvstore

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
	"github.com/go-monolith/mono/pkg/types"
)

// Supported backends.
const (
	BackendJetStream = "jetstream"
	BackendRedis     = "redis"
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
	BackendMongo     = "mongo"
	BackendMemory    = "memory"
)

// Config selects and configures the persistence backend.
type Config struct {
	Backend       string
	Bucket        string
	RedisAddr     string
	RedisPrefix   string
	DBPath        string
	DBDebug       bool
	DatabaseURL   string
	MongoURI      string
	MongoDatabase string
}

// pinger is implemented by backends with a remote connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// closer is implemented by backends holding a connection.
type closer interface {
	Close() error
}

// Module owns the persistence backend shared by the cart and order modules.
type Module struct {
	cfg    Config
	kv     *kvjetstream.PluginModule
	store  KVStore
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.UsePluginModule       = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new kvstore module.
func NewModule(cfg Config, logger types.Logger) *Module {
	if cfg.Backend == "" {
		cfg.Backend = BackendJetStream
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "storefront"
	}
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "kvstore"
}

// SetPlugin receives the KV plugin from the framework.
// This is called before Start() when the module implements UsePluginModule.
func (m *Module) SetPlugin(alias string, plugin mono.PluginModule) {
	if alias == "kv" {
		kv, ok := plugin.(*kvjetstream.PluginModule)
		if !ok {
			m.logger.Error("Invalid plugin type for kv",
				"alias", alias,
				"expected", "*kvjetstream.PluginModule")
			return
		}
		m.kv = kv
		m.logger.Info("Received KV plugin", "alias", alias)
	}
}

// Start opens the configured backend.
func (m *Module) Start(ctx context.Context) error {
	store, err := m.open(ctx)
	if err != nil {
		return err
	}
	m.store = store
	m.logger.Info("KV store module started", "backend", m.cfg.Backend)
	return nil
}

func (m *Module) open(ctx context.Context) (KVStore, error) {
	switch m.cfg.Backend {
	case BackendJetStream:
		if m.kv == nil {
			return nil, fmt.Errorf("required plugin 'kv' not registered")
		}
		bucket := m.kv.Bucket(m.cfg.Bucket)
		if bucket == nil {
			return nil, fmt.Errorf("bucket '%s' not found in KV plugin", m.cfg.Bucket)
		}
		return NewJetStreamStore(bucket), nil
	case BackendRedis:
		return DialRedis(ctx, m.cfg.RedisAddr, m.cfg.RedisPrefix)
	case BackendSQLite:
		return OpenSQLite(m.cfg.DBPath, m.cfg.DBDebug)
	case BackendPostgres:
		return ConnectPostgres(ctx, m.cfg.DatabaseURL)
	case BackendMongo:
		return ConnectMongo(ctx, m.cfg.MongoURI, m.cfg.MongoDatabase)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", m.cfg.Backend)
	}
}

// Stop closes the backend connection if it holds one.
func (m *Module) Stop(_ context.Context) error {
	if c, ok := m.store.(closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close %s store: %w", m.cfg.Backend, err)
		}
	}
	m.logger.Info("KV store module stopped", "backend", m.cfg.Backend)
	return nil
}

// Health reports whether the backend is reachable.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "store not initialized",
		}
	}

	if p, ok := m.store.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("store ping failed: %v", err),
			}
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"backend": m.cfg.Backend,
		},
	}
}

// Store returns the opened backend. It is nil before Start.
func (m *Module) Store() KVStore {
	return m.store
}
