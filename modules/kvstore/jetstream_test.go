package kvstore

import (
	"context"
	"testing"

	"github.com/go-monolith/mono"
	kvjetstream "github.com/go-monolith/mono/plugin/kv-jetstream"
	"github.com/stretchr/testify/require"
)

// startJetStreamModule boots an embedded, JetStream-enabled mono app with an in-memory bucket
// and returns a started kvstore module bound to it.
func startJetStreamModule(t *testing.T) *Module {
	t.Helper()

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError),
		mono.WithJetStreamStorageDir(t.TempDir()),
		mono.WithNATSDontListen(),
		mono.WithNATSInProcessConn(),
	)
	require.NoError(t, err)

	plugin, err := kvjetstream.New(kvjetstream.Config{
		Buckets: []kvjetstream.BucketConfig{
			{
				Name:        DefaultBucket,
				Description: "Test bucket",
				Storage:     kvjetstream.MemoryStorage,
			},
		},
	})
	require.NoError(t, err)
	require.NoError(t, app.RegisterPlugin(plugin, "kv"))
	require.NoError(t, app.Start(context.Background()))

	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	m := NewModule(Config{Backend: BackendJetStream}, &mockLogger{})
	m.SetPlugin("kv", plugin)
	require.NoError(t, m.Start(context.Background()))
	return m
}

func TestJetStreamStore(t *testing.T) {
	m := startJetStreamModule(t)
	runStoreContract(t, m.Store())
}

func TestModule_SetPlugin_IgnoresOtherAliases(t *testing.T) {
	m := NewModule(Config{Backend: BackendJetStream}, &mockLogger{})
	m.SetPlugin("storage", nil)
	require.Nil(t, m.kv)
}
