package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readConfig(t *testing.T, content string) (Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	return unmarshal(v)
}

func TestUnmarshal(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := readConfig(t, "log_file: ''\n")
		require.NoError(t, err)

		assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
		assert.Equal(t, UITerminal, cfg.UI)
		assert.Equal(t, "$", cfg.CurrencySymbol)
		assert.Equal(t, 256, cfg.Recorder.BufferSize)
		assert.Equal(t, 3, cfg.Recorder.MaxAttempts)
		assert.False(t, cfg.Broker.Enabled())
	})

	t.Run("Full", func(t *testing.T) {
		cfg, err := readConfig(t, `
log_level: debug
ui: http
http_server_addr: ":9000"
catalog_file: /etc/visioncart/catalog.yaml
sql_db: postgres://cart:secret@db:5432/visioncart
broker:
  seed_brokers: ["kafka-0:9092", "kafka-1:9092"]
  schema_registry_urls: ["http://sr:8081"]
  topics:
    client_events: events
  tls:
    ca: /tls/ca.crt
`)
		require.NoError(t, err)

		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, UIHTTP, cfg.UI)
		assert.Equal(t, ":9000", cfg.HTTPServerAddr)
		assert.Equal(t, "/etc/visioncart/catalog.yaml", cfg.CatalogFile)
		assert.True(t, cfg.Broker.Enabled())
		assert.Equal(t, []string{"kafka-0:9092", "kafka-1:9092"}, cfg.Broker.SeedBrokers)
		assert.Equal(t, "events", cfg.Broker.Topics.ClientEvents)
		assert.Equal(t, "visioncart-session-stats", cfg.Broker.Consumers.SessionStatsGroup)
		assert.Equal(t, "/tls/ca.crt", cfg.Broker.TLS.CA)
	})

	t.Run("UnknownKey", func(t *testing.T) {
		_, err := readConfig(t, "colour: red\n")
		assert.Error(t, err)
	})

	t.Run("UnknownUI", func(t *testing.T) {
		_, err := readConfig(t, "ui: gtk\n")
		assert.Error(t, err)
	})
}

func TestRedact(t *testing.T) {
	assert.Equal(t,
		"postgres://cart:***@db:5432/visioncart",
		redact("postgres://cart:secret@db:5432/visioncart"),
	)
	assert.Equal(t, "postgres://db/visioncart", redact("postgres://db/visioncart"))
	assert.Equal(t, "", redact(""))
}
