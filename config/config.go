package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "VISIONCART_CONFIG_FILE"

const (
	UITerminal = "tui"
	UIHTTP     = "http"
)

type consumers struct {
	SessionStatsGroup string `mapstructure:"session_stats_group"`
}

type topics struct {
	ClientEvents string `mapstructure:"client_events"`
}

type BrokerTLS struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type Broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
	TLS                BrokerTLS `mapstructure:"tls"`
}

// Enabled reports whether client events should be produced to the broker.
func (b Broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type recorder struct {
	BufferSize  int `mapstructure:"buffer_size"`
	MaxAttempts int `mapstructure:"max_attempts"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	LogFile        string     `mapstructure:"log_file"`
	UI             string     `mapstructure:"ui"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	CatalogFile    string     `mapstructure:"catalog_file"`
	CurrencySymbol string     `mapstructure:"currency_symbol"`
	SQLDB          string     `mapstructure:"sql_db"`
	Recorder       recorder   `mapstructure:"recorder"`
	Broker         Broker     `mapstructure:"broker"`
}

func Load() Config {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(getConfigFilepath())

	err := v.ReadInConfig()
	if err != nil {
		die(err)
	}

	cfg, err := unmarshal(v)
	if err != nil {
		die(err)
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("ui", UITerminal)
	v.SetDefault("http_server_addr", "127.0.0.1:8080")
	v.SetDefault("currency_symbol", "$")
	v.SetDefault("recorder.buffer_size", 256)
	v.SetDefault("recorder.max_attempts", 3)
	v.SetDefault("broker.topics.client_events", "visioncart-client-events")
	v.SetDefault("broker.consumers.session_stats_group", "visioncart-session-stats")
}

func unmarshal(v *viper.Viper) (Config, error) {
	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, err
	}

	switch cfg.UI {
	case UITerminal, UIHTTP:
	default:
		return Config{}, fmt.Errorf("unknown ui %q, want %q or %q",
			cfg.UI, UITerminal, UIHTTP)
	}
	return cfg, nil
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	LogFile=%q
	UI=%q
	HTTPServerAddr=%q
	CatalogFile=%q
	CurrencySymbol=%q
	SQLDB=%q

	Recorder:
	BufferSize=%d
	MaxAttempts=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		ClientEvents=%q
	Consumers:
		SessionStatsGroup=%q
	TLS:
		CA=%q
		Cert=%q
		Key=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.LogFile,
		c.UI,
		c.HTTPServerAddr,
		c.CatalogFile,
		c.CurrencySymbol,
		redact(c.SQLDB),
		c.Recorder.BufferSize,
		c.Recorder.MaxAttempts,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.ClientEvents,
		c.Broker.Consumers.SessionStatsGroup,
		c.Broker.TLS.CA,
		c.Broker.TLS.Cert,
		c.Broker.TLS.Key,
	)
}

// redact hides the password part of a postgres url.
func redact(dsn string) string {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return dsn
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return dsn
	}
	user, _, hasPass := strings.Cut(creds, ":")
	if !hasPass {
		return dsn
	}
	return scheme + "://" + user + ":***@" + host
}
