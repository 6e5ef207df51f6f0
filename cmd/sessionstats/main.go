package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/visioncart/config"
	"github.com/niksmo/visioncart/internal/adapter"
	"github.com/niksmo/visioncart/internal/adapter/kafka"
	"github.com/niksmo/visioncart/pkg/schema"
	"github.com/niksmo/visioncart/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/sr"
)

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	initLogger(cfg.LogLevel)

	b := cfg.Broker
	if !b.Enabled() {
		fallDown("main", fmt.Errorf("broker.seed_brokers: required"))
	}

	proc := createProcessor(sigCtx, b)

	proc.Run(sigCtx, closeApp)
	slog.Info("session stats processor is running")

	<-sigCtx.Done()
	proc.Close()
	slog.Info("session stats processor is closed")
}

func initLogger(level slog.Leveler) {
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func createProcessor(
	ctx context.Context, b config.Broker,
) *kafka.SessionStatsProcessor {
	const op = "main.createProcessor"

	tlsConfig, err := adapter.MakeTLSConfig(b.TLS.CA, b.TLS.Cert, b.TLS.Key)
	if err != nil {
		fallDown(op, err)
	}

	srOpts := []sr.ClientOpt{sr.URLs(b.SchemaRegistryURLs...)}
	if tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		fallDown(op, err)
	}

	serde, err := schema.NewSerdeClientEventV1(
		ctx,
		schema.SubjectOpt(b.Topics.ClientEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		fallDown(op, err)
	}

	proc, err := kafka.NewSessionStatsProc(kafka.SessionStatsProcConfig{
		SeedBrokers: b.SeedBrokers,
		InputStream: b.Topics.ClientEvents,
		Group:       b.Consumers.SessionStatsGroup,
		Serde:       serde,
		TLSConfig:   tlsConfig,
	})
	if err != nil {
		fallDown(op, err)
	}
	return proc
}

func fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
