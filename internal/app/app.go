package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/niksmo/visioncart/config"
	"github.com/niksmo/visioncart/internal/adapter"
	"github.com/niksmo/visioncart/internal/adapter/catalog"
	"github.com/niksmo/visioncart/internal/adapter/httphandler"
	"github.com/niksmo/visioncart/internal/adapter/kafka"
	"github.com/niksmo/visioncart/internal/adapter/recorder"
	"github.com/niksmo/visioncart/internal/adapter/storage"
	"github.com/niksmo/visioncart/internal/adapter/tui"
	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/port"
	"github.com/niksmo/visioncart/internal/core/service"
	"github.com/niksmo/visioncart/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type sinks struct {
	sqlDB    *storage.SQLDB
	producer *kafka.ClientEventsProducer
	all      []port.ClientEventsSink
}

type renderers struct {
	httpServer *httphandler.HTTPServer
	program    *tui.Program
}

// App wires the storefront core with its catalog, intent sinks and the
// configured renderer.
type App struct {
	ctx       context.Context
	cfg       config.Config
	sessionID string
	logFile   *os.File
	products  []domain.Product
	sinks     sinks
	recorder  port.ClientEventsRecorder
	service   *service.Service
	renderers renderers
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{
		ctx:       ctx,
		cfg:       cfg,
		sessionID: uuid.NewString(),
	}

	app.initLogger()
	app.initCatalog()
	app.initSinks()
	app.initRecorder()
	app.initCoreService()
	app.initRenderer()

	return app
}

func (app *App) initLogger() {
	const op = "App.initLogger"

	var w io.Writer = os.Stderr
	switch {
	case app.cfg.LogFile != "":
		f, err := os.OpenFile(
			app.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.logFile = f
		w = f
	case app.cfg.UI == config.UITerminal:
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(w, opts)).
		With("session", app.sessionID)
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	products, err := catalog.NewFileSource(app.cfg.CatalogFile).
		LoadProducts(app.ctx)
	if err != nil {
		app.fallDown(op, err)
	}
	app.products = products
}

func (app *App) initSinks() {
	if app.cfg.SQLDB != "" {
		app.initSQLSink()
	}
	if app.cfg.Broker.Enabled() {
		app.initBrokerSink()
	}
}

func (app *App) initSQLSink() {
	const op = "App.initSQLSink"

	sqlDB, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sinks.sqlDB = &sqlDB
	app.sinks.all = append(app.sinks.all, storage.NewClientEventsRepository(sqlDB))
}

func (app *App) initBrokerSink() {
	const op = "App.initBrokerSink"

	ctx := app.ctx
	b := app.cfg.Broker

	tlsConfig, err := adapter.MakeTLSConfig(b.TLS.CA, b.TLS.Cert, b.TLS.Key)
	if err != nil {
		app.fallDown(op, err)
	}

	srOpts := []sr.ClientOpt{sr.URLs(b.SchemaRegistryURLs...)}
	if tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	clientEventSerde, err := schema.NewSerdeClientEventV1(
		ctx,
		schema.SubjectOpt(b.Topics.ClientEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewClientEventsProducer(
		kafka.ProducerClientOpt(ctx, b.SeedBrokers, b.Topics.ClientEvents, tlsConfig),
		kafka.ProducerEncoderOpt(clientEventSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sinks.producer = &producer
	app.sinks.all = append(app.sinks.all, producer)
}

func (app *App) initRecorder() {
	app.recorder = recorder.New(
		recorder.Config{
			SessionID:   app.sessionID,
			BufferSize:  app.cfg.Recorder.BufferSize,
			MaxAttempts: app.cfg.Recorder.MaxAttempts,
		},
		app.sinks.all...,
	)
}

func (app *App) initCoreService() {
	app.service = service.New(app.products, service.RecorderOpt(app.recorder))
}

func (app *App) initRenderer() {
	switch app.cfg.UI {
	case config.UIHTTP:
		mux := http.NewServeMux()
		httphandler.RegisterStorefront(mux, app.service)

		handler := httphandler.AllowJSON(mux)
		httpServer := httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
		app.renderers.httpServer = &httpServer
	default:
		app.renderers.program = tui.NewProgram(
			app.service, app.cfg.CurrencySymbol, nil, nil,
		)
	}
}

func (app *App) Run(stopFn context.CancelFunc) {
	app.recorder.Run(app.ctx, stopFn)

	if app.renderers.httpServer != nil {
		go app.renderers.httpServer.Run(stopFn)
	}
	if app.renderers.program != nil {
		app.renderers.program.Run(stopFn)
	}

	slog.Info("application is running",
		"ui", app.cfg.UI, "nSinks", len(app.sinks.all))
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	if app.renderers.program != nil {
		app.renderers.program.Close()
	}
	if app.renderers.httpServer != nil {
		app.renderers.httpServer.Close(ctx)
	}

	app.recorder.Close()

	if app.sinks.producer != nil {
		app.sinks.producer.Close()
	}
	if app.sinks.sqlDB != nil {
		app.sinks.sqlDB.Close()
	}

	slog.Info("application is closed")

	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
