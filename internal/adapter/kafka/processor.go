package kafka

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/port"
	"github.com/niksmo/visioncart/pkg/schema"
)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

// run blocks until the processor is ready or ctx is done.
func (p *processor) run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "runProc"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A clientEventCodec used for serde [schema.ClientEventV1]
type clientEventCodec struct {
	serde Serde
}

func newClientEventCodec(s Serde) clientEventCodec {
	return clientEventCodec{s}
}

func (c clientEventCodec) Encode(v any) ([]byte, error) {
	const op = "clientEventCodec.Encode"
	if _, ok := v.(schema.ClientEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c clientEventCodec) Decode(data []byte) (any, error) {
	const op = "clientEventCodec.Decode"
	var s schema.ClientEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

// A sessionStatsCodec used for serde [schema.SessionStatsV1] group table
// values. Table values carry no registry header.
type sessionStatsCodec struct {
	encode func(any) ([]byte, error)
	decode func([]byte, any) error
}

func newSessionStatsCodec() sessionStatsCodec {
	s := schema.SessionStatsV1Avro()
	return sessionStatsCodec{
		encode: schema.AvroEncodeFn(s),
		decode: schema.AvroDecodeFn(s),
	}
}

func (c sessionStatsCodec) Encode(v any) ([]byte, error) {
	const op = "sessionStatsCodec.Encode"
	if _, ok := v.(schema.SessionStatsV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.encode(v)
}

func (c sessionStatsCodec) Decode(data []byte) (any, error) {
	const op = "sessionStatsCodec.Decode"
	var s schema.SessionStatsV1
	if err := c.decode(data, &s); err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

var _ port.SessionStatsProcessor = (*SessionStatsProcessor)(nil)

// A SessionStatsProcessor folds the client events stream into a group
// table of [domain.SessionStats] keyed by session id.
type SessionStatsProcessor struct {
	opPrefix string
	proc     processor
}

// A SessionStatsProcConfig used for setup [SessionStatsProcessor].
//
// TLSConfig is optional, the rest of the fields are required.
type SessionStatsProcConfig struct {
	SeedBrokers []string
	InputStream string
	Group       string
	Serde       Serde
	TLSConfig   *tls.Config
}

// NewSessionStatsProc builds the processor. Options in opts are applied
// after the broker connection options.
func NewSessionStatsProc(
	config SessionStatsProcConfig, opts ...goka.ProcessorOption,
) (*SessionStatsProcessor, error) {
	const op = "NewSessionStatsProc"

	p := SessionStatsProcessor{opPrefix: "SessionStatsProcessor"}

	gg := goka.DefineGroup(goka.Group(config.Group),
		goka.Input(
			goka.Stream(config.InputStream),
			newClientEventCodec(config.Serde),
			p.processFn,
		),
		goka.Persist(newSessionStatsCodec()),
	)

	procOpts := append(brokerProcOpts(config.TLSConfig), opts...)
	gp, err := goka.NewProcessor(config.SeedBrokers, gg, procOpts...)
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}
	return &p, nil
}

func (p *SessionStatsProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc,
) {
	p.proc.run(ctx, stopFn)
}

func (p *SessionStatsProcessor) Close() {
	p.proc.close()
}

func (p *SessionStatsProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op), "session", ctx.Key())

	event, ok := msg.(schema.ClientEventV1)
	if !ok {
		log.Error("unexpected message type", "err", ErrInvalidValueType)
		return
	}

	var stats domain.SessionStats
	if v, ok := ctx.Value().(schema.SessionStatsV1); ok {
		stats = sessionStatsFromSchemaV1(v)
	}

	stats = stats.Apply(clientEventFromSchemaV1(event))
	ctx.SetValue(sessionStatsToSchemaV1(stats))
	log.Debug("stats updated", "intents", stats.Intents)
}
