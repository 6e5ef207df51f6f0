package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/internal/core/port"
	"github.com/niksmo/visioncart/pkg/retry"
)

const (
	defaultBufferSize  = 256
	defaultMaxAttempts = 3
	maxBatchSize       = 64
	sendTimeout        = 5 * time.Second
)

var _ port.ClientEventsRecorder = (*Recorder)(nil)

// A Config used for setup [Recorder]. Zero fields take defaults.
type Config struct {
	SessionID   string
	BufferSize  int
	MaxAttempts int
	Backoff     retry.Backoff
}

// A Recorder stamps client events with the session id and ships them to
// the sinks on a background goroutine.
//
// Record never blocks: when the buffer is full the event is dropped.
type Recorder struct {
	sessionID string
	sinks     []port.ClientEventsSink
	retryCfg  retry.RetryConfig

	mu     sync.RWMutex
	closed bool
	events chan domain.ClientEvent
	wg     sync.WaitGroup
}

func New(cfg Config, sinks ...port.ClientEventsSink) *Recorder {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaultBufferSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &Recorder{
		sessionID: cfg.SessionID,
		sinks:     sinks,
		retryCfg: retry.RetryConfig{
			MaxAttempts: cfg.MaxAttempts,
			Backoff:     cfg.Backoff,
		},
		events: make(chan domain.ClientEvent, cfg.BufferSize),
	}
}

func (r *Recorder) Record(evt domain.ClientEvent) {
	const op = "Recorder.Record"

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	evt.SessionID = r.sessionID
	select {
	case r.events <- evt:
	default:
		slog.Warn("buffer is full, event dropped",
			"op", op, "intent", evt.Intent, "version", evt.Version)
	}
}

// Run starts shipping events and returns. stopFn is called when the
// shipping goroutine exits.
func (r *Recorder) Run(ctx context.Context, stopFn context.CancelFunc) {
	const op = "Recorder.Run"

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer stopFn()
		r.loop(ctx)
	}()

	slog.Info("running", "op", op, "nSinks", len(r.sinks))
}

// Close stops accepting events and waits until the buffered ones are
// shipped.
func (r *Recorder) Close() {
	const op = "Recorder.Close"
	log := slog.With("op", op)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.events)
	r.mu.Unlock()

	log.Info("closing recorder...")
	r.wg.Wait()
	log.Info("recorder is closed")
}

func (r *Recorder) loop(ctx context.Context) {
	for evt := range r.events {
		batch := r.collect(evt)
		r.send(ctx, batch)
	}
}

func (r *Recorder) collect(first domain.ClientEvent) []domain.ClientEvent {
	batch := []domain.ClientEvent{first}
	for len(batch) < maxBatchSize {
		select {
		case evt, ok := <-r.events:
			if !ok {
				return batch
			}
			batch = append(batch, evt)
		default:
			return batch
		}
	}
	return batch
}

func (r *Recorder) send(ctx context.Context, batch []domain.ClientEvent) {
	const op = "Recorder.send"
	log := slog.With("op", op)

	// Buffered events are still shipped during shutdown.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
	defer cancel()

	for _, sink := range r.sinks {
		err := retry.Do(ctx, r.retryCfg, func() error {
			return sink.SendEvents(ctx, batch)
		})
		if err != nil {
			log.Error("failed to send events",
				"sink", fmt.Sprintf("%T", sink),
				"nEvents", len(batch), "err", err)
			continue
		}
		log.Debug("events sent", "nEvents", len(batch))
	}
}
