package recorder_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/niksmo/visioncart/internal/adapter/recorder"
	"github.com/niksmo/visioncart/internal/core/domain"
	"github.com/niksmo/visioncart/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeSink struct {
	mu       sync.Mutex
	failures int
	calls    int
	events   []domain.ClientEvent
}

func (s *fakeSink) SendEvents(_ context.Context, evts []domain.ClientEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("sink unavailable")
	}
	s.events = append(s.events, evts...)
	return nil
}

func (s *fakeSink) snapshot() (int, []domain.ClientEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ClientEvent, len(s.events))
	copy(out, s.events)
	return s.calls, out
}

func noopStop() {}

func TestRecorderShipsEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	sinkA, sinkB := new(fakeSink), new(fakeSink)
	r := recorder.New(recorder.Config{SessionID: "session-1"}, sinkA, sinkB)
	r.Run(t.Context(), noopStop)

	for v := uint64(1); v <= 3; v++ {
		r.Record(domain.ClientEvent{Intent: domain.IntentGoToCart, Version: v})
	}
	r.Close()

	for _, sink := range []*fakeSink{sinkA, sinkB} {
		_, evts := sink.snapshot()
		require.Len(t, evts, 3)
		for i, evt := range evts {
			assert.Equal(t, "session-1", evt.SessionID)
			assert.Equal(t, uint64(i+1), evt.Version)
		}
	}
}

func TestRecorderRetriesSink(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &fakeSink{failures: 2}
	r := recorder.New(recorder.Config{
		MaxAttempts: 3,
		Backoff:     retry.ConstantBackoff(time.Millisecond),
	}, sink)
	r.Run(t.Context(), noopStop)

	r.Record(domain.ClientEvent{Intent: domain.IntentAddToCart})
	r.Close()

	calls, evts := sink.snapshot()
	assert.Equal(t, 3, calls)
	assert.Len(t, evts, 1)
}

func TestRecorderGivesUp(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &fakeSink{failures: 10}
	r := recorder.New(recorder.Config{
		MaxAttempts: 2,
		Backoff:     retry.ConstantBackoff(time.Millisecond),
	}, sink)
	r.Run(t.Context(), noopStop)

	r.Record(domain.ClientEvent{Intent: domain.IntentAddToCart})
	r.Close()

	calls, evts := sink.snapshot()
	assert.Equal(t, 2, calls)
	assert.Empty(t, evts)
}

func TestRecorderDropsWhenFull(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := new(fakeSink)
	r := recorder.New(recorder.Config{BufferSize: 1}, sink)

	r.Record(domain.ClientEvent{Version: 1})
	r.Record(domain.ClientEvent{Version: 2})

	r.Run(t.Context(), noopStop)
	r.Close()

	_, evts := sink.snapshot()
	require.Len(t, evts, 1)
	assert.Equal(t, uint64(1), evts[0].Version)
}

func TestRecorderIgnoresAfterClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := new(fakeSink)
	r := recorder.New(recorder.Config{}, sink)
	r.Run(t.Context(), noopStop)
	r.Close()
	r.Close()

	assert.NotPanics(t, func() {
		r.Record(domain.ClientEvent{Version: 1})
	})
	_, evts := sink.snapshot()
	assert.Empty(t, evts)
}

func TestRecorderCallsStopFn(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(t.Context())
	r := recorder.New(recorder.Config{})
	r.Run(ctx, cancel)
	r.Close()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
