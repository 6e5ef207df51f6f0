package httphandler_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/niksmo/visioncart/internal/adapter/httphandler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPServerServe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := httphandler.NewHTTPServer(ln.Addr().String(), newTestHandler())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Serve(ln)
	}()

	res, err := http.Get("http://" + ln.Addr().String() + "/v1/storefront")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var snap httphandler.Snapshot
	require.NoError(t, json.NewDecoder(res.Body).Decode(&snap))
	assert.Len(t, snap.Catalog, 3)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Close(ctx)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHTTPServerRunListenFails(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s := httphandler.NewHTTPServer(ln.Addr().String(), newTestHandler())

	var stopped bool
	s.Run(func() { stopped = true })
	assert.True(t, stopped)
}
