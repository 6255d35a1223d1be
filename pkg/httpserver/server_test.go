package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedeck/notedeck/pkg/httpserver"
)

// startWith builds a server with build, runs it on a random port and returns
// the bound address and the channel Run's result arrives on.
func startWith(t *testing.T, build func(...httpserver.Option) *httpserver.Server, h http.Handler) (string, <-chan error) {
	t.Helper()
	addrCh := make(chan string, 1)
	srv := build(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithShutdownTimeout(200*time.Millisecond),
		httpserver.WithStartHook(func(addr string) { addrCh <- addr }),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Run(t.Context(), h) }()

	select {
	case addr := <-addrCh:
		return addr, done
	case err := <-done:
		require.FailNow(t, "run returned early", "%v", err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "server did not start")
	}
	return "", nil
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.FailNow(t, "run did not finish")
	}
}

func TestRunAndCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan string, 1)
	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithStartHook(func(addr string) { addrCh <- addr }),
	)
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "ok")
		}))
	}()
	addr := <-addrCh

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	waitDone(t, done)
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestDrainEndsStreams(t *testing.T) {
	t.Parallel()

	stop := make(chan struct{})
	var drained atomic.Bool
	streaming := make(chan struct{})

	var srv *httpserver.Server
	addr, done := startWith(t, func(opts ...httpserver.Option) *httpserver.Server {
		srv = httpserver.New(append(opts, httpserver.WithDrain(func() {
			drained.Store(true)
			close(stop)
		}))...)
		return srv
	}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		close(streaming)
		<-stop
	}))

	go func() {
		resp, err := http.Get("http://" + addr)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}
	}()
	<-streaming

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.True(t, drained.Load())
	waitDone(t, done)
}

func TestStartError(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr(":invalid"))
	err := srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestAlreadyRunning(t *testing.T) {
	t.Parallel()

	var first *httpserver.Server
	_, done := startWith(t, func(opts ...httpserver.Option) *httpserver.Server {
		first = httpserver.New(opts...)
		return first
	}, http.NewServeMux())

	err := first.Run(context.Background(), http.NewServeMux())
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	require.NoError(t, first.Shutdown(context.Background()))
	require.NoError(t, first.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestShutdownBeforeRun(t *testing.T) {
	t.Parallel()
	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	tests := map[string]func(){
		"addr":     func() { httpserver.WithAddr("") },
		"header":   func() { httpserver.WithReadHeaderTimeout(0) },
		"read":     func() { httpserver.WithReadTimeout(-time.Second) },
		"write":    func() { httpserver.WithWriteTimeout(-time.Second) },
		"idle":     func() { httpserver.WithIdleTimeout(-time.Second) },
		"shutdown": func() { httpserver.WithShutdownTimeout(-time.Second) },
		"drain":    func() { httpserver.WithDrain(nil) },
		"start":    func() { httpserver.WithStartHook(nil) },
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, fn)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	addrCh := make(chan string, 1)
	srv := httpserver.NewFromConfig(httpserver.Config{
		Addr:            "127.0.0.1:0",
		ReadTimeout:     time.Second,
		ShutdownTimeout: 100 * time.Millisecond,
	}, httpserver.WithStartHook(func(addr string) { addrCh <- addr }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()
	addr := <-addrCh

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	waitDone(t, done)
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	probe := func(h http.HandlerFunc) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		return rec
	}

	rec := probe(httpserver.HealthCheckHandler(nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())

	ok := func(context.Context) error { return nil }
	rec = probe(httpserver.HealthCheckHandler(nil, ok))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	failing := func(context.Context) error { return errors.New("engine closed") }
	rec = probe(httpserver.HealthCheckHandler(nil, ok, failing))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}
