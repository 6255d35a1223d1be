package httpserver

import (
	"log/slog"
	"time"
)

// Option configures a Server.
type Option func(*config)

func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr: empty address")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadHeaderTimeout(d time.Duration) Option {
	mustPositive("WithReadHeaderTimeout", d)
	return func(c *config) { c.readHeaderTimeout = d }
}

func WithReadTimeout(d time.Duration) Option {
	mustPositive("WithReadTimeout", d)
	return func(c *config) { c.readTimeout = d }
}

// WithWriteTimeout bounds response writes. Leave it unset when serving
// long-lived SSE streams.
func WithWriteTimeout(d time.Duration) Option {
	mustPositive("WithWriteTimeout", d)
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustPositive("WithIdleTimeout", d)
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds how long Shutdown waits for in-flight requests.
func WithShutdownTimeout(d time.Duration) Option {
	mustPositive("WithShutdownTimeout", d)
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger sets the server logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithDrain registers fn to run as soon as shutdown begins, before the server
// waits for active connections. Use it to end streaming handlers, e.g. by
// closing the toast engine so every viewport stream returns.
func WithDrain(fn func()) Option {
	if fn == nil {
		panic("httpserver: WithDrain: nil func")
	}
	return func(c *config) { c.drain = append(c.drain, fn) }
}

// WithStartHook registers fn to run once the listener is bound. It receives
// the bound address, which differs from the configured one for ":0".
func WithStartHook(fn func(addr string)) Option {
	if fn == nil {
		panic("httpserver: WithStartHook: nil func")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, fn) }
}

func mustPositive(name string, d time.Duration) {
	if d <= 0 {
		panic("httpserver: " + name + ": duration must be positive")
	}
}
