// Package httpserver runs the notedeck HTTP surface with graceful shutdown.
//
// Run blocks until its context ends or the process gets SIGINT or SIGTERM.
// Shutdown first calls every WithDrain function, which is where the toast
// engine is closed so open viewport streams return, and then waits for the
// remaining requests:
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithDrain(func() { _ = engine.Close() }),
//	)
//	err := srv.Run(ctx, router)
//
// HealthCheckHandler serves liveness and readiness probes.
package httpserver
