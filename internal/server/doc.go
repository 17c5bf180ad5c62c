// Package server wires the widgetdash components into a running HTTP server.
//
// # Overview
//
// Server owns the session store, the script registry, the page host and the
// metrics registry. It serves:
//
//   - GET / - list of demo pages
//   - GET|POST /app/{script} - one rerun of a demo page
//   - GET /health - liveness check
//   - GET /metrics - Prometheus metrics, when enabled
//
// A Janitor deletes sessions that have been idle longer than the configured
// TTL.
//
// # Lifecycle
//
//	srv, err := server.New(cfg, logger)
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	err = srv.Run(ctx)
//
// Run blocks until ctx is canceled or the listener fails, then shuts down
// with a fresh five second deadline.
package server
