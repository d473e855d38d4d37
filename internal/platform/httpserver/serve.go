// Package httpserver runs an http.Handler until its context is cancelled.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"

	"goal_backend/internal/config"
	"goal_backend/internal/platform/logutil"
)

// Serve listens on cfg.Addr and blocks until ctx is cancelled or the
// listener fails. On cancellation in-flight requests get up to
// cfg.ShutdownTimeout to finish.
func Serve(ctx context.Context, cfg config.HTTP, handler http.Handler) error {
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	return ServeListener(ctx, ln, cfg, handler)
}

// ServeListener is Serve on an existing listener.
func ServeListener(ctx context.Context, ln net.Listener, cfg config.HTTP, handler http.Handler) error {
	server := &http.Server{
		Handler:           handler,
		Addr:              ln.Addr().String(),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		// Requests keep the logger but not the cancellation; Shutdown drains them.
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", server.Addr).Logger()

	firstErr := make(chan error, 1)
	go func() {
		defer close(firstErr)
		log.Info().Msg("Starting HTTP server")
		err := server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			log.Info().Msg("Server closed")
			return
		}
		firstErr <- err
	}()

	select {
	case err := <-firstErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Initiating shutdown process")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("Shutdown completed")
	return <-firstErr
}
