// Package server wires the file responder into an HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/f4ah6o/piano-server/internal/config"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// server has been asked to stop.
const ShutdownTimeout = 5 * time.Second

// New returns an http.Server that sends every request matching a configured
// route to h. Requests reach h with their path exactly as received; nothing
// is cleaned or redirected on the way.
func New(cfg config.Config, h http.Handler) *http.Server {
	var handler http.Handler = routes(cfg.Routes, h)
	if cfg.LogRequests {
		handler = logRequests(handler)
	}

	return &http.Server{
		Addr:    cfg.Addr(),
		Handler: handler,
	}
}

// routes dispatches to h when the request path matches one of patterns.
// A pattern ending in "/" matches every path below it, any other pattern
// matches only itself.
func routes(patterns []string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range patterns {
			if matchRoute(p, r.URL.Path) {
				h.ServeHTTP(w, r)
				return
			}
		}
		http.NotFound(w, r)
	})
}

func matchRoute(pattern, path string) bool {
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(path, pattern)
	}
	return path == pattern
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// Banner writes the two startup lines announcing the listening URL.
func Banner(w io.Writer, port int, colored bool) {
	url := color.New(color.FgCyan, color.Underline)
	if !colored {
		url.DisableColor()
	}
	fmt.Fprintf(w, "Piano server started on %s\n", url.Sprintf("http://localhost:%d", port))
	fmt.Fprintf(w, "Open your browser and navigate to %s\n", url.Sprintf("http://localhost:%d", port))
}

// Run listens on srv.Addr and serves until ctx is cancelled.
func Run(ctx context.Context, srv *http.Server) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	return Serve(ctx, srv, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts the
// server down gracefully. ln is closed on return.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
