package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-festoon/pkg/middleware"
	"github.com/goliatone/go-festoon/pkg/resolver"
)

const shutdownTimeout = 5 * time.Second

// newMux exposes req at "/" and every single source at "/sources/{id}".
// Query parameters become load params.
func newMux(r *resolver.Resolver, req resolver.Request, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", middleware.Decorate(r, req, middleware.WithLogger(logger))(http.HandlerFunc(writeData)))
	mux.HandleFunc("GET /sources/{id}", func(w http.ResponseWriter, hr *http.Request) {
		decorate := middleware.Decorate(r, resolver.ID(hr.PathValue("id")), middleware.WithLogger(logger))
		decorate(http.HandlerFunc(writeData)).ServeHTTP(w, hr)
	})
	return mux
}

func writeData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(middleware.DataFromContext(r.Context()).Map())
}

func serve(ctx context.Context, addr string, r *resolver.Resolver, req resolver.Request, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(r, req, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", addr, "request", req.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
