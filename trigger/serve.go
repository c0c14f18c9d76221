package trigger

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

// NewMux routes push deliveries to the handler and answers health checks.
func NewMux(push http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("/", push)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, rq *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

// Serve runs an HTTP server on addr until the context is cancelled, then shuts it down
// gracefully. If withH2C is set the server also accepts HTTP/2 without TLS.
func Serve(ctx context.Context, addr string, handler http.Handler, withH2C bool, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if withH2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", "address", addr, "h2c", withH2C)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdown)
	})

	return g.Wait()
}
