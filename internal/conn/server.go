package conn

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/theographic/theodb/internal/config"
	"github.com/theographic/theodb/internal/graphql"
	"github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/pkg"
)

const (
	requestIDHeader = "X-Request-Id"
	shutdownTimeout = 10 * time.Second
)

// Handler builds the HTTP surface: /graphql, /health and /ws when enabled.
func (s *Server) Handler(cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/graphql", graphql.NewHandler(s.Executor))
	if cfg.Websocket.Enabled {
		mux.HandleFunc("/ws", s.HandleConnection)
	}

	handler := http.Handler(mux)
	if cfg.Trace.Enabled {
		handler = otelhttp.NewHandler(handler, "theodb")
	}

	handler = cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		AllowedHeaders: cfg.HTTP.CORSAllowedHeaders,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(handler)

	return requestID(handler)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if len(id) == 0 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// Listen serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func Listen(ctx context.Context, cfg *config.Config, engine *query.Engine) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, l, cfg, engine)
}

// Serve is Listen on an existing listener.
func Serve(ctx context.Context, l net.Listener, cfg *config.Config, engine *query.Engine) error {
	srv := NewServer(engine, cfg.Websocket.BufferSize)
	s := &http.Server{
		Handler:           srv.Handler(cfg),
		ReadHeaderTimeout: 30 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(l)
	}()

	pkg.InfoLog("theodb listening on", l.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	pkg.DebugLog("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	pkg.InfoLog("server shut down")
	return nil
}
