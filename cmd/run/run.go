// Package run contains the command to run the theodb server.
package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/theographic/theodb/internal/builder"
	"github.com/theographic/theodb/internal/config"
	"github.com/theographic/theodb/internal/conn"
	"github.com/theographic/theodb/internal/query"
	"github.com/theographic/theodb/internal/schema"
	"github.com/theographic/theodb/internal/telemetry"
	"github.com/theographic/theodb/pkg"
)

func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the theodb server",
		Long:  "Load the data directory and serve it over GraphQL and websocket.",
		Run:   run,
		Args:  cobra.NoArgs,
	}

	bindRunFlags(cmd)
	return cmd
}

// ReadConfig returns the theodb server configuration based on the values provided in the server's 'config.yaml' file.
// The 'config.yaml' file is loaded from '/etc/theodb', '$HOME/.theodb', or the current working directory. If no configuration
// file is present, the default values are returned.
func ReadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	viper.SetTypeByDefaultValue(true)
	err := viper.ReadInConfig()
	if err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to load server config: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal server config: %w", err)
	}

	return cfg, nil
}

func run(_ *cobra.Command, _ []string) {
	cfg, err := ReadConfig()
	if err != nil {
		panic(err)
	}

	if err := cfg.Verify(); err != nil {
		panic(err)
	}

	logger := pkg.MustNewLogger(cfg.Log.Format, cfg.Log.Level)
	serverCtx := &ServerContext{Logger: logger}
	if err := serverCtx.Run(context.Background(), cfg); err != nil {
		panic(err)
	}
}

type ServerContext struct {
	Logger *zap.Logger
}

func (s *ServerContext) telemetryConfig(cfg *config.Config) func() error {
	if cfg.Trace.Enabled {
		s.Logger.Info(fmt.Sprintf("🕵 tracing enabled: sampling ratio is %v and sending traces to '%s'", cfg.Trace.SampleRatio, cfg.Trace.OTLP.Endpoint))

		tp := telemetry.MustNewTracerProvider(
			telemetry.WithOTLPEndpoint(cfg.Trace.OTLP.Endpoint),
			telemetry.WithServiceName(cfg.Trace.ServiceName),
			telemetry.WithSamplingRatio(cfg.Trace.SampleRatio),
		)
		return func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
			defer cancel()
			return errors.Join(tp.ForceFlush(ctx), tp.Shutdown(ctx))
		}
	}
	otel.SetTracerProvider(noop.NewTracerProvider())
	return func() error {
		return nil
	}
}

// Run loads the data directory and serves it until ctx is cancelled or the
// process is interrupted.
func (s *ServerContext) Run(ctx context.Context, cfg *config.Config) error {
	pkg.SetLogger(s.Logger)
	defer s.Logger.Sync()

	if err := schema.Entities.Check(); err != nil {
		return fmt.Errorf("invalid entity declarations: %w", err)
	}

	shutdownTracer := s.telemetryConfig(cfg)
	defer func() {
		if err := shutdownTracer(); err != nil {
			s.Logger.Error("failed to shutdown tracing", zap.Error(err))
		}
	}()

	store := builder.LoadStore(cfg.Data.Dir, schema.Entities.CollectionSpecs())
	s.Logger.Info("dataset loaded", zap.String("dir", cfg.Data.Dir), zap.Any("collections", store.Stats()))

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		metricsServer = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 30 * time.Second}

		go func() {
			s.Logger.Info(fmt.Sprintf("📈 starting prometheus metrics server on '%s'", cfg.Metrics.Addr))
			if err := metricsServer.ListenAndServe(); err != nil {
				if !errors.Is(err, http.ErrServerClosed) {
					s.Logger.Fatal("failed to start prometheus metrics server", zap.Error(err))
				}
			}
			s.Logger.Info("metrics server shut down.")
		}()
	}

	err := conn.Listen(ctx, cfg, query.NewEngine(store, schema.Entities))

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			s.Logger.Info("failed to shutdown the prometheus metrics server", zap.Error(err))
		}
	}

	s.Logger.Info("server exited. goodbye 👋")
	return err
}
