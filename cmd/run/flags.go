package run

import (
	"github.com/spf13/cobra"

	"github.com/theographic/theodb/cmd/util"
	"github.com/theographic/theodb/internal/config"
)

// bindRunFlags binds the cobra cmd flags to the equivalent config value being managed
// by viper. This bridges the config between cobra flags and viper flags.
func bindRunFlags(command *cobra.Command) {
	defaultConfig := config.DefaultConfig()
	flags := command.Flags()

	flags.String("data-dir", defaultConfig.Data.Dir, "the directory holding one <collection>.json file per collection")
	util.MustBindPFlag("data.dir", flags.Lookup("data-dir"))
	util.MustBindEnv("data.dir", "THEODB_DATA_DIR")

	flags.String("http-addr", defaultConfig.HTTP.Addr, "the host:port address to serve the HTTP server on")
	util.MustBindPFlag("http.addr", flags.Lookup("http-addr"))
	util.MustBindEnv("http.addr", "THEODB_HTTP_ADDR")

	flags.StringSlice("http-cors-allowed-origins", defaultConfig.HTTP.CORSAllowedOrigins, "specifies the CORS allowed origins")
	util.MustBindPFlag("http.corsAllowedOrigins", flags.Lookup("http-cors-allowed-origins"))
	util.MustBindEnv("http.corsAllowedOrigins", "THEODB_HTTP_CORS_ALLOWED_ORIGINS", "THEODB_HTTP_CORSALLOWEDORIGINS")

	flags.StringSlice("http-cors-allowed-headers", defaultConfig.HTTP.CORSAllowedHeaders, "specifies the CORS allowed headers")
	util.MustBindPFlag("http.corsAllowedHeaders", flags.Lookup("http-cors-allowed-headers"))
	util.MustBindEnv("http.corsAllowedHeaders", "THEODB_HTTP_CORS_ALLOWED_HEADERS", "THEODB_HTTP_CORSALLOWEDHEADERS")

	flags.Bool("websocket-enabled", defaultConfig.Websocket.Enabled, "enable/disable the websocket endpoint on '/ws'")
	util.MustBindPFlag("websocket.enabled", flags.Lookup("websocket-enabled"))
	util.MustBindEnv("websocket.enabled", "THEODB_WEBSOCKET_ENABLED")

	flags.Int("websocket-buffer-size", defaultConfig.Websocket.BufferSize, "the read and write buffer size of websocket connections, in bytes")
	util.MustBindPFlag("websocket.bufferSize", flags.Lookup("websocket-buffer-size"))
	util.MustBindEnv("websocket.bufferSize", "THEODB_WEBSOCKET_BUFFER_SIZE", "THEODB_WEBSOCKET_BUFFERSIZE")

	flags.String("log-format", defaultConfig.Log.Format, "the log format to output logs in. For production we recommend 'json' format")
	util.MustBindPFlag("log.format", flags.Lookup("log-format"))
	util.MustBindEnv("log.format", "THEODB_LOG_FORMAT")

	flags.String("log-level", defaultConfig.Log.Level, "the log level to use. Supported values are 'none', 'debug', 'info', 'warn', 'error' and 'fatal'")
	util.MustBindPFlag("log.level", flags.Lookup("log-level"))
	util.MustBindEnv("log.level", "THEODB_LOG_LEVEL")

	flags.Bool("metrics-enabled", defaultConfig.Metrics.Enabled, "enable/disable prometheus metrics on the '/metrics' endpoint")
	util.MustBindPFlag("metrics.enabled", flags.Lookup("metrics-enabled"))
	util.MustBindEnv("metrics.enabled", "THEODB_METRICS_ENABLED")

	flags.String("metrics-addr", defaultConfig.Metrics.Addr, "the host:port address to serve the prometheus metrics server on")
	util.MustBindPFlag("metrics.addr", flags.Lookup("metrics-addr"))
	util.MustBindEnv("metrics.addr", "THEODB_METRICS_ADDR")

	flags.Bool("trace-enabled", defaultConfig.Trace.Enabled, "enable tracing")
	util.MustBindPFlag("trace.enabled", flags.Lookup("trace-enabled"))
	util.MustBindEnv("trace.enabled", "THEODB_TRACE_ENABLED")

	flags.String("trace-otlp-endpoint", defaultConfig.Trace.OTLP.Endpoint, "the endpoint of the trace collector")
	util.MustBindPFlag("trace.otlp.endpoint", flags.Lookup("trace-otlp-endpoint"))
	util.MustBindEnv("trace.otlp.endpoint", "THEODB_TRACE_OTLP_ENDPOINT")

	flags.Float64("trace-sample-ratio", defaultConfig.Trace.SampleRatio, "the fraction of traces to sample. 1 means all, 0 means none")
	util.MustBindPFlag("trace.sampleRatio", flags.Lookup("trace-sample-ratio"))
	util.MustBindEnv("trace.sampleRatio", "THEODB_TRACE_SAMPLE_RATIO", "THEODB_TRACE_SAMPLERATIO")

	flags.String("trace-service-name", defaultConfig.Trace.ServiceName, "the service name included in sampled traces")
	util.MustBindPFlag("trace.serviceName", flags.Lookup("trace-service-name"))
	util.MustBindEnv("trace.serviceName", "THEODB_TRACE_SERVICE_NAME", "THEODB_TRACE_SERVICENAME")
}
