// Package config holds the server configuration and its defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/theographic/theodb/pkg"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type DataConfig struct {
	// Dir holds one <collection>.json file per collection
	Dir string
}

type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins []string `mapstructure:"corsAllowedOrigins"`
	CORSAllowedHeaders []string `mapstructure:"corsAllowedHeaders"`
}

type WebsocketConfig struct {
	Enabled    bool
	BufferSize int `mapstructure:"bufferSize"`
}

type LogConfig struct {
	// Format is "text" or "json"
	Format string
	// Level is one of none, debug, info, warn, error, fatal
	Level string
}

type MetricsConfig struct {
	Enabled bool
	Addr    string
}

type OTLPConfig struct {
	Endpoint string
}

type TraceConfig struct {
	Enabled     bool
	OTLP        OTLPConfig `mapstructure:"otlp"`
	SampleRatio float64    `mapstructure:"sampleRatio"`
	ServiceName string     `mapstructure:"serviceName"`
}

type Config struct {
	Data      DataConfig
	HTTP      HTTPConfig `mapstructure:"http"`
	Websocket WebsocketConfig
	Log       LogConfig
	Metrics   MetricsConfig
	Trace     TraceConfig
}

func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: "./json",
		},
		HTTP: HTTPConfig{
			Addr:               ":7085",
			CORSAllowedOrigins: []string{"*"},
			CORSAllowedHeaders: []string{"*"},
		},
		Websocket: WebsocketConfig{
			Enabled:    true,
			BufferSize: 1024 * 10,
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":2112",
		},
		Trace: TraceConfig{
			Enabled: false,
			OTLP: OTLPConfig{
				Endpoint: "0.0.0.0:4317",
			},
			SampleRatio: 0.2,
			ServiceName: "theodb",
		},
	}
}

// Verify reports the first invalid setting.
func (cfg *Config) Verify() error {
	if len(cfg.Data.Dir) == 0 {
		return fmt.Errorf("%w: data directory cannot be empty", ErrInvalidConfig)
	}
	if len(cfg.HTTP.Addr) == 0 {
		return fmt.Errorf("%w: http address cannot be empty", ErrInvalidConfig)
	}
	if cfg.Websocket.BufferSize <= 0 {
		return fmt.Errorf("%w: websocket buffer size must be positive, got %d", ErrInvalidConfig, cfg.Websocket.BufferSize)
	}

	if cfg.Log.Level != "none" {
		if _, err := pkg.ParseLogLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, err)
		}
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: unknown log format: %s", ErrInvalidConfig, cfg.Log.Format)
	}

	if cfg.Metrics.Enabled {
		if len(cfg.Metrics.Addr) == 0 {
			return fmt.Errorf("%w: metrics address cannot be empty when metrics are enabled", ErrInvalidConfig)
		}
		if cfg.Metrics.Addr == cfg.HTTP.Addr {
			return fmt.Errorf("%w: metrics and http cannot share the address %s", ErrInvalidConfig, cfg.HTTP.Addr)
		}
	}

	if cfg.Trace.SampleRatio < 0 || cfg.Trace.SampleRatio > 1 {
		return fmt.Errorf("%w: trace sample ratio must be between 0 and 1, got %v", ErrInvalidConfig, cfg.Trace.SampleRatio)
	}
	if cfg.Trace.Enabled && len(cfg.Trace.OTLP.Endpoint) == 0 {
		return fmt.Errorf("%w: trace otlp endpoint cannot be empty when tracing is enabled", ErrInvalidConfig)
	}
	return nil
}
