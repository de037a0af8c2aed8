package run

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gotest.tools/assert"

	"github.com/theographic/theodb/internal/config"
)

func TestReadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("defaults", func(t *testing.T) {
		viper.Reset()
		NewRunCommand()
		cfg, err := ReadConfig()
		assert.NilError(t, err)
		assert.DeepEqual(t, cfg, config.DefaultConfig())
	})

	t.Run("env overrides", func(t *testing.T) {
		viper.Reset()
		t.Setenv("THEODB_DATA_DIR", "/srv/theodb")
		t.Setenv("THEODB_TRACE_SAMPLE_RATIO", "0.5")
		t.Setenv("THEODB_WEBSOCKET_ENABLED", "false")
		NewRunCommand()

		cfg, err := ReadConfig()
		assert.NilError(t, err)
		assert.Equal(t, cfg.Data.Dir, "/srv/theodb")
		assert.Equal(t, cfg.Trace.SampleRatio, 0.5)
		assert.Equal(t, cfg.Websocket.Enabled, false)
	})

	t.Run("flags override", func(t *testing.T) {
		viper.Reset()
		cmd := NewRunCommand()
		assert.NilError(t, cmd.Flags().Parse([]string{
			"--http-addr", ":9000",
			"--http-cors-allowed-origins", "https://a.example,https://b.example",
			"--log-level", "debug",
		}))

		cfg, err := ReadConfig()
		assert.NilError(t, err)
		assert.Equal(t, cfg.HTTP.Addr, ":9000")
		assert.DeepEqual(t, cfg.HTTP.CORSAllowedOrigins, []string{"https://a.example", "https://b.example"})
		assert.Equal(t, cfg.Log.Level, "debug")
	})

	t.Run("config file", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		assert.NilError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
data:
  dir: ./fixtures
metrics:
  enabled: false
websocket:
  bufferSize: 2048
`), 0o644))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(dir)
		NewRunCommand()

		cfg, err := ReadConfig()
		assert.NilError(t, err)
		assert.Equal(t, cfg.Data.Dir, "./fixtures")
		assert.Equal(t, cfg.Metrics.Enabled, false)
		assert.Equal(t, cfg.Websocket.BufferSize, 2048)
	})
}

func TestServerContextRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.Dir = "../../testdata/dataset"
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Metrics.Enabled = false

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &ServerContext{Logger: zap.NewNop()}
	assert.NilError(t, s.Run(ctx, cfg))
}
