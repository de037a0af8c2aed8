package pkg_test

import (
	"testing"

	. "github.com/theographic/theodb/pkg"
	"go.uber.org/zap"
	"gotest.tools/assert"
)

func TestNewLogger(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		l, err := NewLogger("text", "debug")
		assert.NilError(t, err)
		assert.Assert(t, l.Core().Enabled(zap.DebugLevel))
	})

	t.Run("json", func(t *testing.T) {
		l, err := NewLogger("json", "warn")
		assert.NilError(t, err)
		assert.Assert(t, !l.Core().Enabled(zap.InfoLevel))
		assert.Assert(t, l.Core().Enabled(zap.WarnLevel))
	})

	t.Run("none", func(t *testing.T) {
		l, err := NewLogger("json", "none")
		assert.NilError(t, err)
		assert.Assert(t, !l.Core().Enabled(zap.ErrorLevel))
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := NewLogger("text", "loud")
		assert.ErrorContains(t, err, "unknown log level: loud")
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := NewLogger("xml", "info")
		assert.ErrorContains(t, err, "unknown log format: xml")
	})
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	l := zap.NewExample()
	SetLogger(l)
	assert.Equal(t, Logger(), l)

	SetLogger(nil)
	assert.Assert(t, Logger() != nil)
	InfoLog("discarded")
}
