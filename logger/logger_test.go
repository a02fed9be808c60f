package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLogger(t *testing.T) {
	{ // Test level parsing
		assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
		assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
		assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
		assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
		assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
	}
	{ // Test console-only construction and level gating
		log := New("warn", "")
		require.NotNil(t, log)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	}
	{ // Test file output
		path := filepath.Join(t.TempDir(), "run.log")
		log := New("info", path)
		log.Info("triangulation started")
		// Core writes are unbuffered; Sync of the stderr core may fail on
		// pipes, so its result is not checked.
		_ = log.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(data), "triangulation started"))
	}
}
