package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewParsesValidLevel(t *testing.T) {
	logger := New("debug")
	require.NotNil(t, logger)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewFallsBackToInfoOnInvalidLevel(t *testing.T) {
	logger := New("not-a-level")
	require.NotNil(t, logger)
	require.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewDevelopmentReturnsUsableLogger(t *testing.T) {
	logger := NewDevelopment()
	require.NotNil(t, logger)
	require.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
