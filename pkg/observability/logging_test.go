package observability_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashroute/cashroute/pkg/observability"
)

func TestInitLogger_ReturnsLogger(t *testing.T) {
	logger := observability.InitLogger(observability.LogConfig{Level: "debug", Format: "json"})
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(t.Context(), slog.LevelDebug))
}

func TestInitLogger_DefaultsToInfo(t *testing.T) {
	logger := observability.InitLogger(observability.LogConfig{Level: "nonsense", Format: "text"})
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelInfo))
}

func TestInitLogger_SetsDefault(t *testing.T) {
	logger := observability.InitLogger(observability.LogConfig{Level: "warn", Format: "json", Service: "routing-service"})
	assert.Equal(t, logger, slog.Default())
}
