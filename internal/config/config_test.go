package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rogercoleraus/dynamox-design/internal/refresh"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 100, cfg.Spots.UniverseSize)
	require.Equal(t, 200*time.Millisecond, cfg.Spots.QueryDelay)
	require.Equal(t, refresh.DefaultIntervalSeconds, cfg.Refresh.IntervalSeconds)
	require.False(t, cfg.Refresh.Paused)
	require.Empty(t, cfg.EngineURL)
}

func TestLoad_ClampsRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "2")
	require.Equal(t, refresh.MinIntervalSeconds, Load().Refresh.IntervalSeconds)

	// non-numeric input falls back, never fails
	t.Setenv("REFRESH_INTERVAL", "soon")
	require.Equal(t, refresh.DefaultIntervalSeconds, Load().Refresh.IntervalSeconds)
}

func TestLoad_BadNumericsFallBack(t *testing.T) {
	t.Setenv("SPOT_COUNT", "-5")
	t.Setenv("QUERY_DELAY_MS", "lots")
	cfg := Load()
	require.Equal(t, 100, cfg.Spots.UniverseSize)
	require.Equal(t, 200*time.Millisecond, cfg.Spots.QueryDelay)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REFRESH_INTERVAL", "60")
	t.Setenv("REFRESH_PAUSED", "true")
	t.Setenv("QUERY_DELAY_MS", "0")
	t.Setenv("ENGINE_URL", "http://localhost:8081")

	cfg := Load()
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, 60, cfg.Refresh.IntervalSeconds)
	require.True(t, cfg.Refresh.Paused)
	require.Equal(t, time.Duration(0), cfg.Spots.QueryDelay)
	require.Equal(t, "http://localhost:8081", cfg.EngineURL)
}
