package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rogercoleraus/dynamox-design/internal/refresh"
	"github.com/rogercoleraus/dynamox-design/internal/spots"
)

// Config dynamox-design（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Log struct {
		Level  string
		Format string
	}
	Spots struct {
		UniverseSize int
		QueryDelay   time.Duration
	}
	Refresh struct {
		IntervalSeconds int
		Paused          bool
	}
	// EngineURL 非空时，刷新控制器轮询远端查询接口而不是进程内引擎
	EngineURL string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Spots.UniverseSize = parseInt(getEnv("SPOT_COUNT", "100"), spots.DefaultUniverseSize)
	if cfg.Spots.UniverseSize <= 0 {
		cfg.Spots.UniverseSize = spots.DefaultUniverseSize
	}
	// 模拟网络延迟（毫秒）；0 表示关闭
	delayMs := parseInt(getEnv("QUERY_DELAY_MS", "200"), 200)
	if delayMs < 0 {
		delayMs = 200
	}
	cfg.Spots.QueryDelay = time.Duration(delayMs) * time.Millisecond

	// 非法/越界的周期输入回退而不是报错（前端的 interval 输入框可能传任何东西）
	cfg.Refresh.IntervalSeconds = refresh.ClampIntervalSeconds(
		parseInt(getEnv("REFRESH_INTERVAL", "25"), refresh.DefaultIntervalSeconds))
	cfg.Refresh.Paused = getEnv("REFRESH_PAUSED", "false") == "true"

	cfg.EngineURL = getEnv("ENGINE_URL", "")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
