package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rogercoleraus/dynamox-design/internal/client"
	"github.com/rogercoleraus/dynamox-design/internal/config"
	httpapi "github.com/rogercoleraus/dynamox-design/internal/http"
	"github.com/rogercoleraus/dynamox-design/internal/logger"
	"github.com/rogercoleraus/dynamox-design/internal/refresh"
	"github.com/rogercoleraus/dynamox-design/internal/service"
	"github.com/rogercoleraus/dynamox-design/internal/spots"
)

func main() {
	cfg := config.Load()

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "dynamox-design")
	if err != nil {
		log, _ = zap.NewProduction()
	}
	defer log.Sync()

	gen := spots.NewGenerator(cfg.Spots.UniverseSize)
	engine := spots.NewEngine(gen, cfg.Spots.QueryDelay, log)

	// 刷新控制器轮询的查询函数：默认进程内引擎；
	// 配了 ENGINE_URL 就轮询远端接口（真实后端的替换接缝）
	queryFn := refresh.QueryFunc(engine.Query)
	if cfg.EngineURL != "" {
		remote := client.NewSpotsClient(cfg.EngineURL, log)
		queryFn = remote.Query
		log.Info("using remote query engine", zap.String("engine_url", cfg.EngineURL))
	}

	ctrl := refresh.NewController(queryFn, cfg.Refresh.IntervalSeconds, cfg.Refresh.Paused, log)
	ctrl.Start()
	defer ctrl.Stop()

	router := httpapi.NewRouter(log)
	router.RegisterSpotRoutes(httpapi.NewSpotsHandler(engine, log))
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(ctrl, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server exited", zap.Error(err))
		}
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	}
}
