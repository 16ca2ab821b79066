package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tasktrack/webapp/internal/api"
	"github.com/tasktrack/webapp/internal/core/ports"
	"github.com/tasktrack/webapp/internal/core/service"
	"github.com/tasktrack/webapp/internal/gateway"
	"github.com/tasktrack/webapp/internal/infrastructure/cache"
	"github.com/tasktrack/webapp/internal/infrastructure/config"
	"github.com/tasktrack/webapp/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	gw := gateway.New(cfg.APIBaseURL, cfg.APITimeout, log)

	// Profile cache is optional: without Redis every guarded request
	// resolves the user through the profile endpoint.
	var profileCache ports.ProfileCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		profileCache = cache.NewProfileCache(rdb, cfg.Redis.TTL, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("profile cache enabled")
	}

	authService := service.NewAuthService(gw, profileCache, log)
	projectService := service.NewProjectService(gw)
	taskService := service.NewTaskService(gw)

	e, err := api.NewRouter(cfg, api.Services{
		Auth:      authService,
		Projects:  projectService,
		Tasks:     taskService,
		Activity:  service.NewActivityService(gw),
		Dashboard: service.NewDashboardService(projectService, taskService),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("api", cfg.APIBaseURL).
			Msg("starting web front-end")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("shutdown complete")
}
