package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/user/moviecatalog/internal/config"
	"github.com/user/moviecatalog/internal/handler"
	"github.com/user/moviecatalog/internal/middleware"
	"github.com/user/moviecatalog/internal/repository"
	"github.com/user/moviecatalog/internal/router"
	"github.com/user/moviecatalog/internal/utils"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		l := utils.NewLogger("info", "console")
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Debug().Msg("no .env file found, using the process environment")
	}

	repos, err := repository.NewRepositories(utils.NewHTTPClient(cfg.BackendTimeout), cfg.BackendURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create movie client")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handler.NewHandler(repos, cfg, logger)
	r, err := router.NewEngine(h, router.EngineOptions{
		Logger: logger,
		Secret: cfg.AppSecret,
		Secure: cfg.IsProduction(),
		RateLimit: middleware.RateLimitConfig{
			Enabled: cfg.RateLimitEnabled,
			RPS:     cfg.RateLimitRPS,
			Burst:   cfg.RateLimitBurst,
		},
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// a view waits for the movie service before writing
		WriteTimeout:   cfg.BackendTimeout + 10*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("backend", cfg.BackendURL).
			Bool("proxy_images", cfg.ProxyImages).
			Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("forced shutdown")
	}

	logger.Info().Msg("server exited")
}
