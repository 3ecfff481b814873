// File: cmd/bot/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"subscription-activation-bot/internal/config"
	"subscription-activation-bot/internal/infra/logging"
	"subscription-activation-bot/internal/infra/metrics"
	red "subscription-activation-bot/internal/infra/redis"
	tele "subscription-activation-bot/internal/infra/telegram"
	"subscription-activation-bot/internal/infra/web"
	"subscription-activation-bot/internal/infra/worker"
	"subscription-activation-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log)
	metrics.MustRegister()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	repo := red.NewActivationRepo(redisClient)
	limiter := red.NewRateLimiter(redisClient)

	// ---- Telegram ----
	bot, err := tele.NewRealTelegramBotAdapter(&cfg.Telegram)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	logger.Info().Str("username", bot.Username()).Msg("telegram client ready")

	// The webhook must be registered before the listener accepts traffic,
	// or updates may arrive while the client handle is not ready.
	hookURL := fmt.Sprintf("%s/hook/%s",
		strings.TrimRight(cfg.Telegram.AppURL, "/"), cfg.Telegram.WebhookSecret)
	if err := bot.DeleteWebhook(ctx); err != nil {
		logger.Fatal().Err(err).Msg("delete previous webhook")
	}
	if err := bot.SetWebhook(ctx, hookURL); err != nil {
		logger.Fatal().Err(err).Msg("register webhook")
	}
	// The secret path segment stays out of the logs.
	logger.Info().Str("base_url", cfg.Telegram.AppURL).Msg("webhook registered")

	// ---- Router + dispatch pool ----
	router := usecase.NewRouter(bot, repo, limiter, &cfg.Router, logger)
	pool := worker.NewPool(cfg.Router.Workers, logger)
	pool.Start(ctx)

	// ---- HTTP server ----
	srv := web.NewServer(bot, router, pool, cfg.Telegram.WebhookSecret, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Web.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	pool.Stop()
}
