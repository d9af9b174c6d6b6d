// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-bonus-verify/internal/application"
	"telegram-bonus-verify/internal/config"
	"telegram-bonus-verify/internal/domain/ports/adapter"
	tele "telegram-bonus-verify/internal/infra/adapters/telegram"
	"telegram-bonus-verify/internal/infra/api"
	"telegram-bonus-verify/internal/infra/logging"
	"telegram-bonus-verify/internal/infra/metrics"
	red "telegram-bonus-verify/internal/infra/redis"
	"telegram-bonus-verify/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "developer mode (console logs, noop bot)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] enabled")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	// ---- Lifecycle ----
	bonusRepo := red.NewBonusRepo(redisClient)
	bonusUC := usecase.NewBonusUseCase(bonusRepo, cfg.Bot.Username, logger)

	// ---- Telegram ----
	var bot adapter.TelegramBotAdapter
	if cfg.Runtime.Dev {
		bot = tele.NewNoopBotAdapter(logger)
	} else {
		bot, err = tele.NewRealBotAdapter(&cfg.Bot)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
	}
	flow := application.NewVerifyFlow(bonusUC, bot, cfg.Bot.ChannelUsername, logger)

	// ---- HTTP ----
	metrics.MustRegister()
	srv := api.NewServer(bonusUC, flow, cfg.Server.WebhookToken, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
