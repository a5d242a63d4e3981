package main

import (
	"context"
	"naturekids/config"
	"naturekids/infras/kafka"
	"naturekids/internal/notifier"
	"naturekids/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka client")
		}
	}()

	log.Info().Strs("topics", notifier.Topics()).Msg("starting notifier")

	notifier.New(cfg, client, notifier.NewLogSender()).Run(ctx)

	log.Info().Msg("notifier stopped")
}
