package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/redema/records/internal/config"
	"github.com/redema/records/internal/devserver"
	"github.com/redema/records/internal/logger"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("records-devserver exited with error")
		os.Exit(1)
	}
}

func run() error {
	lg := logger.New("records-devserver")

	cfg, err := config.NewServer()
	if err != nil {
		lg.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return devserver.Run(ctx, cfg, lg)
}
