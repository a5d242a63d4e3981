package main

import (
	"naturekids/config"
	"naturekids/helper"
	"naturekids/shared/logger"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()
	logger.InitLogger(cfg)

	if len(os.Args) < 2 {
		log.Fatal().Msgf("Migration action is required: %s", strings.Join(helper.Actions(), ", "))
	}

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
