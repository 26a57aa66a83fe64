package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/imsakiye/internal/config"
)

// LoadEnvironment reads .env when present, then validates the environment.
func LoadEnvironment() *config.Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}
