package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"metalpedia-backend/pkg/logger"
)

func main() {
	// .env is optional, production uses the process environment
	envErr := godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env, "metalpedia-api")

	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := Serve(); err != nil {
		log.Fatal().Err(err).Msg("API stopped")
	}
}
