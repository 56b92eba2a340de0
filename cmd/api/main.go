package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lavacar_booking/internal/adapter/http/routes"
	appconfig "lavacar_booking/internal/infrastructure/config"
	"lavacar_booking/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// @title           LavaCarWash Booking API
// @version         1.0
// @description     Car-wash booking, payment reconciliation and operator panel backed by DynamoDB.

// @host localhost:8080

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the operator JWT.

func main() {
	cfg, err := appconfig.Load()
	if err != nil {
		logrus.WithError(err).Fatal("[main] invalid configuration")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg); err != nil {
		logrus.WithError(err).Fatal("[main] failed to startup the application")
	}
}
